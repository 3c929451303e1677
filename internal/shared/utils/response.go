package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/i18n"
)

// APIResponse represents a successful API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorEnvelope is the body of every failed request. Error carries the localized message.
type ErrorEnvelope struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Type    string              `json:"type"`
	Details string              `json:"details,omitempty"`
	Fields  []errors.FieldError `json:"fields,omitempty"`
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// Lang returns the negotiated language of the request.
func Lang(c *gin.Context) i18n.Lang {
	if lang := c.GetString(constants.ContextKeyLang); lang != "" {
		return i18n.ParseLang(lang)
	}
	return i18n.Negotiate(c.GetHeader(constants.HeaderAcceptLanguage))
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// CreatedResponse sends the created resource itself with a 201 status.
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// ObjectResponse sends a single resource as a bare JSON object.
func ObjectResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// ErrorResponse sends an error of the given status with a localized message.
func ErrorResponse(c *gin.Context, statusCode int, errType errors.ErrorType) {
	c.JSON(statusCode, ErrorEnvelope{
		Error: i18n.T(Lang(c), string(errType), string(errType)),
		Type:  string(errType),
	})
}

// ErrorResponseWithError sends an error response based on error type.
// Errors that are not AppErrors never leak their text to the client.
func ErrorResponseWithError(c *gin.Context, err error) {
	lang := Lang(c)

	appErr := errors.GetAppError(err)
	if appErr == nil {
		appErr = errors.NewInternalError(constants.ErrMsgInternalServerError)
	}

	envelope := ErrorEnvelope{
		Error:  i18n.T(lang, string(appErr.Type), appErr.Message),
		Type:   string(appErr.Type),
		Fields: appErr.Fields,
	}
	if appErr.Code < http.StatusInternalServerError {
		envelope.Details = appErr.Details
		if envelope.Details == "" && appErr.Message != envelope.Error {
			envelope.Details = appErr.Message
		}
	}

	c.JSON(appErr.Code, envelope)
}

// ListSuccessResponse sends a successful list response with pagination
func ListSuccessResponse(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, ListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	})
}

// NoContentResponse sends a no content response
func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
