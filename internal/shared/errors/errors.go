// Package errors provides application-level error types and utilities.
// It defines the error taxonomy surfaced by the API: validation, invalid query,
// not found, conflict, authorization, export and internal errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation_error"
	ErrorTypeInvalidQuery    ErrorType = "invalid_query"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeConflict        ErrorType = "conflict"
	ErrorTypeUnauthorized    ErrorType = "unauthorized"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeExportFailed    ErrorType = "export_failed"
	ErrorTypeTooManyRequests ErrorType = "too_many_requests"
	ErrorTypeInternal        ErrorType = "internal_error"
	ErrorTypeBadRequest      ErrorType = "bad_request"
)

// FieldError describes one field-level validation issue.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType    `json:"type"`
	Message string       `json:"message"`
	Code    int          `json:"code"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
	// Cause is logged server-side only.
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewFieldValidationError creates a validation error enumerating field-level issues.
func NewFieldValidationError(fields []FieldError) *AppError {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Message)
	}
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: "Validation failed",
		Code:    http.StatusBadRequest,
		Details: strings.Join(parts, "; "),
		Fields:  fields,
	}
}

// NewInvalidQueryError creates an error for malformed list/query parameters.
func NewInvalidQueryError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInvalidQuery, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

// NewExportFailedError wraps a rendering failure. The cause is never sent to the client.
func NewExportFailedError(entity string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeExportFailed,
		Message: fmt.Sprintf("failed to export %s", entity),
		Code:    http.StatusInternalServerError,
		Cause:   cause,
	}
}

// NewTooManyRequestsError creates a rate limit error
func NewTooManyRequestsError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeTooManyRequests, http.StatusTooManyRequests, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func hasType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return hasType(err, ErrorTypeConflict)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsForbiddenError checks if the error is a forbidden error
func IsForbiddenError(err error) bool {
	return hasType(err, ErrorTypeForbidden)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsInvalidQueryError checks if the error is an invalid query error
func IsInvalidQueryError(err error) bool {
	return hasType(err, ErrorTypeInvalidQuery)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	// MySQL duplicate entry error and gorm.ErrDuplicatedKey
	if strings.Contains(errStr, "duplicate entry") || strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "duplicated key") {
		return true
	}
	// PostgreSQL and SQLite unique violations
	return strings.Contains(errStr, "unique constraint")
}

// IsForeignKeyError checks if the error is a database foreign key violation
func IsForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "foreign key constraint")
}
