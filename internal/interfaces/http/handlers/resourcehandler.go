package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"labmanager/internal/application/crud"
	"labmanager/internal/interfaces/http/middleware"
	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
	"labmanager/internal/shared/utils"
)

// ResourceHandler exposes one entity's controller over REST. Key columns are
// route parameters named after the columns themselves.
type ResourceHandler struct {
	ctrl   crud.Controller
	logger logger.Interface
}

func NewResourceHandler(ctrl crud.Controller, logger logger.Interface) *ResourceHandler {
	return &ResourceHandler{
		ctrl:   ctrl,
		logger: logger.With("entity", ctrl.Descriptor().Name),
	}
}

// KeyPath returns the route suffix addressing one record, e.g.
// "/:inventory_num/:res_id".
func (h *ResourceHandler) KeyPath() string {
	path := ""
	for _, name := range h.ctrl.Descriptor().KeyNames() {
		path += "/:" + name
	}
	return path
}

func (h *ResourceHandler) rawKey(c *gin.Context) []string {
	names := h.ctrl.Descriptor().KeyNames()
	raw := make([]string, len(names))
	for i, name := range names {
		raw[i] = c.Param(name)
	}
	return raw
}

// List returns one page of an entity's records
// @Summary List records
// @Description Search, filter by column, sort and page; managers only see their own laboratory or faculty
// @Tags Resources
// @Produce json
// @Param entity path string true "Entity route name"
// @Param search query string false "Substring matched on searchable columns"
// @Param sort query string false "Sortable column"
// @Param order query string false "asc or desc"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size, at most 100" default(20)
// @Param scope query string false "Scope name"
// @Param scope_id query string false "Scope key"
// @Success 200 {object} utils.ListResponse
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 403 {object} utils.ErrorEnvelope
// @Router /{entity} [get]
func (h *ResourceHandler) List(c *gin.Context) {
	q, err := utils.ParseListQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.ctrl.List(c.Request.Context(), q, restrictionsOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns one record by key
// @Summary Get a record
// @Tags Resources
// @Produce json
// @Param entity path string true "Entity route name"
// @Param key path string true "Key segments, one per key column"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /{entity}/{key} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	record, err := h.ctrl.Get(c.Request.Context(), h.rawKey(c), restrictionsOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ObjectResponse(c, record)
}

// Create inserts a record
// @Summary Create a record
// @Tags Resources
// @Accept json
// @Produce json
// @Param entity path string true "Entity route name"
// @Param request body map[string]interface{} true "Record fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 403 {object} utils.ErrorEnvelope
// @Failure 409 {object} utils.ErrorEnvelope
// @Router /{entity} [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	payload, ok := h.readBody(c)
	if !ok {
		return
	}

	record, err := h.ctrl.Create(c.Request.Context(), payload, restrictionsOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("record created", "user_id", c.GetInt64(constants.ContextKeyUserID))
	utils.CreatedResponse(c, record)
}

// Update overlays the given fields on a record
// @Summary Update a record
// @Tags Resources
// @Accept json
// @Produce json
// @Param entity path string true "Entity route name"
// @Param key path string true "Key segments, one per key column"
// @Param request body map[string]interface{} true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 403 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Failure 409 {object} utils.ErrorEnvelope
// @Router /{entity}/{key} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	payload, ok := h.readBody(c)
	if !ok {
		return
	}

	record, err := h.ctrl.Update(c.Request.Context(), h.rawKey(c), payload, restrictionsOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("record updated", "user_id", c.GetInt64(constants.ContextKeyUserID))
	utils.ObjectResponse(c, record)
}

// Delete removes a record and its cascading dependents
// @Summary Delete a record
// @Tags Resources
// @Param entity path string true "Entity route name"
// @Param key path string true "Key segments, one per key column"
// @Success 204
// @Failure 404 {object} utils.ErrorEnvelope
// @Failure 409 {object} utils.ErrorEnvelope
// @Router /{entity}/{key} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	if err := h.ctrl.Delete(c.Request.Context(), h.rawKey(c), restrictionsOf(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("record deleted", "user_id", c.GetInt64(constants.ContextKeyUserID))
	utils.NoContentResponse(c)
}

func (h *ResourceHandler) readBody(c *gin.Context) ([]byte, bool) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, constants.MaxRequestBodyBytes))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return nil, false
	}
	return payload, true
}

// restrictionsOf returns the visibility limits of the authenticated caller.
func restrictionsOf(c *gin.Context) []crud.Restriction {
	u, _ := middleware.CurrentUser(c)
	return crud.RestrictionsFor(u)
}
