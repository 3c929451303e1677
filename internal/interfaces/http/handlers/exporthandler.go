package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"labmanager/internal/application/crud"
	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
	"labmanager/internal/shared/utils"
)

// ExportHandler serves GET /export/:entity and GET /export/:entity/:scopeId.
type ExportHandler struct {
	registry *crud.Registry
	logger   logger.Interface
}

func NewExportHandler(registry *crud.Registry, logger logger.Interface) *ExportHandler {
	return &ExportHandler{
		registry: registry,
		logger:   logger,
	}
}

// Export streams the matching records as an xlsx workbook
// @Summary Export an entity
// @Description Export every visible record of an entity, optionally limited to one owning scope
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param entity path string true "Entity route name"
// @Param scopeId path string false "Owning scope key"
// @Param scope query string false "Scope name, defaults to the entity's default scope"
// @Success 200 {file} file
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 403 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Failure 500 {object} utils.ErrorEnvelope
// @Router /export/{entity} [get]
// @Router /export/{entity}/{scopeId} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	entity := c.Param("entity")
	ctrl, ok := h.registry.Get(entity)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("unknown entity", entity))
		return
	}

	data, err := ctrl.Export(c.Request.Context(), crud.ExportRequest{
		Scope:    c.Query("scope"),
		ScopeID:  c.Param("scopeId"),
		Restrict: restrictionsOf(c),
		Lang:     utils.Lang(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("export generated",
		"entity", entity,
		"scope_id", c.Param("scopeId"),
		"user_id", c.GetInt64(constants.ContextKeyUserID),
		"bytes", len(data),
	)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, entity, constants.SpreadsheetExtension))
	c.Data(http.StatusOK, constants.ContentTypeSpreadsheet, data)
}
