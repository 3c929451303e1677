package handlers

import (
	"github.com/gin-gonic/gin"

	"labmanager/internal/application/crud"
	"labmanager/internal/domain/resource"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/i18n"
	"labmanager/internal/shared/utils"
)

// MetaColumn describes one column of the client's generic data table.
type MetaColumn struct {
	Field      string `json:"field"`
	Label      string `json:"label"`
	Sortable   bool   `json:"sortable"`
	Searchable bool   `json:"searchable"`
}

// MetaResponse is the screen description of one entity.
type MetaResponse struct {
	Entity       string       `json:"entity"`
	Label        string       `json:"label"`
	Key          []string     `json:"key"`
	Columns      []MetaColumn `json:"columns"`
	Filters      []string     `json:"filters"`
	Scopes       []string     `json:"scopes"`
	DefaultScope string       `json:"default_scope,omitempty"`
	DefaultSort  string       `json:"default_sort,omitempty"`
}

// MetaHandler serves GET /meta and GET /meta/:entity.
type MetaHandler struct {
	registry *crud.Registry
}

func NewMetaHandler(registry *crud.Registry) *MetaHandler {
	return &MetaHandler{registry: registry}
}

// List returns the names of every exposed entity in registration order.
// @Summary List entities
// @Tags Meta
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /meta [get]
func (h *MetaHandler) List(c *gin.Context) {
	utils.ObjectResponse(c, gin.H{"entities": h.registry.Names()})
}

// Get describes one entity's table for the client
// @Summary Describe an entity
// @Description Localized columns, filters and scopes of one entity
// @Tags Meta
// @Produce json
// @Param entity path string true "Entity route name"
// @Success 200 {object} MetaResponse
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /meta/{entity} [get]
func (h *MetaHandler) Get(c *gin.Context) {
	entity := c.Param("entity")
	ctrl, ok := h.registry.Get(entity)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("unknown entity", entity))
		return
	}
	utils.ObjectResponse(c, describe(ctrl.Descriptor(), utils.Lang(c)))
}

func describe(d *resource.Descriptor, lang i18n.Lang) MetaResponse {
	resp := MetaResponse{
		Entity:       d.Name,
		Label:        i18n.T(lang, "entity."+d.Name, d.Name),
		Key:          d.KeyNames(),
		Columns:      make([]MetaColumn, 0, len(d.Columns)),
		Filters:      make([]string, 0, len(d.Filters)),
		Scopes:       make([]string, 0, len(d.Scopes)),
		DefaultScope: d.DefaultScope,
		DefaultSort:  d.DefaultSort,
	}
	for _, col := range d.Columns {
		resp.Columns = append(resp.Columns, MetaColumn{
			Field:      col.Field,
			Label:      i18n.Column(lang, col.Field, col.Label),
			Sortable:   d.IsSortable(col.Field),
			Searchable: d.IsSearchable(col.Field),
		})
	}
	for _, f := range d.Filters {
		resp.Filters = append(resp.Filters, f.Name)
	}
	for _, s := range d.Scopes {
		resp.Scopes = append(resp.Scopes, s.Name)
	}
	return resp
}
