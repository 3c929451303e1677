package routes

import (
	"github.com/gin-gonic/gin"

	"labmanager/internal/application/crud"
	"labmanager/internal/interfaces/http/handlers"
	"labmanager/internal/interfaces/http/middleware"
	"labmanager/internal/shared/logger"
)

// ResourceRouteConfig holds dependencies for the generic entity routes.
type ResourceRouteConfig struct {
	Registry             *crud.Registry
	ExportHandler        *handlers.ExportHandler
	MetaHandler          *handlers.MetaHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	Logger               logger.Interface
}

// SetupResourceRoutes mounts list/create on /<entity> and get/update/delete on
// /<entity>/<key...> for every registered entity, plus export and metadata.
// Every route requires a session and passes the permission table.
func SetupResourceRoutes(engine *gin.Engine, cfg *ResourceRouteConfig) {
	guard := []gin.HandlerFunc{cfg.AuthMiddleware.RequireAuth(), cfg.PermissionMiddleware.Authorize()}

	for _, ctrl := range cfg.Registry.All() {
		h := handlers.NewResourceHandler(ctrl, cfg.Logger)
		group := engine.Group("/"+ctrl.Descriptor().Name, guard...)
		{
			group.GET("", h.List)
			group.POST("", h.Create)
			group.GET(h.KeyPath(), h.Get)
			group.PUT(h.KeyPath(), h.Update)
			group.DELETE(h.KeyPath(), h.Delete)
		}
	}

	export := engine.Group("/export", guard...)
	{
		export.GET("/:entity", cfg.ExportHandler.Export)
		export.GET("/:entity/:scopeId", cfg.ExportHandler.Export)
	}

	meta := engine.Group("/meta", cfg.AuthMiddleware.RequireAuth())
	{
		meta.GET("", cfg.MetaHandler.List)
		meta.GET("/:entity", cfg.PermissionMiddleware.Authorize(), cfg.MetaHandler.Get)
	}
}
