package http

import (
	"github.com/gin-gonic/gin"

	"labmanager/internal/interfaces/http/handlers"
	"labmanager/internal/interfaces/http/middleware"
	"labmanager/internal/interfaces/http/routes"
	"labmanager/internal/shared/logger"
	"labmanager/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	engine    *gin.Engine
	container *Container
	logger    logger.Interface

	authHandler   *handlers.AuthHandler
	exportHandler *handlers.ExportHandler
	metaHandler   *handlers.MetaHandler
	healthHandler *handlers.HealthHandler

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	metrics              *middleware.Metrics
}

func NewRouter(c *Container) *Router {
	engine := gin.New()
	// Keys may contain "/" (DOIs); route on the escaped path and hand handlers
	// the decoded value.
	engine.UseRawPath = true
	engine.UnescapePathValues = true

	log := c.log.Named("http")
	cookie := utils.NewSessionCookie(c.cfg.Session)

	r := &Router{
		engine:               engine,
		container:            c,
		logger:               log,
		authHandler:          handlers.NewAuthHandler(c.AuthService(), cookie, log),
		exportHandler:        handlers.NewExportHandler(c.registry, log),
		metaHandler:          handlers.NewMetaHandler(c.registry),
		healthHandler:        handlers.NewHealthHandler(c.db, log),
		authMiddleware:       middleware.NewAuthMiddleware(c.AuthService(), cookie, log),
		permissionMiddleware: middleware.NewPermissionMiddleware(c.enforcer, log),
	}
	if c.cfg.Server.MetricsEnabled {
		r.metrics = middleware.NewMetrics()
	}
	return r
}

// SetupRoutes configures middleware and every route.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Locale())
	r.engine.Use(middleware.Logger(r.logger))
	if r.metrics != nil {
		r.engine.Use(r.metrics.Middleware())
	}
	r.engine.Use(middleware.CORS(r.container.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", r.healthHandler.HealthCheck)
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	var rateLimit gin.HandlerFunc
	if r.container.limiter != nil {
		rateLimit = middleware.RateLimit(r.container.limiter, r.logger)
	}

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    r.authHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimit:      rateLimit,
	})

	routes.SetupResourceRoutes(r.engine, &routes.ResourceRouteConfig{
		Registry:             r.container.registry,
		ExportHandler:        r.exportHandler,
		MetaHandler:          r.metaHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		Logger:               r.logger,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
