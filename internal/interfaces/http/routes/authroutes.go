package routes

import (
	"github.com/gin-gonic/gin"

	"labmanager/internal/interfaces/http/handlers"
	"labmanager/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	// RateLimit guards the login endpoint; nil disables it.
	RateLimit gin.HandlerFunc
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	login := []gin.HandlerFunc{cfg.AuthHandler.Login}
	if cfg.RateLimit != nil {
		login = append([]gin.HandlerFunc{cfg.RateLimit}, login...)
	}

	auth := engine.Group("/auth")
	{
		auth.POST("/login", login...)
		auth.POST("/logout", cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Me)
	}
}
