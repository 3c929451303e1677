package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"labmanager/internal/shared/constants"
)

var (
	corsMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsHeaders = strings.Join([]string{
		"Content-Type", "Accept", "Accept-Language", "X-Requested-With", constants.HeaderXRequestID,
	}, ", ")
	// Content-Disposition carries the export file name.
	corsExposed = strings.Join([]string{"Content-Disposition", constants.HeaderXRequestID}, ", ")
)

// CORS lets the admin UI origins call the API with credentials. Requests
// from other origins pass through without CORS headers and are left to the
// browser to reject.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		c.Writer.Header().Add("Vary", "Origin")

		origin := c.GetHeader("Origin")
		if _, ok := origins[origin]; origin == "" || !ok {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method != http.MethodOptions {
			c.Header("Access-Control-Expose-Headers", corsExposed)
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Methods", corsMethods)
		c.Header("Access-Control-Allow-Headers", corsHeaders)
		c.Header("Access-Control-Max-Age", "600")
		c.AbortWithStatus(http.StatusNoContent)
	}
}

// SecurityHeaders sets the headers every JSON or xlsx response should carry.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Next()
	}
}
