package middleware

import (
	"github.com/gin-gonic/gin"

	"labmanager/internal/infrastructure/ratelimit"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
	"labmanager/internal/shared/utils"
)

// RateLimit enforces limiter per client IP. Limiter failures let the request
// through rather than blocking all traffic.
func RateLimit(limiter ratelimit.RateLimiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponseWithError(c, errors.NewTooManyRequestsError("Rate limit exceeded, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
