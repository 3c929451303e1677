package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"labmanager/internal/domain/permission"
	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
	"labmanager/internal/shared/utils"
)

type PermissionMiddleware struct {
	enforcer permission.Enforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer permission.Enforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

func roleOf(c *gin.Context) (string, bool) {
	if _, ok := c.Get(constants.ContextKeyUser); !ok {
		return "", false
	}
	return c.GetString(constants.ContextKeyUserRole), true
}

// RequireRole admits only the listed roles. It must run after RequireAuth.
func (m *PermissionMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleOf(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authentication required"))
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		m.logger.Warnw("role check failed", "user_id", c.GetInt64(constants.ContextKeyUserID), "role", role, "required_roles", roles)
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("Insufficient permissions", fmt.Sprintf("required role: %v", roles)))
		c.Abort()
	}
}

// Authorize consults the permission table for the caller's role, the request
// path and the method. It must run after RequireAuth.
func (m *PermissionMiddleware) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleOf(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authentication required"))
			c.Abort()
			return
		}

		path := c.Request.URL.Path
		allowed, err := m.enforcer.Enforce(role, path, c.Request.Method)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, errors.ErrorTypeInternal)
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", c.GetInt64(constants.ContextKeyUserID), "role", role, "path", path, "method", c.Request.Method)
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("Insufficient permissions"))
			c.Abort()
			return
		}

		c.Next()
	}
}
