package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"labmanager/internal/domain/user"
	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
	"labmanager/internal/shared/utils"
)

// SessionResolver turns a session id into the signed-in account.
type SessionResolver interface {
	CurrentUser(ctx context.Context, sessionID string) (*user.User, *user.Session, error)
}

type AuthMiddleware struct {
	resolver SessionResolver
	cookie   *utils.SessionCookie
	logger   logger.Interface
}

func NewAuthMiddleware(resolver SessionResolver, cookie *utils.SessionCookie, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
		cookie:   cookie,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a live session and stores the user and
// session in the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := m.cookie.Read(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authentication required"))
			c.Abort()
			return
		}

		u, session, err := m.resolver.CurrentUser(c.Request.Context(), sessionID)
		if err != nil {
			if errors.IsAppError(err) {
				m.cookie.Clear(c)
			} else {
				m.logger.Errorw("failed to resolve session", "error", err)
			}
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		// Keep the browser cookie in step with the sliding server-side expiry.
		if err := m.cookie.Set(c, session.ID); err != nil {
			m.logger.Warnw("failed to refresh session cookie", "error", err)
		}

		c.Set(constants.ContextKeyUser, u)
		c.Set(constants.ContextKeySession, session)
		c.Set(constants.ContextKeyUserID, u.ID)
		c.Set(constants.ContextKeyUserRole, u.RoleName())

		c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(constants.ContextKeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok && u != nil
}

// CurrentSession returns the session stored by RequireAuth.
func CurrentSession(c *gin.Context) (*user.Session, bool) {
	v, ok := c.Get(constants.ContextKeySession)
	if !ok {
		return nil, false
	}
	s, ok := v.(*user.Session)
	return s, ok && s != nil
}
