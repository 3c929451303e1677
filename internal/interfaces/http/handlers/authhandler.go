package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"labmanager/internal/application/auth"
	"labmanager/internal/interfaces/http/middleware"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/i18n"
	"labmanager/internal/shared/logger"
	"labmanager/internal/shared/utils"
)

type authService interface {
	Login(ctx context.Context, cmd auth.LoginCommand) (*auth.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}

type AuthHandler struct {
	auth   authService
	cookie *utils.SessionCookie
	logger logger.Interface
}

func NewAuthHandler(auth authService, cookie *utils.SessionCookie, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		cookie: cookie,
		logger: logger,
	}
}

// Login handles POST /auth/login. On success the session cookie is set and the
// account is returned as {user}.
// @Summary Log in
// @Description Verify credentials and open a session carried by the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body auth.LoginCommand true "Credentials"
// @Success 200 {object} map[string]user.User
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 401 {object} utils.ErrorEnvelope
// @Failure 429 {object} utils.ErrorEnvelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var cmd auth.LoginCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	cmd.IPAddress = c.ClientIP()
	cmd.UserAgent = c.GetHeader("User-Agent")

	result, err := h.auth.Login(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.cookie.Set(c, result.Session.ID); err != nil {
		h.logger.Errorw("failed to encode session cookie", "user_id", result.User.ID, "error", err)
		_ = h.auth.Logout(c.Request.Context(), result.Session.ID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": result.User})
}

// Logout handles POST /auth/logout. It succeeds with or without a session.
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, ok := h.cookie.Read(c); ok {
		if err := h.auth.Logout(c.Request.Context(), sessionID); err != nil {
			h.logger.Errorw("failed to destroy session", "error", err)
			utils.ErrorResponseWithError(c, err)
			return
		}
	}
	h.cookie.Clear(c)

	c.JSON(http.StatusOK, gin.H{"message": i18n.T(utils.Lang(c), "logged_out", "Logged out")})
}

// Me handles GET /auth/me. It must run after RequireAuth.
// @Summary Current account
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]user.User
// @Failure 401 {object} utils.ErrorEnvelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authentication required"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}
