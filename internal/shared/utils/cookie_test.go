package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labmanager/internal/shared/config"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:         "0123456789abcdef0123456789abcdef",
		TTL:            24 * time.Hour,
		CookieName:     "labmanager_session",
		CookiePath:     "/",
		CookieSameSite: "Lax",
	}
}

func TestSessionCookieRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cookie := NewSessionCookie(testSessionConfig())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	require.NoError(t, cookie.Set(c, "session-123"))

	setCookie := w.Result().Cookies()
	require.Len(t, setCookie, 1)
	assert.True(t, setCookie[0].HttpOnly)
	assert.Equal(t, 86400, setCookie[0].MaxAge)

	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c2.Request.AddCookie(setCookie[0])

	id, ok := cookie.Read(c2)
	assert.True(t, ok)
	assert.Equal(t, "session-123", id)
}

func TestSessionCookieRejectsTampering(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cookie := NewSessionCookie(testSessionConfig())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Request.AddCookie(&http.Cookie{Name: "labmanager_session", Value: "forged-session-id"})

	_, ok := cookie.Read(c)
	assert.False(t, ok)
}

func TestSessionCookieClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cookie := NewSessionCookie(testSessionConfig())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	cookie.Clear(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}
