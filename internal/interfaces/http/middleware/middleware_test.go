package middleware

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labmanager/internal/domain/permission"
	"labmanager/internal/domain/user"
	infraPermission "labmanager/internal/infrastructure/permission"
	"labmanager/internal/infrastructure/ratelimit"
	"labmanager/internal/shared/config"
	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
	"labmanager/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSessionConfig = config.SessionConfig{
	Secret:         "0123456789abcdef0123456789abcdef",
	TTL:            time.Hour,
	CookieName:     "labmanager_session",
	CookiePath:     "/",
	CookieSameSite: "Lax",
}

type stubResolver struct {
	users map[string]*user.User
	err   error
}

func (r *stubResolver) CurrentUser(_ context.Context, sessionID string) (*user.User, *user.Session, error) {
	if r.err != nil {
		return nil, nil, r.err
	}
	u, ok := r.users[sessionID]
	if !ok {
		return nil, nil, errors.NewSessionExpiredError(errors.FailureSessionExpired)
	}
	return u, &user.Session{ID: sessionID, UserID: u.ID, Role: u.RoleName()}, nil
}

func signedCookie(t *testing.T, sc *utils.SessionCookie, sessionID string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, sc.Set(c, sessionID))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func userWithRole(id int64, role string) *user.User {
	return &user.User{ID: id, Email: role + "@lab.org", Role: &user.Role{ID: id, Name: role}}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) utils.ErrorEnvelope {
	t.Helper()
	var env utils.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newAuthEngine(resolver SessionResolver, sc *utils.SessionCookie) *gin.Engine {
	r := gin.New()
	auth := NewAuthMiddleware(resolver, sc, logger.NewNop())
	r.GET("/whoami", auth.RequireAuth(), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		s, _ := CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "role": c.GetString(constants.ContextKeyUserRole), "session": s.ID})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	sc := utils.NewSessionCookie(testSessionConfig)
	resolver := &stubResolver{users: map[string]*user.User{"sess_ok": userWithRole(3, constants.RoleRector)}}
	r := newAuthEngine(resolver, sc)

	t.Run("missing cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, string(errors.ErrorTypeUnauthorized), decodeEnvelope(t, w).Type)
	})

	t.Run("tampered cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: testSessionConfig.CookieName, Value: "sess_ok"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("live session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(signedCookie(t, sc, "sess_ok"))
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":3,"role":"rector","session":"sess_ok"}`, w.Body.String())
		// The cookie is re-issued so the browser expiry slides too.
		assert.Len(t, w.Result().Cookies(), 1)
	})

	t.Run("expired session clears cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(signedCookie(t, sc, "sess_gone"))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, string(errors.ErrorTypeSessionExpired), decodeEnvelope(t, w).Type)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].MaxAge < 0)
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		broken := newAuthEngine(&stubResolver{err: stderrors.New("redis down")}, sc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(signedCookie(t, sc, "sess_ok"))
		broken.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "redis")
	})
}

// withUser simulates RequireAuth.
func withUser(u *user.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u != nil {
			c.Set(constants.ContextKeyUser, u)
			c.Set(constants.ContextKeyUserID, u.ID)
			c.Set(constants.ContextKeyUserRole, u.RoleName())
		}
		c.Next()
	}
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestRequireRole(t *testing.T) {
	pm := NewPermissionMiddleware(nil, logger.NewNop())

	tests := []struct {
		name string
		user *user.User
		want int
	}{
		{name: "anonymous", user: nil, want: http.StatusUnauthorized},
		{name: "wrong role", user: userWithRole(1, constants.RoleResearcher), want: http.StatusForbidden},
		{name: "listed role", user: userWithRole(1, constants.RoleAdmin), want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", withUser(tt.user), pm.RequireRole(constants.RoleAdmin, constants.RoleRector), ok)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthorize(t *testing.T) {
	enforcer, err := infraPermission.NewEnforcer(
		permission.DefaultPolicy([]string{"laboratory", "publication"}), nil, logger.NewNop())
	require.NoError(t, err)
	pm := NewPermissionMiddleware(enforcer, logger.NewNop())

	tests := []struct {
		name   string
		user   *user.User
		method string
		path   string
		want   int
	}{
		{"anonymous", nil, http.MethodGet, "/laboratory", http.StatusUnauthorized},
		{"researcher reads", userWithRole(1, constants.RoleResearcher), http.MethodGet, "/laboratory", http.StatusOK},
		{"researcher writes", userWithRole(1, constants.RoleResearcher), http.MethodPost, "/laboratory", http.StatusForbidden},
		{"researcher exports", userWithRole(1, constants.RoleResearcher), http.MethodGet, "/export/laboratory", http.StatusForbidden},
		{"manager deletes", userWithRole(2, constants.RoleLabManager), http.MethodDelete, "/publication/10.1000%2Fx.1", http.StatusOK},
		{"manager lists users", userWithRole(2, constants.RoleLabManager), http.MethodGet, "/user", http.StatusForbidden},
		{"admin lists users", userWithRole(3, constants.RoleAdmin), http.MethodGet, "/user", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.UseRawPath = true
			r.Use(withUser(tt.user), pm.Authorize())
			r.Any("/laboratory", ok)
			r.Any("/publication/:doi", ok)
			r.Any("/export/:entity", ok)
			r.Any("/user", ok)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, stderrors.New("redis down")
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewMemoryRateLimiter(ratelimit.Config{Requests: 2, Window: time.Minute})
	r := gin.New()
	r.POST("/auth/login", RateLimit(limiter, logger.NewNop()), ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	open := gin.New()
	open.POST("/auth/login", RateLimit(failingLimiter{}, logger.NewNop()), ok)
	w := httptest.NewRecorder()
	open.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(constants.HeaderXRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "trace-42")
	r.ServeHTTP(w, req)
	assert.Equal(t, "trace-42", w.Header().Get(constants.HeaderXRequestID))
}

func TestLocaleLocalizesErrors(t *testing.T) {
	r := gin.New()
	r.Use(Locale())
	r.GET("/", func(c *gin.Context) {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("laboratory not found"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderAcceptLanguage, "fr-FR,fr;q=0.9,en;q=0.5")
	r.ServeHTTP(w, req)

	assert.Equal(t, "fr", w.Header().Get("Content-Language"))
	env := decodeEnvelope(t, w)
	assert.Equal(t, string(errors.ErrorTypeNotFound), env.Type)
	assert.Equal(t, "La ressource demandée est introuvable", env.Error)
	assert.Equal(t, "laboratory not found", env.Details)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "kaboom")
	assert.Equal(t, string(errors.ErrorTypeInternal), decodeEnvelope(t, w).Type)
}

func TestRecoveryBrokenConnection(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNop()))
	r.GET("/gone", func(c *gin.Context) {
		panic(&net.OpError{Op: "write", Err: os.NewSyscallError("write", syscall.EPIPE)})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gone", nil))

	assert.Empty(t, w.Body.String())
}

func TestSafeHeadersRedactsCredentials(t *testing.T) {
	h := http.Header{}
	h.Set("Cookie", "labmanager_session=secret")
	h.Set("Authorization", "Bearer secret")
	h.Set("Accept-Language", "fr")

	got := safeHeaders(h)
	assert.Equal(t, "*", got["Cookie"])
	assert.Equal(t, "*", got["Authorization"])
	assert.Equal(t, "fr", got["Accept-Language"])
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://admin.lab.org"}))
	r.GET("/", ok)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://admin.lab.org")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.lab.org", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://admin.lab.org")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/laboratory/:k1", ok)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/laboratory/7", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body),
		`labmanager_http_requests_total{method="GET",route="/laboratory/:k1",status="200"} 1`))
}
