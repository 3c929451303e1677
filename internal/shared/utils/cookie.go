package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"

	"labmanager/internal/shared/config"
)

// SessionCookie carries the opaque session id in an HMAC-signed cookie.
type SessionCookie struct {
	codec *securecookie.SecureCookie
	cfg   config.SessionConfig
}

// NewSessionCookie derives the signing key from the configured session secret.
func NewSessionCookie(cfg config.SessionConfig) *SessionCookie {
	codec := securecookie.New([]byte(cfg.Secret), nil)
	codec.MaxAge(int(cfg.TTL / time.Second))
	return &SessionCookie{codec: codec, cfg: cfg}
}

// Name returns the cookie name.
func (s *SessionCookie) Name() string {
	return s.cfg.CookieName
}

// Set writes the signed session id. MaxAge follows the sliding session TTL.
func (s *SessionCookie) Set(c *gin.Context, sessionID string) error {
	encoded, err := s.codec.Encode(s.cfg.CookieName, sessionID)
	if err != nil {
		return err
	}
	c.SetSameSite(parseSameSite(s.cfg.CookieSameSite))
	c.SetCookie(
		s.cfg.CookieName,
		encoded,
		int(s.cfg.TTL/time.Second),
		s.cfg.CookiePath,
		s.cfg.CookieDomain,
		s.cfg.CookieSecure,
		true, // HttpOnly
	)
	return nil
}

// Read returns the session id carried by the request, if the signature is valid.
func (s *SessionCookie) Read(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(s.cfg.CookieName)
	if err != nil || raw == "" {
		return "", false
	}
	var sessionID string
	if err := s.codec.Decode(s.cfg.CookieName, raw, &sessionID); err != nil {
		return "", false
	}
	return sessionID, sessionID != ""
}

// Clear expires the session cookie on the client.
func (s *SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(parseSameSite(s.cfg.CookieSameSite))
	c.SetCookie(
		s.cfg.CookieName,
		"",
		-1,
		s.cfg.CookiePath,
		s.cfg.CookieDomain,
		s.cfg.CookieSecure,
		true,
	)
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
