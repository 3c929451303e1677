// Package auth implements login, logout and session resolution.
package auth

import (
	"context"
	"time"

	"labmanager/internal/domain/user"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
)

type LoginCommand struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type LoginResult struct {
	User    *user.User
	Session *user.Session
}

// Service authenticates users against stored credentials and manages their
// server-side sessions.
type Service struct {
	users    user.Repository
	sessions user.SessionStore
	hasher   user.PasswordHasher
	ttl      time.Duration
	logger   logger.Interface
}

func NewService(
	users user.Repository,
	sessions user.SessionStore,
	hasher user.PasswordHasher,
	ttl time.Duration,
	logger logger.Interface,
) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		ttl:      ttl,
		logger:   logger,
	}
}

// Login verifies the credentials and opens a session. An unknown email and a
// wrong password produce the same error after the same amount of work.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			s.logger.Errorw("failed to load user for login", "error", err)
			return nil, err
		}
		if err := s.hasher.VerifyDummy(cmd.Password); err != nil {
			s.logger.Errorw("dummy password check failed", "error", err)
		}
		return nil, s.loginFailed(cmd, 0, errors.FailureUnknownEmail)
	}

	if err := s.hasher.Verify(cmd.Password, u.PasswordHash); err != nil {
		return nil, s.loginFailed(cmd, u.ID, errors.FailureWrongPassword)
	}

	session, err := user.NewSession(u, user.Meta{IPAddress: cmd.IPAddress, UserAgent: cmd.UserAgent}, s.ttl)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Errorw("failed to store session", "user_id", u.ID, "error", err)
		return nil, err
	}

	s.logger.Infow("user logged in", "user_id", u.ID, "role", u.RoleName())
	return &LoginResult{User: u, Session: session}, nil
}

func (s *Service) loginFailed(cmd LoginCommand, userID int64, reason errors.AuthFailure) error {
	s.logger.Warnw("login failed", "reason", reason, "user_id", userID, "ip", cmd.IPAddress)
	return errors.NewInvalidCredentialsError(reason)
}

// Logout destroys the session. Unknown or empty ids are ignored.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		s.logger.Errorw("failed to destroy session", "error", err)
		return err
	}
	return nil
}

// CurrentUser resolves a session to its account, sliding the session expiry.
// A session whose account was removed is destroyed.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*user.User, *user.Session, error) {
	if sessionID == "" {
		return nil, nil, errors.NewUnauthorizedError("Authentication required")
	}

	session, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, nil, errors.NewSessionExpiredError(errors.FailureSessionExpired)
		}
		return nil, nil, err
	}

	u, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			return nil, nil, err
		}
		if derr := s.sessions.Destroy(ctx, sessionID); derr != nil {
			s.logger.Warnw("failed to destroy orphan session", "error", derr)
		}
		s.logger.Infow("destroyed session of removed user", "user_id", session.UserID)
		return nil, nil, errors.NewSessionExpiredError(errors.FailureAccountRemoved)
	}

	return u, session, nil
}

// PurgeExpired removes expired sessions from the store.
func (s *Service) PurgeExpired(ctx context.Context) {
	n, err := s.sessions.PurgeExpired(ctx)
	if err != nil {
		s.logger.Warnw("failed to purge expired sessions", "error", err)
		return
	}
	if n > 0 {
		s.logger.Infow("purged expired sessions", "count", n)
	}
}
