package user

import (
	"context"
	"fmt"
	"time"

	"labmanager/internal/shared/biztime"
	"labmanager/internal/shared/id"
)

// Session binds a browser to an authenticated user for a bounded, sliding period.
type Session struct {
	ID             string    `json:"id" gorm:"column:id;primaryKey;size:64"`
	UserID         int64     `json:"user_id" gorm:"column:user_id;not null;index"`
	Role           string    `json:"role" gorm:"column:role;size:50;not null"`
	IPAddress      string    `json:"ip_address" gorm:"column:ip_address;size:45"`
	UserAgent      string    `json:"user_agent" gorm:"column:user_agent;size:512"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at;not null"`
	LastActivityAt time.Time `json:"last_activity_at" gorm:"column:last_activity_at;not null"`
	ExpiresAt      time.Time `json:"expires_at" gorm:"column:expires_at;not null;index"`
}

func (Session) TableName() string { return "sessions" }

// Meta describes the client a session is created for.
type Meta struct {
	IPAddress string
	UserAgent string
}

// NewSession creates a session for u expiring ttl from now.
func NewSession(u *User, meta Meta, ttl time.Duration) (*Session, error) {
	if u == nil || u.ID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	sid, err := id.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := biztime.NowUTC()
	return &Session{
		ID:             sid,
		UserID:         u.ID,
		Role:           u.RoleName(),
		IPAddress:      meta.IPAddress,
		UserAgent:      meta.UserAgent,
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(ttl),
	}, nil
}

// IsExpired reports whether the session is past its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Touch records activity at now and slides the expiry to now+ttl.
func (s *Session) Touch(now time.Time, ttl time.Duration) {
	s.LastActivityAt = now
	s.ExpiresAt = now.Add(ttl)
}

// SessionStore persists sessions server-side.
type SessionStore interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// Lookup returns a live session and slides its expiry, or a NotFound error
	// when the session is absent or expired.
	Lookup(ctx context.Context, sessionID string) (*Session, error)

	// Destroy removes a session. Destroying an absent session is not an error.
	Destroy(ctx context.Context, sessionID string) error

	// DestroyByUser removes every session of the user.
	DestroyByUser(ctx context.Context, userID int64) error

	// PurgeExpired removes expired sessions and reports how many were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}
