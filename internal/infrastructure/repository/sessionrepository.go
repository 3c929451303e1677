package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"labmanager/internal/domain/user"
	"labmanager/internal/shared/biztime"
	"labmanager/internal/shared/db"
	apperrors "labmanager/internal/shared/errors"
)

var _ user.SessionStore = (*SessionRepository)(nil)

// SessionRepository stores sessions in the sessions table so they survive
// restarts and are shared by every instance using the database.
type SessionRepository struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessionRepository(db *gorm.DB, ttl time.Duration) *SessionRepository {
	return &SessionRepository{db: db, ttl: ttl}
}

func (r *SessionRepository) Create(ctx context.Context, session *user.Session) error {
	if err := db.Conn(ctx, r.db).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Lookup(ctx context.Context, sessionID string) (*user.Session, error) {
	if sessionID == "" {
		return nil, apperrors.NewNotFoundError("session not found")
	}

	conn := db.Conn(ctx, r.db)

	var session user.Session
	if err := conn.Where("id = ?", sessionID).Take(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}

	now := biztime.NowUTC()
	if session.IsExpired(now) {
		if err := conn.Where("id = ?", sessionID).Delete(&user.Session{}).Error; err != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return nil, apperrors.NewNotFoundError("session not found")
	}

	session.Touch(now, r.ttl)
	err := conn.Model(&user.Session{}).Where("id = ?", sessionID).Updates(map[string]any{
		"last_activity_at": session.LastActivityAt,
		"expires_at":       session.ExpiresAt,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to touch session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) Destroy(ctx context.Context, sessionID string) error {
	if err := db.Conn(ctx, r.db).Where("id = ?", sessionID).Delete(&user.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DestroyByUser(ctx context.Context, userID int64) error {
	if err := db.Conn(ctx, r.db).Where("user_id = ?", userID).Delete(&user.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete sessions by user ID: %w", err)
	}
	return nil
}

func (r *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result := db.Conn(ctx, r.db).Where("expires_at <= ?", biztime.NowUTC()).Delete(&user.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
