package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"labmanager/internal/domain/user"
	"labmanager/internal/shared/biztime"
	apperrors "labmanager/internal/shared/errors"
)

const (
	// SessionKeyPrefix namespaces session records.
	SessionKeyPrefix = "session:"
	// SessionUserKeyPrefix namespaces the per-user set of session ids.
	SessionUserKeyPrefix = "session:user:"
)

var _ user.SessionStore = (*RedisSessionStore)(nil)

// RedisSessionStore keeps sessions as JSON values whose Redis TTL tracks the
// sliding expiry, plus one set per user for bulk invalidation.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a new RedisSessionStore instance
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisSessionStore) Create(ctx context.Context, session *user.Session) error {
	if session.ID == "" {
		return errors.New("session id cannot be empty")
	}
	return s.write(ctx, session)
}

func (s *RedisSessionStore) Lookup(ctx context.Context, sessionID string) (*user.Session, error) {
	if sessionID == "" {
		return nil, apperrors.NewNotFoundError("session not found")
	}

	data, err := s.client.Get(ctx, s.sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to read session from redis: %w", err)
	}

	var session user.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	now := biztime.NowUTC()
	if session.IsExpired(now) {
		_ = s.Destroy(ctx, sessionID)
		return nil, apperrors.NewNotFoundError("session not found")
	}

	session.Touch(now, s.ttl)
	if err := s.write(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, sessionID string) error {
	key := s.sessionKey(sessionID)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to read session from redis: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	var session user.Session
	if json.Unmarshal(data, &session) == nil && session.UserID != 0 {
		pipe.SRem(ctx, s.userKey(session.UserID), sessionID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) DestroyByUser(ctx context.Context, userID int64) error {
	userKey := s.userKey(userID)

	ids, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.sessionKey(id))
	}
	keys = append(keys, userKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// PurgeExpired drops set members whose session key already expired in Redis.
func (s *RedisSessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	var removed int64

	iter := s.client.Scan(ctx, 0, SessionUserKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		userKey := iter.Val()
		ids, err := s.client.SMembers(ctx, userKey).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to list user sessions: %w", err)
		}
		for _, id := range ids {
			exists, err := s.client.Exists(ctx, s.sessionKey(id)).Result()
			if err != nil {
				return removed, fmt.Errorf("failed to check session: %w", err)
			}
			if exists == 0 {
				if err := s.client.SRem(ctx, userKey, id).Err(); err != nil {
					return removed, fmt.Errorf("failed to prune session set: %w", err)
				}
				removed++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan session sets: %w", err)
	}

	return removed, nil
}

func (s *RedisSessionStore) write(ctx context.Context, session *user.Session) error {
	remaining := session.ExpiresAt.Sub(biztime.NowUTC())
	if remaining <= 0 {
		return errors.New("session already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	userKey := s.userKey(session.UserID)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.sessionKey(session.ID), data, remaining)
	pipe.SAdd(ctx, userKey, session.ID)
	pipe.Expire(ctx, userKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) sessionKey(sessionID string) string {
	return SessionKeyPrefix + sessionID
}

func (s *RedisSessionStore) userKey(userID int64) string {
	return SessionUserKeyPrefix + strconv.FormatInt(userID, 10)
}

