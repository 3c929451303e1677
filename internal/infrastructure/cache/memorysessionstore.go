package cache

import (
	"context"
	"sync"
	"time"

	"labmanager/internal/domain/user"
	"labmanager/internal/shared/biztime"
	"labmanager/internal/shared/errors"
)

var _ user.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore keeps sessions in process memory. Suitable for a single
// instance and for tests; sessions are lost on restart.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]user.Session
	ttl      time.Duration
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]user.Session),
		ttl:      ttl,
	}
}

func (s *MemorySessionStore) Create(_ context.Context, session *user.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = *session
	return nil
}

func (s *MemorySessionStore) Lookup(_ context.Context, sessionID string) (*user.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.NewNotFoundError("session not found")
	}

	now := biztime.NowUTC()
	if session.IsExpired(now) {
		delete(s.sessions, sessionID)
		return nil, errors.NewNotFoundError("session not found")
	}

	session.Touch(now, s.ttl)
	s.sessions[sessionID] = session
	return &session, nil
}

func (s *MemorySessionStore) Destroy(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func (s *MemorySessionStore) DestroyByUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *MemorySessionStore) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := biztime.NowUTC()
	var removed int64
	for id, session := range s.sessions {
		if session.IsExpired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
