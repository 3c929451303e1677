// Package testutil provides shared fixtures and behavioural checks for the user domain.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labmanager/internal/domain/user"
	"labmanager/internal/shared/biztime"
	"labmanager/internal/shared/errors"
)

// SessionTTL is the sliding window used by RunSessionStoreTests.
const SessionTTL = time.Hour

// Clock is a manually advanced time source installed into biztime.
type Clock struct {
	mu      sync.Mutex
	now     time.Time
	onAdv   func(time.Duration)
	restore func()
}

// NewClock pins biztime to a fixed instant until the test ends.
func NewClock(t *testing.T, start time.Time) *Clock {
	c := &Clock{now: start.UTC()}
	c.restore = biztime.SetClock(c.Now)
	t.Cleanup(c.restore)
	return c
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward and notifies the backend hook, if any.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	hook := c.onAdv
	c.mu.Unlock()
	if hook != nil {
		hook(d)
	}
}

// OnAdvance registers a hook run after every Advance, e.g. to fast-forward a
// backend with its own notion of time.
func (c *Clock) OnAdvance(fn func(time.Duration)) {
	c.mu.Lock()
	c.onAdv = fn
	c.mu.Unlock()
}

// NewUser returns a user with a preloaded role, suitable for NewSession.
func NewUser(id int64, role string) *user.User {
	return &user.User{
		ID:        id,
		Email:     "user@example.org",
		FirstName: "Test",
		LastName:  "User",
		RoleID:    1,
		Role:      &user.Role{ID: 1, Name: role},
	}
}

// NewSession creates a session for userID at the current biztime instant.
func NewSession(t *testing.T, userID int64) *user.Session {
	t.Helper()
	s, err := user.NewSession(NewUser(userID, "researcher"), user.Meta{IPAddress: "127.0.0.1", UserAgent: "test"}, SessionTTL)
	require.NoError(t, err)
	return s
}

// StoreFactory builds an empty store bound to the given clock.
type StoreFactory func(t *testing.T, clock *Clock) user.SessionStore

// RunSessionStoreTests checks the behaviour every SessionStore must share.
func RunSessionStoreTests(t *testing.T, newStore StoreFactory) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("create then lookup", func(t *testing.T) {
		clock := NewClock(t, start)
		store := newStore(t, clock)

		s := NewSession(t, 7)
		require.NoError(t, store.Create(ctx, s))

		got, err := store.Lookup(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
		assert.Equal(t, int64(7), got.UserID)
		assert.Equal(t, "researcher", got.Role)
		assert.Equal(t, "127.0.0.1", got.IPAddress)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		clock := NewClock(t, start)
		store := newStore(t, clock)

		_, err := store.Lookup(ctx, "sess_missing")
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("lookup slides expiry", func(t *testing.T) {
		clock := NewClock(t, start)
		store := newStore(t, clock)

		s := NewSession(t, 7)
		require.NoError(t, store.Create(ctx, s))

		clock.Advance(30 * time.Minute)
		got, err := store.Lookup(ctx, s.ID)
		require.NoError(t, err)
		assert.True(t, got.ExpiresAt.Equal(clock.Now().Add(SessionTTL)))
		assert.True(t, got.LastActivityAt.Equal(clock.Now()))

		// Past the original expiry, alive thanks to the touch above.
		clock.Advance(50 * time.Minute)
		_, err = store.Lookup(ctx, s.ID)
		assert.NoError(t, err)
	})

	t.Run("expired session is rejected", func(t *testing.T) {
		clock := NewClock(t, start)
		store := newStore(t, clock)

		s := NewSession(t, 7)
		require.NoError(t, store.Create(ctx, s))

		clock.Advance(SessionTTL + time.Minute)
		_, err := store.Lookup(ctx, s.ID)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("destroy is idempotent", func(t *testing.T) {
		clock := NewClock(t, start)
		store := newStore(t, clock)

		s := NewSession(t, 7)
		require.NoError(t, store.Create(ctx, s))

		require.NoError(t, store.Destroy(ctx, s.ID))
		require.NoError(t, store.Destroy(ctx, s.ID))
		require.NoError(t, store.Destroy(ctx, "sess_never_existed"))

		_, err := store.Lookup(ctx, s.ID)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("destroy by user keeps other users", func(t *testing.T) {
		clock := NewClock(t, start)
		store := newStore(t, clock)

		a1, a2, b := NewSession(t, 1), NewSession(t, 1), NewSession(t, 2)
		for _, s := range []*user.Session{a1, a2, b} {
			require.NoError(t, store.Create(ctx, s))
		}

		require.NoError(t, store.DestroyByUser(ctx, 1))

		_, err := store.Lookup(ctx, a1.ID)
		assert.True(t, errors.IsNotFoundError(err))
		_, err = store.Lookup(ctx, a2.ID)
		assert.True(t, errors.IsNotFoundError(err))
		_, err = store.Lookup(ctx, b.ID)
		assert.NoError(t, err)
	})

	t.Run("purge keeps live sessions", func(t *testing.T) {
		clock := NewClock(t, start)
		store := newStore(t, clock)

		old := NewSession(t, 3)
		require.NoError(t, store.Create(ctx, old))
		clock.Advance(2 * SessionTTL)
		fresh := NewSession(t, 4)
		require.NoError(t, store.Create(ctx, fresh))

		_, err := store.PurgeExpired(ctx)
		require.NoError(t, err)

		_, err = store.Lookup(ctx, old.ID)
		assert.True(t, errors.IsNotFoundError(err))
		_, err = store.Lookup(ctx, fresh.ID)
		assert.NoError(t, err)
	})
}
