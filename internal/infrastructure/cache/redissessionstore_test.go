package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labmanager/internal/domain/user"
	"labmanager/internal/domain/user/testutil"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSessionStore(t *testing.T) {
	testutil.RunSessionStoreTests(t, func(t *testing.T, clock *testutil.Clock) user.SessionStore {
		mr, client := setupTestRedis(t)
		clock.OnAdvance(mr.FastForward)
		return NewRedisSessionStore(client, testutil.SessionTTL)
	})
}

func TestRedisSessionStore_KeyLayout(t *testing.T) {
	ctx := context.Background()
	testutil.NewClock(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	mr, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, testutil.SessionTTL)

	s := testutil.NewSession(t, 42)
	require.NoError(t, store.Create(ctx, s))

	assert.True(t, mr.Exists(SessionKeyPrefix+s.ID))
	assert.Equal(t, testutil.SessionTTL, mr.TTL(SessionKeyPrefix+s.ID))

	members, err := mr.SMembers(SessionUserKeyPrefix + "42")
	require.NoError(t, err)
	assert.Equal(t, []string{s.ID}, members)

	require.NoError(t, store.Destroy(ctx, s.ID))
	assert.False(t, mr.Exists(SessionKeyPrefix+s.ID))
}

func TestRedisSessionStore_PurgePrunesDanglingMembers(t *testing.T) {
	ctx := context.Background()
	testutil.NewClock(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	mr, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, testutil.SessionTTL)

	s := testutil.NewSession(t, 5)
	require.NoError(t, store.Create(ctx, s))
	// Session key vanishes while the user set survives.
	mr.Del(SessionKeyPrefix + s.ID)

	removed, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	members, _ := mr.SMembers(SessionUserKeyPrefix + "5")
	assert.Empty(t, members)
}

func TestRedisSessionStore_ErrorsWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, testutil.SessionTTL)
	mr.Close()

	_, err := store.Lookup(ctx, "sess_x")
	assert.Error(t, err)
}
