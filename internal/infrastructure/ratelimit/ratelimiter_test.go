package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labmanager/internal/shared/biztime"
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

func TestRedisRateLimiter_Allow(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	restore := biztime.SetClock(func() time.Time { return now })
	defer restore()

	mr, client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Config{Requests: 3, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed, "4th request should be denied")

	allowed, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed, "other clients have their own counter")

	key := fmt.Sprintf("%s10.0.0.1:%d", KeyPrefix, now.Unix()/60)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute+time.Second, mr.TTL(key))
}

func TestRedisRateLimiter_NewWindowResets(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	restore := biztime.SetClock(func() time.Time { return now })
	defer restore()

	_, client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Config{Requests: 1, Window: time.Minute})
	ctx := context.Background()

	allowed, _ := limiter.Allow(ctx, "ip")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "ip")
	assert.False(t, allowed)

	now = now.Add(time.Minute)
	allowed, err := limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_ErrorWhenUnavailable(t *testing.T) {
	mr, client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Config{Requests: 1, Window: time.Minute})
	mr.Close()

	_, err := limiter.Allow(context.Background(), "ip")
	assert.Error(t, err)
}

func TestMemoryRateLimiter_Allow(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	limiter := NewMemoryRateLimiter(Config{Requests: 2, Window: time.Minute})
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow(ctx, "a")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow(ctx, "b")
	assert.True(t, allowed)

	// One token refills every 30 seconds.
	now = now.Add(30 * time.Second)
	allowed, _ = limiter.Allow(ctx, "a")
	assert.True(t, allowed)
}

func TestMemoryRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	limiter := NewMemoryRateLimiter(Config{Requests: 5, Window: time.Minute})
	limiter.now = func() time.Time { return now }

	_, _ = limiter.Allow(context.Background(), "old")
	now = now.Add(5 * time.Minute)
	_, _ = limiter.Allow(context.Background(), "new")

	assert.Equal(t, 1, limiter.Cleanup())
	assert.Len(t, limiter.visitors, 1)
}
