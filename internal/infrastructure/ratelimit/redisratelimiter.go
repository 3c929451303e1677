package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"labmanager/internal/shared/biztime"
)

// KeyPrefix namespaces rate limit counters.
const KeyPrefix = "ratelimit:ip:"

// RedisRateLimiter is a fixed-window counter shared by every instance using
// the same Redis: one key per client and window, expiring with the window.
type RedisRateLimiter struct {
	client *redis.Client
	config Config
}

func NewRedisRateLimiter(client *redis.Client, config Config) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, config: config}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowSeconds := int64(l.config.Window / time.Second)
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	bucket := biztime.NowUTC().Unix() / windowSeconds
	redisKey := fmt.Sprintf("%s%s:%d", KeyPrefix, key, bucket)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	// First hit of the window owns the expiry.
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.config.Window+time.Second).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate counter expiry: %w", err)
		}
	}

	return count <= int64(l.config.Requests), nil
}
