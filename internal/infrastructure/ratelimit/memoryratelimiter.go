package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryRateLimiter keeps one token bucket per key in process memory. The
// bucket refills Requests tokens per Window and holds at most Requests tokens.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

func NewMemoryRateLimiter(config Config) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(config.Requests) / config.Window.Seconds()),
		burst:    config.Requests,
		idle:     3 * config.Window,
		now:      time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

// Cleanup forgets clients idle for longer than three windows and returns how
// many were dropped.
func (l *MemoryRateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idle)
	removed := 0
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}
