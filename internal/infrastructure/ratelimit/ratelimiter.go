// Package ratelimit counts requests per client key within a time window.
package ratelimit

import (
	"context"
	"time"
)

// RateLimiter decides whether one more request for key fits the limit.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Config is the number of requests allowed per window.
type Config struct {
	Requests int
	Window   time.Duration
}
