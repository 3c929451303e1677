// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"labmanager/internal/shared/logger"
)

// SafeGo launches a goroutine with panic recovery. If the goroutine panics,
// the panic is caught and logged with stack trace instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer recoverPanic(log, name)
		fn()
	}()
}

// Every runs fn on each tick of interval until ctx is done. A panic in one run
// is logged and does not stop later runs.
func Every(ctx context.Context, log logger.Interface, name string, interval time.Duration, fn func(ctx context.Context)) {
	SafeGo(log, name, func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce(ctx, log, name, fn)
			}
		}
	})
}

func runOnce(ctx context.Context, log logger.Interface, name string, fn func(ctx context.Context)) {
	defer recoverPanic(log, name)
	fn(ctx)
}

func recoverPanic(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
