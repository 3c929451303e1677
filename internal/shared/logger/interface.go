package logger

import (
	"context"
	"io"
	"log/slog"
)

// Interface is the structured logger handed to every component. Key/value
// pairs follow slog conventions.
type Interface interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	With(keysAndValues ...any) Interface
	// Named scopes the logger to a component; nested names join with a dot.
	Named(name string) Interface
}

type slogLogger struct {
	logger *slog.Logger
	name   string
}

// NewLogger wraps the process-wide logger configured by Init.
func NewLogger() Interface {
	return &slogLogger{logger: Get()}
}

// NewNop returns a logger that discards everything.
func NewNop() Interface {
	return &slogLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// NewFromSlog wraps an existing slog logger.
func NewFromSlog(l *slog.Logger) Interface {
	return &slogLogger{logger: l}
}

func (l *slogLogger) log(level slog.Level, msg string, kv []any) {
	if !l.logger.Enabled(context.Background(), level) {
		return
	}
	if l.name != "" {
		kv = append([]any{"logger", l.name}, kv...)
	}
	l.logger.Log(context.Background(), level, msg, kv...)
}

func (l *slogLogger) Debugw(msg string, keysAndValues ...any) {
	l.log(slog.LevelDebug, msg, keysAndValues)
}

func (l *slogLogger) Infow(msg string, keysAndValues ...any) {
	l.log(slog.LevelInfo, msg, keysAndValues)
}

func (l *slogLogger) Warnw(msg string, keysAndValues ...any) {
	l.log(slog.LevelWarn, msg, keysAndValues)
}

func (l *slogLogger) Errorw(msg string, keysAndValues ...any) {
	l.log(slog.LevelError, msg, keysAndValues)
}

func (l *slogLogger) With(keysAndValues ...any) Interface {
	return &slogLogger{logger: l.logger.With(keysAndValues...), name: l.name}
}

func (l *slogLogger) Named(name string) Interface {
	if l.name != "" {
		name = l.name + "." + name
	}
	return &slogLogger{logger: l.logger, name: name}
}
