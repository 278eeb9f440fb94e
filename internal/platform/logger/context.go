package logger

import (
	"context"
	"log/slog"
)

// loggerKey is the context key type for the request-scoped logger.
// An unexported struct type guarantees no collisions with other packages.
type loggerKey struct{}

// WithLogger returns a copy of ctx carrying the given logger. Request
// middleware uses this to make a trace-aware logger available to every
// layer below the handler.
//
// Panics if logger is nil, since a nil logger in the context would turn
// every downstream log call into a nil pointer dereference far from the
// actual mistake.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("nil logger passed to WithLogger")
	}
	return context.WithValue(ctx, loggerKey{}, log)
}

// FromContext returns the logger carried by ctx, or the process default
// logger when ctx carries none. The result is never nil.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger carried by ctx, or the given
// fallback when ctx carries none. A nil fallback is replaced by the process
// default logger, so the result is never nil.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if fallback == nil {
		fallback = slog.Default()
	}
	if ctx == nil {
		return fallback
	}
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return fallback
}
