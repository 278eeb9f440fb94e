package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"io"
	"log/slog"
	"time"
)

// ContextKey is the type used for all request-context keys in this package,
// so values set here can never collide with keys from other packages.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's UUID, set by the
	// Authenticate middleware after token validation.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the request trace ID, set once per request by the
	// trace middleware and echoed in error responses.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID; the
	// hex-encoded form is twice this long.
	TraceIDLength = 16
)

// entropy is the randomness source for trace IDs. A package variable so the
// failure path is reachable from tests; production always uses crypto/rand.
var entropy io.Reader = rand.Reader

// SetTraceID returns a child context carrying a freshly generated trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID returns the trace ID stored in the context, or "" when the
// context carries none.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID produces a 32-character hex trace ID. If the entropy
// source fails it degrades to a time-derived ID rather than returning a
// constant, so log correlation keeps working even then.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if n, err := io.ReadFull(entropy, b); err != nil {
		slog.Error("trace ID entropy source failed, using time-based fallback",
			"error", err,
			"bytes_read", n)
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID builds a trace ID from two clock readings and the
// nanosecond remainder. Collisions are possible but require two requests in
// the same nanosecond, which is acceptable for a degraded mode.
func fallbackTraceID() string {
	b := make([]byte, TraceIDLength)
	now := time.Now()
	binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint32(b[8:12], uint32(now.Nanosecond()))
	binary.BigEndian.PutUint32(b[12:16], uint32(now.Unix()))
	return hex.EncodeToString(b)
}
