// Package requestcontext carries per-request values (request ID, request time)
// through context so lower layers stay free of HTTP concerns.
package requestcontext

import (
	"context"
	"time"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	requestTimeKey
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID from the context, or "" if absent.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithNow pins the request time in the context so a whole request observes a
// single clock reading.
func WithNow(ctx context.Context, now time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey, now)
}

// Now returns the pinned request time, falling back to the wall clock.
func Now(ctx context.Context) time.Time {
	if v, ok := ctx.Value(requestTimeKey).(time.Time); ok {
		return v
	}
	return time.Now().UTC()
}
