// Package requestcontext carries request-scoped values (request ID, verified
// caller) between middleware, handlers, and services.
package requestcontext

import (
	"context"
	"time"

	"chaincerts/pkg/platform/middleware/requesttime"
)

type (
	requestIDKey struct{}
	callerKey    struct{}
)

// WithRequestID stores the correlation ID for the current request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the correlation ID, or "" outside an HTTP request.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithCaller stores the verified caller address resolved from the bearer token.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// Caller returns the verified caller address, or "" when the request was not authenticated.
func Caller(ctx context.Context) string {
	if v, ok := ctx.Value(callerKey{}).(string); ok {
		return v
	}
	return ""
}

// Now returns the request-scoped time.
func Now(ctx context.Context) time.Time {
	return requesttime.Now(ctx)
}

// WithTime pins the request-scoped time, mostly for tests.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return requesttime.WithTime(ctx, t)
}
