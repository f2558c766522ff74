// Package requesttime provides middleware and utilities for request-scoped time.
// Every operation within one HTTP request observes the same "now", so a deposit's
// distribution date and the status computed in the same request never disagree.
package requesttime

import (
	"context"
	"net/http"
	"time"
)

type contextKeyRequestTime struct{}

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextKeyRequestTime{}, time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() outside HTTP requests (CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(contextKeyRequestTime{}).(time.Time); ok {
		return t
	}
	return time.Now().UTC()
}

// Unix returns the request-scoped time as unsigned unix seconds, the unit
// chaincert distribution and expiration dates are recorded in.
func Unix(ctx context.Context) uint64 {
	sec := Now(ctx).Unix()
	if sec < 0 {
		return 0
	}
	return uint64(sec)
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyRequestTime{}, t)
}
