// Package tracer is the span abstraction used by the wallet service. It keeps
// OpenTelemetry behind a small interface so tests run on a no-op tracer.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span, marking it failed when err is non-nil.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records the value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Attribute keys shared by wallet spans.
const (
	AttrWalletID    = "wallet.id"
	AttrOrgID       = "wallet.org_id"
	AttrChaincertID = "wallet.chaincert_id"
	AttrErrorKind   = "wallet.error_kind"
	AttrChanged     = "wallet.changed"
)

// Event names used by wallet spans.
const (
	EventAuditEmitted = "audit.emitted"
)
