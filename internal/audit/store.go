package audit

import "context"

// Store persists audit events. ListByWallet returns events in append order.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByWallet(ctx context.Context, walletID string) ([]Event, error)
}
