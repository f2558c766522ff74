package sentinel

import "errors"

// Sentinel dependency errors. Stores return these (optionally wrapped) so the
// wallet service can translate them into domain errors exactly once.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
	// ErrTxConflict reports that a concurrent writer invalidated an optimistic transaction.
	ErrTxConflict = errors.New("transaction conflict")
)
