package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chaincerts/internal/sentinel"
	"chaincerts/internal/wallet/models"
	dErrors "chaincerts/pkg/domain-errors"
)

// PostgresStore persists wallet slots in the wallet_slots table.
type PostgresStore struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPostgres constructs a PostgreSQL-backed store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresTx constructs a PostgreSQL-backed store bound to a transaction.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{tx: tx}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer() dbExecutor {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *PostgresStore) Get(ctx context.Context, key Key) ([]byte, error) {
	var value []byte
	err := s.execer().QueryRowContext(ctx,
		`SELECT value FROM wallet_slots WHERE wallet_id = $1 AND slot = $2`,
		key.Wallet.String(), string(key.Slot),
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get wallet slot: %w", err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key Key, value []byte) error {
	query := `
		INSERT INTO wallet_slots (wallet_id, slot, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (wallet_id, slot) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.execer().ExecContext(ctx, query, key.Wallet.String(), string(key.Slot), value); err != nil {
		return fmt.Errorf("set wallet slot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Has(ctx context.Context, key Key) (bool, error) {
	var exists bool
	err := s.execer().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM wallet_slots WHERE wallet_id = $1 AND slot = $2)`,
		key.Wallet.String(), string(key.Slot),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check wallet slot: %w", err)
	}
	return exists, nil
}

// PostgresTx runs each wallet transaction in a database transaction holding
// a transaction-scoped advisory lock on the wallet id.
type PostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPostgresTxRunner wraps db. A zero timeout selects DefaultTxTimeout.
func NewPostgresTxRunner(db *sql.DB, timeout time.Duration) *PostgresTx {
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	return &PostgresTx{db: db, timeout: timeout}
}

func (t *PostgresTx) RunInTx(ctx context.Context, wallet models.WalletID, fn func(ctx context.Context, store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin wallet tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, wallet.String()); err != nil {
		return fmt.Errorf("lock wallet: %w", err)
	}

	if err := fn(ctx, NewPostgresTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit wallet tx: %w", err)
	}
	return nil
}
