package kvstore

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"chaincerts/internal/wallet/models"
	dErrors "chaincerts/pkg/domain-errors"
	platformsync "chaincerts/pkg/platform/sync"
)

// Shard contention metrics for monitoring lock behavior
var (
	shardLockWaitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chaincerts_wallet_shard_lock_wait_seconds",
		Help:    "Time spent waiting to acquire a wallet shard lock",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
	shardLockAcquisitions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chaincerts_wallet_shard_lock_acquisitions_total",
		Help: "Total number of wallet shard lock acquisitions",
	})
)

// DefaultTxTimeout bounds a wallet transaction when the caller set no deadline.
const DefaultTxTimeout = 5 * time.Second

// MemoryTx serializes transactions per wallet with a sharded mutex and
// commits staged writes only when the callback succeeds.
type MemoryTx struct {
	mu      *platformsync.ShardedMutex
	store   *MemoryStore
	timeout time.Duration
}

// NewMemoryTx wraps store. A zero timeout selects DefaultTxTimeout.
func NewMemoryTx(store *MemoryStore, timeout time.Duration) *MemoryTx {
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	return &MemoryTx{mu: platformsync.NewShardedMutex(), store: store, timeout: timeout}
}

func (t *MemoryTx) RunInTx(ctx context.Context, wallet models.WalletID, fn func(ctx context.Context, store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	key := wallet.String()
	lockStart := time.Now()
	t.mu.Lock(key)
	shardLockWaitDuration.Observe(time.Since(lockStart).Seconds())
	shardLockAcquisitions.Inc()
	defer t.mu.Unlock(key)

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	staged := newStagedStore(t.store)
	if err := fn(ctx, staged); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted before commit")
	}
	if staged.dirty() {
		t.store.apply(staged.writes)
	}
	return nil
}
