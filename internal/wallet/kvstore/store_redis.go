package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chaincerts/internal/sentinel"
	"chaincerts/internal/wallet/models"
	dErrors "chaincerts/pkg/domain-errors"
)

// DefaultRedisPrefix namespaces wallet keys when no prefix is configured.
const DefaultRedisPrefix = "chaincerts"

// maxRedisTxAttempts bounds optimistic retries when a watched key changes.
const maxRedisTxAttempts = 3

// redisCommander is the subset of commands shared by *redis.Client and *redis.Tx.
type redisCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps wallet slots as plain Redis strings.
type RedisStore struct {
	cmd    redisCommander
	prefix string
}

// NewRedis constructs a Redis-backed store. An empty prefix selects DefaultRedisPrefix.
func NewRedis(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{cmd: client, prefix: normalizePrefix(prefix)}
}

func normalizePrefix(prefix string) string {
	if prefix == "" {
		return DefaultRedisPrefix
	}
	return prefix
}

func (s *RedisStore) redisKey(key Key) string {
	return redisKey(s.prefix, key)
}

func redisKey(prefix string, key Key) string {
	return fmt.Sprintf("%s:wallet:%s:%s", prefix, key.Wallet, key.Slot)
}

func (s *RedisStore) Get(ctx context.Context, key Key) ([]byte, error) {
	v, err := s.cmd.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key Key, value []byte) error {
	if err := s.cmd.Set(ctx, s.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Has(ctx context.Context, key Key) (bool, error) {
	n, err := s.cmd.Exists(ctx, s.redisKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// RedisTx watches every slot of the wallet, runs fn against staged writes
// and flushes them in a MULTI/EXEC pipeline. A concurrent write to any
// watched slot aborts the attempt and fn is run again from fresh reads.
type RedisTx struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisTx wraps client. A zero timeout selects DefaultTxTimeout.
func NewRedisTx(client *redis.Client, prefix string, timeout time.Duration) *RedisTx {
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	return &RedisTx{client: client, prefix: normalizePrefix(prefix), timeout: timeout}
}

func (t *RedisTx) RunInTx(ctx context.Context, wallet models.WalletID, fn func(ctx context.Context, store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	watched := make([]string, 0, len(Slots))
	for _, slot := range Slots {
		watched = append(watched, redisKey(t.prefix, KeyFor(wallet, slot)))
	}

	for attempt := 0; attempt < maxRedisTxAttempts; attempt++ {
		err := t.client.Watch(ctx, func(rtx *redis.Tx) error {
			staged := newStagedStore(&RedisStore{cmd: rtx, prefix: t.prefix})
			if err := fn(ctx, staged); err != nil {
				return err
			}
			if !staged.dirty() {
				return nil
			}
			_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				for key, value := range staged.writes {
					pipe.Set(ctx, redisKey(t.prefix, key), value, 0)
				}
				return nil
			})
			return err
		}, watched...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("wallet %s: %w", wallet, sentinel.ErrTxConflict)
}
