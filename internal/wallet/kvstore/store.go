// Package kvstore holds the per-wallet storage slots behind a small
// key-value contract and the transactional boundary the wallet service
// runs each operation in.
package kvstore

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store,Tx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chaincerts/internal/sentinel"
	"chaincerts/internal/wallet/models"
)

// Slot names one of the fixed storage cells of a wallet.
type Slot string

const (
	SlotOwner             Slot = "owner"
	SlotAccessControlList Slot = "acl"
	SlotChaincerts        Slot = "chaincerts"
)

// Slots lists every slot a wallet may hold.
var Slots = []Slot{SlotOwner, SlotAccessControlList, SlotChaincerts}

// Key addresses one slot of one wallet.
type Key struct {
	Wallet models.WalletID
	Slot   Slot
}

// KeyFor builds the key of slot in wallet.
func KeyFor(wallet models.WalletID, slot Slot) Key {
	return Key{Wallet: wallet, Slot: slot}
}

func (k Key) String() string {
	return k.Wallet.String() + "/" + string(k.Slot)
}

// Store is the existence-checked key-value surface the ACL manager and the
// registry operate on. Get returns sentinel.ErrNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte) error
	Has(ctx context.Context, key Key) (bool, error)
}

// Tx runs fn against a store whose writes become visible only when fn
// returns nil. Operations on the same wallet are serialized.
type Tx interface {
	RunInTx(ctx context.Context, wallet models.WalletID, fn func(ctx context.Context, store Store) error) error
}

// Read decodes the value at key. The boolean is false when the key is absent.
func Read[T any](ctx context.Context, s Store, key Key) (T, bool, error) {
	var out T
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return out, false, nil
		}
		return out, false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, true, nil
}

// Write encodes v and stores it at key.
func Write[T any](ctx context.Context, s Store, key Key, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
