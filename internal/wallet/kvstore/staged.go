package kvstore

import (
	"context"
	"slices"
)

// stagedStore buffers writes over a base store. Reads see staged values
// first so a transaction observes its own writes before commit.
type stagedStore struct {
	base   Store
	writes map[Key][]byte
}

func newStagedStore(base Store) *stagedStore {
	return &stagedStore{base: base, writes: make(map[Key][]byte)}
}

func (s *stagedStore) Get(ctx context.Context, key Key) ([]byte, error) {
	if v, ok := s.writes[key]; ok {
		return slices.Clone(v), nil
	}
	return s.base.Get(ctx, key)
}

func (s *stagedStore) Set(_ context.Context, key Key, value []byte) error {
	s.writes[key] = slices.Clone(value)
	return nil
}

func (s *stagedStore) Has(ctx context.Context, key Key) (bool, error) {
	if _, ok := s.writes[key]; ok {
		return true, nil
	}
	return s.base.Has(ctx, key)
}

func (s *stagedStore) dirty() bool {
	return len(s.writes) > 0
}
