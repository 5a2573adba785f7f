package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
)

// Ensure KeyValueStore implements the interface.
var _ driven.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore is an in-memory implementation of driven.KeyValueStore.
// Values are copied on the way in and out.
type KeyValueStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewKeyValueStore creates a new in-memory key-value store.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{
		values: make(map[string][]byte),
	}
}

// Get returns the value at key.
func (s *KeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(v), nil
}

// Set stores value at key.
func (s *KeyValueStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = clone(value)
	return nil
}

// Delete removes key.
func (s *KeyValueStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Transact runs fn while holding the store lock. fn must only use tx;
// calling the store directly from fn deadlocks.
func (s *KeyValueStore) Transact(ctx context.Context, fn func(ctx context.Context, tx driven.KeyValueTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{parent: s.values, pending: make(map[string][]byte)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for k, v := range tx.pending {
		if v == nil {
			delete(s.values, k)
			continue
		}
		s.values[k] = v
	}
	return nil
}

// Len returns the number of stored keys.
func (s *KeyValueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// memoryTx buffers writes until commit. A nil pending value is a delete.
type memoryTx struct {
	parent  map[string][]byte
	pending map[string][]byte
}

func (t *memoryTx) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := t.pending[key]; ok {
		if v == nil {
			return nil, domain.ErrNotFound
		}
		return clone(v), nil
	}
	v, ok := t.parent[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(v), nil
}

func (t *memoryTx) Set(_ context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	t.pending[key] = clone(value)
	return nil
}

func (t *memoryTx) Delete(_ context.Context, key string) error {
	t.pending[key] = nil
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
