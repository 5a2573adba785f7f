package driven

import "context"

// KeyValueReader reads whole-object snapshots by key.
type KeyValueReader interface {
	// Get returns the value stored at key or domain.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
}

// KeyValueWriter writes whole-object snapshots by key.
type KeyValueWriter interface {
	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// KeyValueTx is a read-modify-write scope. Implementations may require all
// reads to happen before the first write.
type KeyValueTx interface {
	KeyValueReader
	KeyValueWriter
}

// KeyValueStore persists serialised profiles, document lists and the
// session reference.
type KeyValueStore interface {
	KeyValueReader
	KeyValueWriter

	// Transact runs fn atomically. Writes made through tx become visible
	// only if fn returns nil.
	Transact(ctx context.Context, fn func(ctx context.Context, tx KeyValueTx) error) error
}
