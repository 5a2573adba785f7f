// Package firestore provides a Cloud Firestore-backed driven.KeyValueStore
// for deployments where several API instances share one ledger.
package firestore

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.KeyValueStore = (*Store)(nil)

// DefaultCollection holds one document per key.
const DefaultCollection = "lexdraft_kv"

// record is the stored shape of one key.
type record struct {
	Key       string    `firestore:"key"`
	Value     []byte    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt,serverTimestamp"`
}

// Store keeps snapshots in a Firestore collection.
type Store struct {
	client     *firestore.Client
	collection string
	ownsClient bool
}

// NewStore creates a Firestore client for projectID.
func NewStore(ctx context.Context, projectID, collection string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: projectID must be provided to create a firestore client", domain.ErrNotConfigured)
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	s := NewStoreWithClient(client, collection)
	s.ownsClient = true
	return s, nil
}

// NewStoreWithClient wraps an existing client. Close does not close it.
func NewStoreWithClient(client *firestore.Client, collection string) *Store {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{client: client, collection: collection}
}

// Close releases the client if the store created it.
func (s *Store) Close() error {
	if s.ownsClient {
		return s.client.Close()
	}
	return nil
}

// Get returns the value at key or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	snap, err := s.ref(key).Get(ctx)
	return decode(key, snap, err)
}

// Set stores value at key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.ref(key).Set(ctx, record{Key: key, Value: value}); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.ref(key).Delete(ctx); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Transact runs fn in a Firestore transaction. Firestore retries fn on
// contention and requires every read to precede the first write.
func (s *Store) Transact(ctx context.Context, fn func(ctx context.Context, tx driven.KeyValueTx) error) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(ctx, &kvTx{store: s, tx: tx})
	})
}

func (s *Store) ref(key string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(DocID(key))
}

// DocID maps a key to a valid document ID. Keys may contain '/', which
// Firestore treats as a path separator.
func DocID(key string) string {
	return url.PathEscape(key)
}

type kvTx struct {
	store *Store
	tx    *firestore.Transaction
}

var _ driven.KeyValueTx = (*kvTx)(nil)

func (t *kvTx) Get(_ context.Context, key string) ([]byte, error) {
	snap, err := t.tx.Get(t.store.ref(key))
	return decode(key, snap, err)
}

func (t *kvTx) Set(_ context.Context, key string, value []byte) error {
	return t.tx.Set(t.store.ref(key), record{Key: key, Value: value})
}

func (t *kvTx) Delete(_ context.Context, key string) error {
	return t.tx.Delete(t.store.ref(key))
}

func decode(key string, snap *firestore.DocumentSnapshot, err error) ([]byte, error) {
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	var rec record
	if err := snap.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return rec.Value, nil
}
