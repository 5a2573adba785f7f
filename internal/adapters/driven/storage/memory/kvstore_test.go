package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
)

func TestKeyValueStore_SetGetDelete(t *testing.T) {
	store := NewKeyValueStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Set(ctx, "profile:a@b.example", []byte(`{"tier":"free"}`)))
	got, err := store.Get(ctx, "profile:a@b.example")
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"free"}`, string(got))

	require.NoError(t, store.Delete(ctx, "profile:a@b.example"))
	require.NoError(t, store.Delete(ctx, "profile:a@b.example"))
	_, err = store.Get(ctx, "profile:a@b.example")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKeyValueStore_ValuesAreCopied(t *testing.T) {
	store := NewKeyValueStore()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[0] = 'y'
	again, _ := store.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestKeyValueStore_TransactCommits(t *testing.T) {
	store := NewKeyValueStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "gone", []byte("x")))

	err := store.Transact(ctx, func(ctx context.Context, tx driven.KeyValueTx) error {
		require.NoError(t, tx.Set(ctx, "a", []byte("1")))
		v, err := tx.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "1", string(v))

		require.NoError(t, tx.Delete(ctx, "gone"))
		_, err = tx.Get(ctx, "gone")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		return nil
	})
	require.NoError(t, err)

	v, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", string(v))
	_, err = store.Get(ctx, "gone")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKeyValueStore_TransactRollsBackOnError(t *testing.T) {
	store := NewKeyValueStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "a", []byte("before")))

	boom := errors.New("boom")
	err := store.Transact(ctx, func(ctx context.Context, tx driven.KeyValueTx) error {
		require.NoError(t, tx.Set(ctx, "a", []byte("after")))
		require.NoError(t, tx.Set(ctx, "b", []byte("new")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	v, _ := store.Get(ctx, "a")
	assert.Equal(t, "before", string(v))
	assert.Equal(t, 1, store.Len())
}

func TestKeyValueStore_TransactIsSerialised(t *testing.T) {
	store := NewKeyValueStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "n", []byte{0}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Transact(ctx, func(ctx context.Context, tx driven.KeyValueTx) error {
				v, err := tx.Get(ctx, "n")
				if err != nil {
					return err
				}
				return tx.Set(ctx, "n", []byte{v[0] + 1})
			})
		}()
	}
	wg.Wait()

	v, err := store.Get(ctx, "n")
	require.NoError(t, err)
	assert.Equal(t, byte(50), v[0])
}
