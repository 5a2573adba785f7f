package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// Keys of the whole-object snapshots kept in the key-value store.
const (
	sessionKey      = "session:current"
	sessionPrefix   = "session:token:"
	profilePrefix   = "profile:"
	documentsPrefix = "documents:"
)

// sessionKeyFor returns where the session for ctx is stored: the token key
// for request-scoped sessions, the single local key otherwise. Scoped
// contexts without a token have no session.
func sessionKeyFor(ctx context.Context) (string, bool) {
	token, scoped := driving.SessionFromContext(ctx)
	if !scoped {
		return sessionKey, true
	}
	if token == "" {
		return "", false
	}
	return sessionPrefix + token, true
}

func profileKey(email string) string {
	return profilePrefix + strings.ToLower(email)
}

func documentsKey(email string) string {
	return documentsPrefix + strings.ToLower(email)
}

// loadJSON reads and decodes the snapshot at key. Missing keys return
// domain.ErrNotFound unchanged.
func loadJSON[T any](ctx context.Context, r driven.KeyValueReader, key string) (T, error) {
	var v T
	data, err := r.Get(ctx, key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

// storeJSON encodes v and writes it at key.
func storeJSON[T any](ctx context.Context, w driven.KeyValueWriter, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := w.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// loadDocuments returns the stored document list, empty when none exists.
func loadDocuments(ctx context.Context, r driven.KeyValueReader, email string) ([]domain.SavedDocument, error) {
	docs, err := loadJSON[[]domain.SavedDocument](ctx, r, documentsKey(email))
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	return docs, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
