// Package gcs writes downloaded documents to a Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// Ensure Exporter implements the interface.
var _ driven.DocumentExporter = (*Exporter)(nil)

// DefaultPrefix is the object prefix for exported documents.
const DefaultPrefix = "documents"

const contentType = "text/markdown; charset=utf-8"

// writerFunc opens a writer for an object. Tests replace it.
type writerFunc func(ctx context.Context, object string) io.WriteCloser

// Exporter uploads documents as Markdown objects.
type Exporter struct {
	client    *storage.Client
	bucket    string
	prefix    string
	newWriter writerFunc
}

// NewExporter creates a client using Application Default Credentials.
func NewExporter(ctx context.Context, bucket, prefix string) (*Exporter, error) {
	if bucket == "" {
		return nil, fmt.Errorf("%w: gcs export requires a bucket", domain.ErrNotConfigured)
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	e := newExporter(bucket, prefix, nil)
	e.client = client
	e.newWriter = func(ctx context.Context, object string) io.WriteCloser {
		w := client.Bucket(bucket).Object(object).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
		w.ContentType = contentType
		w.Metadata = map[string]string{"generator": "lexdraft"}
		return w
	}
	return e, nil
}

func newExporter(bucket, prefix string, newWriter writerFunc) *Exporter {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Exporter{
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
		newWriter: newWriter,
	}
}

// Export uploads content and returns its gs:// URL. Object names carry the
// document version, so an existing object is kept and its URL returned.
func (e *Exporter) Export(ctx context.Context, name string, content []byte) (string, error) {
	object, err := e.ObjectName(name)
	if err != nil {
		return "", err
	}
	location := fmt.Sprintf("gs://%s/%s", e.bucket, object)

	w := e.newWriter(ctx, object)
	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		if alreadyExists(err) {
			logger.Debug("gcs: %s already exists", location)
			return location, nil
		}
		return "", fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		if alreadyExists(err) {
			logger.Debug("gcs: %s already exists", location)
			return location, nil
		}
		return "", fmt.Errorf("failed to finalize GCS write: %w", err)
	}

	logger.Debug("gcs: exported %d bytes to %s", len(content), location)
	return location, nil
}

// alreadyExists reports a failed DoesNotExist precondition.
func alreadyExists(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed
}

// ObjectName returns the object key for a document file name.
func (e *Exporter) ObjectName(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		return "", fmt.Errorf("%w: export name %q", domain.ErrInvalidInput, name)
	}
	return e.prefix + "/" + base, nil
}

// Close releases the client.
func (e *Exporter) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
