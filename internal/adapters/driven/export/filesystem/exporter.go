// Package filesystem writes downloaded documents to a local directory.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
)

// Ensure Exporter implements the interface.
var _ driven.DocumentExporter = (*Exporter)(nil)

// Exporter writes documents into a directory.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter for dir. An empty dir is the working directory.
func NewExporter(dir string) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{dir: dir}
}

// Export writes content to dir/name with owner-only permissions, replacing
// any earlier download of the same version, and returns the absolute path.
func (e *Exporter) Export(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("%w: export name %q", domain.ErrInvalidInput, name)
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path, err := filepath.Abs(filepath.Join(e.dir, base))
	if err != nil {
		return "", fmt.Errorf("resolve export path: %w", err)
	}

	tmp, err := os.CreateTemp(e.dir, "."+base+".*")
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
