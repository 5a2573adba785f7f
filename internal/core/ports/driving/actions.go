package driving

import "github.com/custodia-labs/lexdraft-cli/internal/core/domain"

// DocumentActions hands saved documents to desktop tools.
type DocumentActions interface {
	// CopyToClipboard copies the rendered document to the system clipboard.
	CopyToClipboard(doc *domain.SavedDocument) error

	// Open opens an exported location in the default application.
	Open(location string) error
}
