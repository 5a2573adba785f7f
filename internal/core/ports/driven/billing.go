package driven

import (
	"context"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

// PurchaseGateway initiates payment for a product. Payment collection is
// opaque; only the outcome is consumed.
type PurchaseGateway interface {
	// Purchase returns true if payment was initiated successfully.
	Purchase(ctx context.Context, product domain.Product, email string) (bool, error)
}

// NewsletterService subscribes an address to the mailing list.
type NewsletterService interface {
	// Subscribe returns true if the subscription was accepted, with a
	// provider message suitable for logging.
	Subscribe(ctx context.Context, email string) (bool, string, error)
}

// DocumentExporter writes a downloaded document.
type DocumentExporter interface {
	// Export stores content under name and returns its location.
	Export(ctx context.Context, name string, content []byte) (string, error)
}
