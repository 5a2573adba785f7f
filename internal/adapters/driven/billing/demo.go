package billing

import (
	"context"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// Ensure DemoGateway implements the interface.
var _ driven.PurchaseGateway = DemoGateway{}

// DemoGateway confirms every purchase without taking payment. Used when no
// billing endpoint is configured.
type DemoGateway struct{}

// Purchase always succeeds.
func (DemoGateway) Purchase(_ context.Context, product domain.Product, email string) (bool, error) {
	logger.Info("Demo mode: applying %s for %s without payment", product.Name, email)
	return true, nil
}
