package driving

import (
	"context"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

// GenerationRequest is the input of one document generation.
type GenerationRequest struct {
	Template     domain.Template
	Form         domain.FormData
	Jurisdiction string

	// Clauses are merged in this order.
	Clauses []domain.OptionalClause
}

// DocumentGenerator produces a document body and risk analysis.
type DocumentGenerator interface {
	// Generate fails with domain.ErrGenerationFailure on a non-conformant
	// response and domain.ErrServiceUnavailable on transport errors.
	// Form completeness is the caller's responsibility.
	Generate(ctx context.Context, req GenerationRequest) (*domain.GeneratedDocument, error)
}
