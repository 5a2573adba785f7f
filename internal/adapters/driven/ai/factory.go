// Package ai builds the configured model adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/llm/ratelimit"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/llm/vertex"
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 10 * time.Second

// pingableModel is a model adapter that can check its credentials.
type pingableModel interface {
	ratelimit.Model
	Ping(ctx context.Context) error
}

// Models holds the model services for the configured provider.
type Models struct {
	Generation driven.GenerationService
	Assistant  driven.GroundedAnswerService
	Provider   domain.AIProvider

	base pingableModel
}

// Ping checks the provider is reachable with the configured credentials.
func (m *Models) Ping(ctx context.Context) error {
	return m.base.Ping(ctx)
}

// Close releases the underlying client.
func (m *Models) Close() error {
	if m == nil || m.base == nil {
		return nil
	}
	return m.base.Close()
}

// CreateModels creates the model services for settings.
// Returns nil if the provider is not configured.
func CreateModels(ctx context.Context, settings domain.AISettings) (*Models, error) {
	if !settings.Provider.IsValid() {
		return nil, fmt.Errorf("%w: unsupported AI provider: %s", domain.ErrInvalidInput, settings.Provider)
	}
	if !settings.IsConfigured() {
		return nil, nil
	}

	var (
		base          pingableModel
		isRateLimited ratelimit.Classifier
		err           error
	)
	switch settings.Provider {
	case domain.AIProviderVertex:
		base, err = vertex.NewService(ctx, vertex.Config{
			Project: settings.Project,
			Region:  settings.Region,
			Model:   settings.Model,
		})
		isRateLimited = vertex.IsRateLimited
	case domain.AIProviderOpenAI:
		base, err = openai.NewService(openai.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		isRateLimited = openai.IsRateLimited
	}
	if err != nil {
		return nil, err
	}

	limited := ratelimit.Wrap(base, settings.RequestsPerMinute, isRateLimited)
	return &Models{
		Generation: limited,
		Assistant:  limited,
		Provider:   settings.Provider,
		base:       base,
	}, nil
}

// CreateAndValidateModels creates the model services and validates connectivity.
// Returns nil if the provider is not configured.
func CreateAndValidateModels(ctx context.Context, settings domain.AISettings) (*Models, error) {
	models, err := CreateModels(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'lexdraft settings set' to fix",
			domain.ErrNotConfigured, err)
	}
	if models == nil {
		return nil, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := models.Ping(pingCtx); err != nil {
		_ = models.Close()
		return nil, fmt.Errorf("%w: %s unreachable (%w). Run 'lexdraft settings check' for details",
			domain.ErrServiceUnavailable, settings.Provider, err)
	}
	return models, nil
}

// ValidateConfig creates the configured provider and pings it.
func ValidateConfig(ctx context.Context, settings domain.AISettings) error {
	if !settings.IsConfigured() {
		return fmt.Errorf("%w: %s provider is missing credentials", domain.ErrNotConfigured, settings.Provider)
	}
	models, err := CreateModels(ctx, settings)
	if err != nil {
		return err
	}
	defer models.Close()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return models.Ping(pingCtx)
}
