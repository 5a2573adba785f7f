package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/billing"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/services"
)

func newTestApp(t *testing.T, seed map[string]any) (*app, error) {
	t.Helper()
	prompts, err := file.NewPromptStore(t.TempDir())
	require.NoError(t, err)
	settings := services.NewSettingsService(memory.NewConfigStore(seed))
	return newApp(context.Background(), settings, prompts)
}

func TestNewApp_MemoryStorageWithoutAI(t *testing.T) {
	a, err := newTestApp(t, map[string]any{
		"storage.backend": "memory",
		"export.dir":      t.TempDir(),
	})
	require.NoError(t, err)
	defer a.Close()

	account := a.accountService()
	require.NotNil(t, account)

	ctx := context.Background()
	_, err = account.Login(ctx, "owner@acme.com.au", false)
	require.NoError(t, err)

	_, err = account.Ask(ctx, "Do I need a privacy policy?", nil)
	assert.ErrorIs(t, err, domain.ErrAssistantFailure)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestNewApp_InvalidSettings(t *testing.T) {
	a, err := newTestApp(t, map[string]any{
		"storage.backend": "floppy",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	require.NotNil(t, a)
	assert.Nil(t, a.accountService())
	assert.NotNil(t, a.quiz)
	a.Wait()
	a.Close()
}

func TestNewApp_RiskPolicyReachesQuiz(t *testing.T) {
	a, err := newTestApp(t, map[string]any{
		"storage.backend": "memory",
		"risk.medium":     int64(1),
	})
	require.NoError(t, err)
	defer a.Close()

	result, err := a.quiz.ScoreQuiz([]int{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Score)
	assert.Equal(t, domain.RiskLevelMedium, result.Risk)
}

func TestNewGateway(t *testing.T) {
	assert.IsType(t, billing.DemoGateway{}, newGateway(domain.IntegrationSettings{}))

	g := newGateway(domain.IntegrationSettings{CheckoutURL: "https://pay.example.com/checkout"})
	assert.IsType(t, &billing.HTTPGateway{}, g)
}
