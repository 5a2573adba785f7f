package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/llm/ratelimit"
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

func modelsServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o-mini","object":"model"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCreateModels(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown provider", func(t *testing.T) {
		_, err := CreateModels(ctx, domain.AISettings{Provider: "anthropic"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unconfigured returns nil", func(t *testing.T) {
		models, err := CreateModels(ctx, domain.AISettings{Provider: domain.AIProviderVertex})
		require.NoError(t, err)
		assert.Nil(t, models)

		models, err = CreateModels(ctx, domain.AISettings{Provider: domain.AIProviderOpenAI})
		require.NoError(t, err)
		assert.Nil(t, models)
	})

	t.Run("openai without limit", func(t *testing.T) {
		models, err := CreateModels(ctx, domain.AISettings{
			Provider: domain.AIProviderOpenAI,
			APIKey:   "sk-test",
			Model:    "gpt-4o-mini",
		})
		require.NoError(t, err)
		require.NotNil(t, models)
		defer models.Close()

		assert.Equal(t, domain.AIProviderOpenAI, models.Provider)
		assert.Equal(t, "gpt-4o-mini", models.Generation.ModelName())
		assert.False(t, models.Assistant.SupportsGrounding())
		_, limited := models.Generation.(*ratelimit.Service)
		assert.False(t, limited)
	})

	t.Run("openai with limit", func(t *testing.T) {
		models, err := CreateModels(ctx, domain.AISettings{
			Provider:          domain.AIProviderOpenAI,
			APIKey:            "sk-test",
			RequestsPerMinute: 30,
		})
		require.NoError(t, err)
		defer models.Close()

		_, limited := models.Generation.(*ratelimit.Service)
		assert.True(t, limited)
		assert.Same(t, models.Generation, models.Assistant)
	})
}

func TestCreateAndValidateModels(t *testing.T) {
	ctx := context.Background()

	t.Run("reachable", func(t *testing.T) {
		srv := modelsServer(t, http.StatusOK)
		models, err := CreateAndValidateModels(ctx, domain.AISettings{
			Provider: domain.AIProviderOpenAI,
			APIKey:   "sk-test",
			BaseURL:  srv.URL + "/v1",
		})
		require.NoError(t, err)
		require.NotNil(t, models)
		assert.NoError(t, models.Close())
	})

	t.Run("rejected key", func(t *testing.T) {
		srv := modelsServer(t, http.StatusUnauthorized)
		_, err := CreateAndValidateModels(ctx, domain.AISettings{
			Provider: domain.AIProviderOpenAI,
			APIKey:   "sk-wrong",
			BaseURL:  srv.URL + "/v1",
		})
		require.ErrorIs(t, err, domain.ErrServiceUnavailable)
		assert.Contains(t, err.Error(), "openai unreachable")
	})

	t.Run("unconfigured", func(t *testing.T) {
		models, err := CreateAndValidateModels(ctx, domain.AISettings{Provider: domain.AIProviderOpenAI})
		require.NoError(t, err)
		assert.Nil(t, models)
	})
}

func TestValidateConfig(t *testing.T) {
	ctx := context.Background()

	err := ValidateConfig(ctx, domain.AISettings{Provider: domain.AIProviderVertex})
	require.ErrorIs(t, err, domain.ErrNotConfigured)

	srv := modelsServer(t, http.StatusOK)
	err = ValidateConfig(ctx, domain.AISettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "sk-test",
		BaseURL:  srv.URL + "/v1",
	})
	assert.NoError(t, err)
}

func TestModels_CloseNil(t *testing.T) {
	var m *Models
	assert.NoError(t, m.Close())
}
