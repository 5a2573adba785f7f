package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

// Test helper functions in settings.go

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestReadLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  hello  \nworld"))

	assert.Equal(t, "hello", readLine(reader))
	assert.Equal(t, "world", readLine(reader))
	assert.Equal(t, "", readLine(reader))
}

func TestSettingsShowCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[AI]")
	assert.Contains(t, out, "Provider: Gemini on Vertex AI (Google Cloud)")
	assert.Contains(t, out, "Project: (not set)")
	assert.Contains(t, out, "Status: not configured")
	assert.Contains(t, out, "Billing: (demo, no charge)")
	assert.Contains(t, out, "Medium above: 20")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsSetCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings", "set", "ai.provider", "openai")
	require.NoError(t, err)
	assert.Contains(t, out, "Set ai.provider.")

	_, err = execute("settings", "set", "ai.api_key", "sk-test-1234567890")
	require.NoError(t, err)

	settings, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.AI.Provider)

	out, err = execute("settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "API Key: ****7890")
	assert.NotContains(t, out, "sk-test")
}

func TestSettingsSetCmd_Invalid(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("settings", "set", "ai.provider", "skynet")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsKeysCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "ai.provider")
	assert.Contains(t, out, "export.bucket")
	assert.Contains(t, out, "server.allowed_origins")
}

func TestSettingsCheckCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	t.Run("unconfigured provider", func(t *testing.T) {
		out, err := execute("settings", "check")
		require.NoError(t, err)
		assert.Contains(t, out, "AI provider: not configured")
	})

	_, err := execute("settings", "set", "ai.project", "acme-legal")
	require.NoError(t, err)

	t.Run("ping ok", func(t *testing.T) {
		var checked domain.AISettings
		checkAI = func(_ context.Context, s domain.AISettings) error {
			checked = s
			return nil
		}
		out, err := execute("settings", "check")
		require.NoError(t, err)
		assert.Contains(t, out, "AI provider: OK")
		assert.Equal(t, "acme-legal", checked.Project)
	})

	t.Run("ping fails", func(t *testing.T) {
		checkAI = func(context.Context, domain.AISettings) error {
			return errors.New("permission denied")
		}
		out, err := execute("settings", "check")
		assert.ErrorContains(t, err, "permission denied")
		assert.Contains(t, out, "FAILED")
	})
}

func TestSettingsAICmd_OpenAI(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeWithInput("2\n\nsk-abcdefgh12345678\n", "settings", "ai")

	require.NoError(t, err)
	assert.Contains(t, out, "AI provider configured: OpenAI (cloud) (gpt-4o-mini)")

	settings, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.AI.Provider)
	assert.Equal(t, "gpt-4o-mini", settings.AI.Model)
	assert.Equal(t, "sk-abcdefgh12345678", settings.AI.APIKey)
}

func TestSettingsAICmd_VertexRequiresProject(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeWithInput("1\ngemini-2.5-pro\n\n", "settings", "ai")

	assert.EqualError(t, err, "a project is required for this provider")
}

func TestSettingsPromptsCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings", "prompts")
	require.NoError(t, err)
	assert.Contains(t, out, "document_system")
	assert.Contains(t, out, "/home/u/.lexdraft/prompts/assistant_system.txt")

	out, err = execute("settings", "prompts", "reset", "document_system")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored document_system")
	assert.Equal(t, []string{"document_system"}, ts.prompts.ResetNames)
}
