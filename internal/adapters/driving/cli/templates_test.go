package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

func TestTemplatesCmd_List(t *testing.T) {
	out, err := execute("templates")

	require.NoError(t, err)
	for _, tmpl := range domain.Templates() {
		assert.Contains(t, out, tmpl.ID)
	}
}

func TestTemplatesCmd_Show(t *testing.T) {
	out, err := execute("templates", "privacy")

	require.NoError(t, err)
	assert.Contains(t, out, "Privacy Policy (privacy)")
	assert.Contains(t, out, "--field businessName=...")
	assert.Contains(t, out, "--clause cookies")
	assert.Contains(t, out, "Privacy Act 1988")
}

func TestTemplatesCmd_Unknown(t *testing.T) {
	_, err := execute("templates", "lease")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplatesCmd_JSON(t *testing.T) {
	out, err := execute("templates", "--json")
	require.NoError(t, err)

	var got []domain.Template
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, len(domain.Templates()))
}
