package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Not logged in", Describe(nil))
	assert.Equal(t, "owner@acme.com.au · 3 AI queries · 1 document credits", Describe(&domain.UserProfile{
		Email: "owner@acme.com.au", Tier: domain.TierFree, AvailableAIQueries: 3, PurchasedDocSlots: 1,
	}))
	assert.Equal(t, "owner@acme.com.au · Business Pro", Describe(&domain.UserProfile{
		Email: "owner@acme.com.au", Tier: domain.TierPro,
	}))
}

func TestBar_View(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetProfile(&domain.UserProfile{Email: "owner@acme.com.au", Tier: domain.TierPro})

	out := bar.View()
	assert.Contains(t, out, "owner@acme.com.au")
	assert.Contains(t, out, "q: quit")

	bar.SetBindings(keymap.DefaultKeyMap().QuizHelp())
	assert.Contains(t, bar.View(), "previous question")

	bar.SetBindings(nil)
	assert.Contains(t, bar.View(), "?: help")
}

func TestBar_States(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetState(StateLoading)
	assert.Contains(t, bar.View(), "Loading...")

	bar.SetState(StateError)
	assert.Contains(t, bar.View(), "Error")
	bar.SetMessage("store unavailable")
	assert.Contains(t, bar.View(), "Error: store unavailable")

	bar.SetState(StateNotice)
	bar.SetMessage("Copied to clipboard")
	assert.Contains(t, bar.View(), "Copied to clipboard")

	bar.Clear()
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Contains(t, bar.View(), "Not logged in")
}
