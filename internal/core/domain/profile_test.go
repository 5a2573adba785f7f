package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserProfile(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	p := NewUserProfile("owner@acme.example", now)

	assert.Equal(t, TierFree, p.Tier)
	assert.Equal(t, DefaultFreeQueries, p.AvailableAIQueries)
	assert.Equal(t, 0, p.PurchasedDocSlots)
	assert.Equal(t, now, p.CreatedAt)
	assert.NoError(t, p.Validate())
	assert.False(t, p.IsPro())
}

func TestUserProfile_Validate(t *testing.T) {
	base := NewUserProfile("a@b.example", time.Now())

	tests := []struct {
		name   string
		mutate func(*UserProfile)
	}{
		{"negative queries", func(p *UserProfile) { p.AvailableAIQueries = -1 }},
		{"negative slots", func(p *UserProfile) { p.PurchasedDocSlots = -2 }},
		{"unknown tier", func(p *UserProfile) { p.Tier = "enterprise" }},
		{"empty email", func(p *UserProfile) { p.Email = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrMalformedProfile)
		})
	}
}

func TestNormaliseEmail(t *testing.T) {
	email, err := NormaliseEmail("  Owner@Acme.Example ")
	require.NoError(t, err)
	assert.Equal(t, "owner@acme.example", email)

	for _, bad := range []string{"", "not-an-email", "Name <a@b.example>"} {
		_, err := NormaliseEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestAction_IsValid(t *testing.T) {
	assert.True(t, ActionAIQuery.IsValid())
	assert.True(t, ActionDocumentSave.IsValid())
	assert.True(t, ActionDocumentDownload.IsValid())
	assert.False(t, Action("print").IsValid())
}
