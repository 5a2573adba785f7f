package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeSources(t *testing.T) {
	t.Run("first title wins", func(t *testing.T) {
		got := DedupeSources([]GroundingSource{
			{URI: "a", Title: "A1"},
			{URI: "b", Title: "B"},
			{URI: "a", Title: "A2"},
		})
		assert.Equal(t, []GroundingSource{{URI: "a", Title: "A1"}, {URI: "b", Title: "B"}}, got)
	})

	t.Run("drops incomplete", func(t *testing.T) {
		got := DedupeSources([]GroundingSource{
			{URI: "", Title: "No URI"},
			{URI: "c", Title: ""},
			{URI: "d", Title: "D"},
		})
		assert.Equal(t, []GroundingSource{{URI: "d", Title: "D"}}, got)
	})

	t.Run("incomplete entry does not claim uri", func(t *testing.T) {
		got := DedupeSources([]GroundingSource{
			{URI: "a", Title: ""},
			{URI: "a", Title: "A"},
		})
		assert.Equal(t, []GroundingSource{{URI: "a", Title: "A"}}, got)
	})

	t.Run("surrounding whitespace does not make a new uri", func(t *testing.T) {
		got := DedupeSources([]GroundingSource{
			{URI: " https://www.ato.gov.au/ ", Title: " ATO "},
			{URI: "https://www.ato.gov.au/", Title: "Australian Taxation Office"},
		})
		assert.Equal(t, []GroundingSource{{URI: "https://www.ato.gov.au/", Title: "ATO"}}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, DedupeSources(nil))
	})
}
