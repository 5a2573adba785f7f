package doccontent

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

// MockActions implements driving.DocumentActions for testing.
type MockActions struct {
	CopyErr error
	Copied  []string
}

func (m *MockActions) CopyToClipboard(doc *domain.SavedDocument) error {
	m.Copied = append(m.Copied, doc.ID)
	return m.CopyErr
}

func (m *MockActions) Open(location string) error {
	return nil
}

func sampleDocument(bodyLines int) domain.SavedDocument {
	lines := make([]string, bodyLines)
	for i := range lines {
		lines[i] = fmt.Sprintf("Clause %d.", i+1)
	}
	return domain.SavedDocument{
		ID:           "doc-1",
		Title:        "Employment Agreement",
		Body:         strings.Join(lines, "\n"),
		Version:      "1.2",
		State:        domain.DocumentStateDraft,
		Jurisdiction: "New South Wales",
		Risk: domain.RiskAnalysis{
			Score:   55,
			Level:   domain.RiskLevelHigh,
			Summary: "Restraint clause is broad.",
			Breakdown: []domain.RiskFactor{
				{Title: "Restraint of trade", Reasoning: "Twelve months may be unenforceable."},
			},
		},
	}
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &MockActions{})

	require.NotNil(t, view)
	assert.False(t, view.ready)
	assert.Nil(t, view.Document())
	assert.Empty(t, view.Lines())
}

func TestNewView_NilParams(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Nil(t, view.actions)
}

func TestRender(t *testing.T) {
	out := Render(sampleDocument(2))

	assert.Contains(t, out, "Version 1.2 · Draft · New South Wales")
	assert.Contains(t, out, "Risk: High (55/100)")
	assert.Contains(t, out, "Restraint clause is broad.")
	assert.Contains(t, out, "  - Restraint of trade: Twelve months may be unenforceable.")
	assert.True(t, strings.HasSuffix(out, "Clause 1.\nClause 2."))
}

func TestView_SetDocument(t *testing.T) {
	view := NewView(nil, nil)
	view.scrollOffset = 3
	view.notice = "old"

	view.SetDocument(sampleDocument(5))

	require.NotNil(t, view.Document())
	assert.Equal(t, "doc-1", view.Document().ID)
	assert.Equal(t, 0, view.ScrollOffset())
	assert.Empty(t, view.Notice())
	assert.NotEmpty(t, view.Lines())
}

func TestView_WrapsLongLines(t *testing.T) {
	doc := sampleDocument(0)
	doc.Body = strings.Repeat("x", 50)
	view := NewView(nil, nil)
	view.SetDimensions(24, 40)

	view.SetDocument(doc)

	lines := view.Lines()
	assert.Equal(t, strings.Repeat("x", 20), lines[len(lines)-3])
	assert.Equal(t, strings.Repeat("x", 10), lines[len(lines)-1])
}

func TestView_Scroll(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 16)
	view.SetDocument(sampleDocument(40))
	maxOffset := len(view.Lines()) - 10

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 11, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, maxOffset, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, maxOffset, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, maxOffset-10, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, view.ScrollOffset())
}

func TestView_Copy(t *testing.T) {
	actions := &MockActions{}
	view := NewView(nil, actions)
	view.SetDocument(sampleDocument(1))

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})

	require.NotNil(t, cmd)
	copied, ok := cmd().(messages.DocumentCopied)
	require.True(t, ok)
	assert.Equal(t, "doc-1", copied.DocumentID)
	assert.NoError(t, copied.Err)
	assert.Equal(t, []string{"doc-1"}, actions.Copied)

	view.Update(copied)
	assert.Equal(t, "Copied to clipboard", view.Notice())
	assert.Contains(t, view.View(), "Copied to clipboard")
}

func TestView_Copy_Failure(t *testing.T) {
	view := NewView(nil, &MockActions{CopyErr: errors.New("no clipboard tool found")})
	view.SetDocument(sampleDocument(1))

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	view.Update(cmd())

	assert.EqualError(t, view.Err(), "no clipboard tool found")
	assert.Contains(t, view.View(), "Error: no clipboard tool found")
}

func TestView_Copy_NoDocument(t *testing.T) {
	view := NewView(nil, &MockActions{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})

	assert.Nil(t, cmd)
}

func TestView_Copy_NoActions(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDocument(sampleDocument(1))

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})

	copied, ok := cmd().(messages.DocumentCopied)
	require.True(t, ok)
	assert.Error(t, copied.Err)
}

func TestView_EscReturnsToDocuments(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewDocuments}, cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil, nil)
	assert.Contains(t, view.View(), "(No document selected)")

	view.SetDimensions(100, 40)
	view.SetDocument(sampleDocument(3))
	out := view.View()

	assert.Contains(t, out, "Employment Agreement")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Clause 3.")
}
