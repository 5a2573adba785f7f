package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// MockAccountService implements driving.AccountService for testing.
type MockAccountService struct {
	driving.AccountService
	ListDocumentsFunc func(ctx context.Context) ([]domain.SavedDocument, error)
}

func (m *MockAccountService) ListDocuments(ctx context.Context) ([]domain.SavedDocument, error) {
	if m.ListDocumentsFunc != nil {
		return m.ListDocumentsFunc(ctx)
	}
	return []domain.SavedDocument{}, nil
}

func sampleDocuments() []domain.SavedDocument {
	updated := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	return []domain.SavedDocument{
		{ID: "doc-1", Title: "Employment Agreement", Version: "1.1", UpdatedAt: updated,
			Risk: domain.RiskAnalysis{Score: 10, Level: domain.RiskLevelLow}},
		{ID: "doc-2", Title: "Privacy Policy", Version: "1.0", UpdatedAt: updated, Downloaded: true,
			Risk: domain.RiskAnalysis{Score: 60, Level: domain.RiskLevelHigh}},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &MockAccountService{})

	require.NotNil(t, view)
	assert.False(t, view.ready)
	assert.Empty(t, view.Documents())
}

func TestNewView_NilParams(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Nil(t, view.account)
}

func TestView_Load(t *testing.T) {
	mock := &MockAccountService{
		ListDocumentsFunc: func(ctx context.Context) ([]domain.SavedDocument, error) {
			return sampleDocuments(), nil
		},
	}
	view := NewView(nil, mock)

	cmd := view.Load()
	require.NotNil(t, cmd)
	assert.True(t, view.IsLoading())

	loaded, ok := cmd().(messages.DocumentsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Len(t, loaded.Documents, 2)

	view.Update(loaded)
	assert.False(t, view.IsLoading())
	assert.Len(t, view.Documents(), 2)
	assert.NoError(t, view.Err())
}

func TestView_Load_NoAccount(t *testing.T) {
	view := NewView(nil, nil)

	loaded, ok := view.Load()().(messages.DocumentsLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_Update_LoadError(t *testing.T) {
	view := NewView(nil, nil)
	view.Load()

	view.Update(messages.DocumentsLoaded{Err: domain.ErrNotLoggedIn})

	assert.ErrorIs(t, view.Err(), domain.ErrNotLoggedIn)
	assert.Contains(t, view.View(), "Error:")
}

func TestView_Update_Navigate(t *testing.T) {
	view := NewView(nil, nil)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(keyRune('j'))
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(keyRune('k'))
	assert.Equal(t, 0, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_Update_EnterSelects(t *testing.T) {
	view := NewView(nil, nil)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	selected, ok := cmd().(messages.DocumentSelected)
	require.True(t, ok)
	assert.Equal(t, "doc-2", selected.Document.ID)
}

func TestView_Update_EnterEmpty(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Nil(t, view.SelectedDocument())
}

func TestView_Update_EscReturnsToMenu(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Update_Reload(t *testing.T) {
	calls := 0
	mock := &MockAccountService{
		ListDocumentsFunc: func(ctx context.Context) ([]domain.SavedDocument, error) {
			calls++
			return nil, errors.New("store offline")
		},
	}
	view := NewView(nil, mock)

	_, cmd := view.Update(keyRune('r'))

	require.NotNil(t, cmd)
	assert.True(t, view.IsLoading())
	view.Update(cmd())
	assert.Equal(t, 1, calls)
	assert.EqualError(t, view.Err(), "store offline")
}

func TestView_Update_ShrinkingListResetsSelection(t *testing.T) {
	view := NewView(nil, nil)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()[:1]})

	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_Scroll(t *testing.T) {
	docs := make([]domain.SavedDocument, 20)
	for i := range docs {
		docs[i] = domain.SavedDocument{ID: "doc", Title: "Doc", Version: "1.0"}
	}
	view := NewView(nil, nil)
	view.SetDimensions(80, 12)
	view.Update(messages.DocumentsLoaded{Documents: docs})

	for range 10 {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	assert.Equal(t, 10, view.SelectedIndex())
	assert.Equal(t, 7, view.scrollOffset)
	assert.Contains(t, view.View(), "of 20]")
}

func TestView_View(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(100, 30)

	assert.Contains(t, view.View(), "No saved documents yet")

	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})
	out := view.View()

	assert.Contains(t, out, "My documents (2)")
	assert.Contains(t, out, "Employment Agreement")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "v1.0  2026-03-04  downloaded")
}
