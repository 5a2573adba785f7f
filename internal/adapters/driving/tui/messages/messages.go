// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewQuiz is the legal health check.
	ViewQuiz
	// ViewDocuments lists saved documents.
	ViewDocuments
	// ViewDocContent shows one document.
	ViewDocContent
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewQuiz:
		return "quiz"
	case ViewDocuments:
		return "documents"
	case ViewDocContent:
		return "doc_content"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// QuizCompleted carries the result of a finished quiz run.
type QuizCompleted struct {
	Result domain.QuizResult
}

// ProfileLoaded carries the logged-in profile. Profile is nil when no one
// is logged in.
type ProfileLoaded struct {
	Profile *domain.UserProfile
	Err     error
}

// DocumentsLoaded carries the saved documents of the current user.
type DocumentsLoaded struct {
	Documents []domain.SavedDocument
	Err       error
}

// DocumentSelected is sent when a document is opened from the list.
type DocumentSelected struct {
	Document domain.SavedDocument
}

// DocumentCopied reports a clipboard copy.
type DocumentCopied struct {
	DocumentID string
	Err        error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
