// Package tui provides the interactive terminal interface for lexdraft: the
// legal health check quiz and a browser for saved documents.
package tui

import (
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Quiz starts health check runs. Required.
	Quiz driving.QuizFactory

	// Account lists saved documents and the current profile. Optional; the
	// documents view is hidden without it.
	Account driving.AccountService

	// Actions copies documents to the clipboard. Optional.
	Actions driving.DocumentActions
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Quiz == nil {
		return ErrMissingQuizFactory
	}
	return nil
}
