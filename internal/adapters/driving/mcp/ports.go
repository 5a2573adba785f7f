package mcp

import (
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Account generates documents, answers questions and reports balances.
	Account driving.AccountService

	// Quiz scores health check answers.
	Quiz driving.QuizFactory
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Account == nil {
		return ErrMissingAccountService
	}
	if p.Quiz == nil {
		return ErrMissingQuizFactory
	}
	return nil
}
