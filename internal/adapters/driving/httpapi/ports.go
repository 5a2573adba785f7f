package httpapi

import (
	"net/http"

	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the HTTP API serves.
type Ports struct {
	Account driving.AccountService
	Quiz    driving.QuizFactory
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

// Options configures the router.
type Options struct {
	// AllowedOrigins are the CORS origins permitted to call the API.
	// Empty disables cross-origin access.
	AllowedOrigins []string

	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}
