// Package mcp provides an MCP (Model Context Protocol) server adapter for lexdraft.
// It lets AI assistants draft documents, ask the legal assistant and score the
// health check on behalf of the logged-in account.
package mcp

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

// ErrMissingAccountService is returned when the account service is not provided.
var ErrMissingAccountService = errors.New("mcp: account service is required")

// ErrMissingQuizFactory is returned when the quiz factory is not provided.
var ErrMissingQuizFactory = errors.New("mcp: quiz factory is required")

// toolError rewrites core errors into messages an assistant can relay to the
// user. The original error stays in the chain.
func toolError(err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Errorf("the form is incomplete: %w", err)
	case errors.Is(err, domain.ErrNotLoggedIn):
		return fmt.Errorf("no account is logged in; run `lexdraft login <email>` first: %w", err)
	case errors.Is(err, domain.ErrEntitlementExhausted):
		return fmt.Errorf("the account has no credits left for this; buy more with `lexdraft purchase launchpad` "+
			"or upgrade with `lexdraft purchase pro`: %w", err)
	case errors.Is(err, domain.ErrGenerationFailure):
		return fmt.Errorf("the model returned an unusable document, try again: %w", err)
	case errors.Is(err, domain.ErrServiceUnavailable), errors.Is(err, domain.ErrAssistantFailure):
		return fmt.Errorf("the AI service is unavailable right now: %w", err)
	default:
		return err
	}
}
