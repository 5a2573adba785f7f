package domain

import (
	"errors"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates required form fields are missing.
	// It is raised before any network call is made.
	ErrValidation = errors.New("validation failed")

	// ErrNotConfigured indicates a required collaborator has not been configured.
	ErrNotConfigured = errors.New("not configured")

	// ErrNotLoggedIn indicates no account session is active.
	ErrNotLoggedIn = errors.New("not logged in")

	// AI Errors.

	// ErrGenerationFailure indicates the model returned a malformed, incomplete,
	// or unparseable document response. Not retried automatically.
	ErrGenerationFailure = errors.New("document generation failed")

	// ErrServiceUnavailable indicates a transport or timeout error talking to the
	// generation service.
	ErrServiceUnavailable = errors.New("AI service unavailable")

	// ErrAssistantFailure indicates the assistant stream failed before completion.
	ErrAssistantFailure = errors.New("assistant unavailable")

	// Entitlement Errors.

	// ErrEntitlementExhausted indicates the profile has no credit left for the action.
	// It is recoverable by purchasing credits or upgrading.
	ErrEntitlementExhausted = errors.New("entitlement exhausted")

	// ErrMalformedProfile indicates a profile with impossible state such as
	// negative counters. This is a programming error, not user exhaustion.
	ErrMalformedProfile = errors.New("malformed profile")

	// ErrUnknownProduct indicates a purchase was requested for a product that does not exist.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrPurchaseFailed indicates the payment provider did not confirm the purchase.
	ErrPurchaseFailed = errors.New("purchase failed")

	// Quiz Errors.

	// ErrQuizComplete indicates an answer was submitted after the quiz finished.
	ErrQuizComplete = errors.New("quiz already complete")

	// ErrQuizIncomplete indicates a result was requested before every question was answered.
	ErrQuizIncomplete = errors.New("quiz not complete")
)

// ValidationError lists the required fields missing from a form.
type ValidationError struct {
	// Fields are the missing field keys in template order.
	Fields []string

	// Messages are the user-facing messages, one per field.
	Messages []string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, " ")
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Add records a missing field and its message.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, field)
	e.Messages = append(e.Messages, message)
}

// HasErrors returns true if any field was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}
