// Package httpapi exposes the account service over a JSON HTTP API for the
// web front end. The assistant endpoint streams with server-sent events.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

// Errors returned when the server is built with missing ports.
var (
	ErrMissingAccountService = errors.New("account service is required")
	ErrMissingQuizFactory    = errors.New("quiz factory is required")
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownProduct),
		errors.Is(err, domain.ErrQuizIncomplete):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrEntitlementExhausted),
		errors.Is(err, domain.ErrPurchaseFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrGenerationFailure):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrServiceUnavailable),
		errors.Is(err, domain.ErrAssistantFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func newErrorBody(err error, status int) errorBody {
	body := errorBody{Error: err.Error()}
	if status == http.StatusInternalServerError {
		body.Error = http.StatusText(status)
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	return body
}

// httpError carries an explicit status for request decoding failures.
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &httpError{status: http.StatusBadRequest, msg: msg}
}
