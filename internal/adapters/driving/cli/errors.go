package cli

import (
	"errors"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

var (
	errAccountNotConfigured  = errors.New("account service not configured")
	errQuizNotConfigured     = errors.New("quiz service not configured")
	errSettingsNotConfigured = errors.New("settings service not configured")
)

// Describe turns an error into a message that tells the user what to do next.
func Describe(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr) && len(verr.Messages) > 0:
		return verr.Error()
	case errors.Is(err, domain.ErrNotLoggedIn):
		return "you are not logged in; run 'lexdraft login <email>' first"
	case errors.Is(err, domain.ErrEntitlementExhausted):
		return "your plan has run out of credit for this; see 'lexdraft products' to top up or upgrade"
	case errors.Is(err, domain.ErrPurchaseFailed):
		return "the payment was not completed; you have not been charged"
	case errors.Is(err, domain.ErrGenerationFailure):
		return "the AI returned an unusable document; please try again"
	case errors.Is(err, domain.ErrNotConfigured):
		return err.Error() + "; run 'lexdraft settings check'"
	case errors.Is(err, domain.ErrServiceUnavailable), errors.Is(err, domain.ErrAssistantFailure):
		return err.Error() + "; please try again shortly"
	default:
		return err.Error()
	}
}
