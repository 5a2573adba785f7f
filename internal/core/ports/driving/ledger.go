package driving

import "github.com/custodia-labs/lexdraft-cli/internal/core/domain"

// EntitlementLedger decides whether a profile may perform a gated action and
// computes the profile after the action. It never persists anything; callers
// commit the returned profile only after the action succeeds.
type EntitlementLedger interface {
	// CanConsume returns true if the action is permitted.
	CanConsume(profile domain.UserProfile, usage domain.Usage) bool

	// Check returns domain.ErrEntitlementExhausted if the action is not
	// permitted, or domain.ErrMalformedProfile for impossible profile state.
	Check(profile domain.UserProfile, usage domain.Usage) error

	// Consume returns the profile after a successful action.
	Consume(profile domain.UserProfile, usage domain.Usage) (domain.UserProfile, error)

	// ApplyGrant returns the profile after a successful purchase.
	ApplyGrant(profile domain.UserProfile, grant domain.Grant) (domain.UserProfile, error)
}
