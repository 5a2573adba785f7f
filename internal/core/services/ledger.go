package services

import (
	"fmt"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// Ensure Ledger implements the interface.
var _ driving.EntitlementLedger = (*Ledger)(nil)

// Ledger applies the entitlement rules of each tier.
//
// Under the pro tier every action is permitted and nothing is decremented.
// Under the free tier an AI query costs one query credit, the first save of a
// document costs one document slot, and each document may be downloaded once.
type Ledger struct{}

// NewLedger creates a new entitlement ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// CanConsume returns true if the action is permitted.
func (l *Ledger) CanConsume(profile domain.UserProfile, usage domain.Usage) bool {
	return l.Check(profile, usage) == nil
}

// Check returns nil if the action is permitted.
func (l *Ledger) Check(profile domain.UserProfile, usage domain.Usage) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	if !usage.Action.IsValid() {
		return fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, usage.Action)
	}
	if profile.IsPro() {
		return nil
	}

	switch usage.Action {
	case domain.ActionAIQuery:
		if profile.AvailableAIQueries == 0 {
			return fmt.Errorf("%w: no AI queries remaining", domain.ErrEntitlementExhausted)
		}
	case domain.ActionDocumentSave:
		if isResave(usage) {
			return nil
		}
		if profile.PurchasedDocSlots == 0 {
			return fmt.Errorf("%w: no document credits remaining", domain.ErrEntitlementExhausted)
		}
	case domain.ActionDocumentDownload:
		if usage.Document == nil {
			return fmt.Errorf("%w: download requires a document", domain.ErrInvalidInput)
		}
		if usage.Document.Downloaded {
			return fmt.Errorf("%w: free plan allows one download per document", domain.ErrEntitlementExhausted)
		}
	}
	return nil
}

// Consume returns the profile after the action. It re-checks first, so a
// consume that would overdraw fails instead of going negative.
func (l *Ledger) Consume(profile domain.UserProfile, usage domain.Usage) (domain.UserProfile, error) {
	if err := l.Check(profile, usage); err != nil {
		return profile, err
	}
	if profile.IsPro() {
		return profile, nil
	}

	switch usage.Action {
	case domain.ActionAIQuery:
		profile.AvailableAIQueries--
	case domain.ActionDocumentSave:
		if !isResave(usage) {
			profile.PurchasedDocSlots--
		}
	case domain.ActionDocumentDownload:
		// Gated per document; the caller records the downloaded flag.
	}
	return profile, nil
}

// ApplyGrant returns the profile after a purchase.
func (l *Ledger) ApplyGrant(profile domain.UserProfile, grant domain.Grant) (domain.UserProfile, error) {
	if err := profile.Validate(); err != nil {
		return profile, err
	}
	if grant.DocSlots < 0 || grant.AIQueries < 0 {
		return profile, fmt.Errorf("%w: grant must not be negative", domain.ErrInvalidInput)
	}
	if grant.Tier != "" {
		if !grant.Tier.IsValid() {
			return profile, fmt.Errorf("%w: unknown tier %q", domain.ErrInvalidInput, grant.Tier)
		}
		profile.Tier = grant.Tier
	}
	profile.PurchasedDocSlots += grant.DocSlots
	profile.AvailableAIQueries += grant.AIQueries
	return profile, nil
}

// isResave reports whether a save targets a document that is already stored.
func isResave(usage domain.Usage) bool {
	return usage.Document != nil && usage.Document.ID != ""
}
