package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Tier is the subscription level of an account.
type Tier string

// Available tiers.
const (
	// TierFree consumes credits for every gated action.
	TierFree Tier = "free"

	// TierPro has unlimited queries, saves and downloads.
	TierPro Tier = "pro"
)

// IsValid returns true if the tier is recognised.
func (t Tier) IsValid() bool {
	return t == TierFree || t == TierPro
}

// String returns the string representation.
func (t Tier) String() string {
	return string(t)
}

// DefaultFreeQueries is the AI query allowance of a new free account.
const DefaultFreeQueries = 5

// UserProfile is the entitlement state of an account.
type UserProfile struct {
	Email string `json:"email"`
	Tier  Tier   `json:"tier"`

	// AvailableAIQueries is meaningless under TierPro.
	AvailableAIQueries int `json:"availableAiQueries"`

	// PurchasedDocSlots is the number of first-time saves remaining.
	PurchasedDocSlots int `json:"purchasedDocSlots"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewUserProfile returns the profile created on first email capture.
func NewUserProfile(email string, now time.Time) UserProfile {
	return UserProfile{
		Email:              email,
		Tier:               TierFree,
		AvailableAIQueries: DefaultFreeQueries,
		PurchasedDocSlots:  0,
		CreatedAt:          now,
	}
}

// IsPro returns true for the unlimited tier.
func (p UserProfile) IsPro() bool {
	return p.Tier == TierPro
}

// Validate reports impossible state as ErrMalformedProfile.
func (p UserProfile) Validate() error {
	if p.Email == "" {
		return fmt.Errorf("%w: empty email", ErrMalformedProfile)
	}
	if !p.Tier.IsValid() {
		return fmt.Errorf("%w: unknown tier %q", ErrMalformedProfile, p.Tier)
	}
	if p.AvailableAIQueries < 0 {
		return fmt.Errorf("%w: negative query balance %d", ErrMalformedProfile, p.AvailableAIQueries)
	}
	if p.PurchasedDocSlots < 0 {
		return fmt.Errorf("%w: negative document slots %d", ErrMalformedProfile, p.PurchasedDocSlots)
	}
	return nil
}

// NormaliseEmail trims, lower-cases and validates an email address.
func NormaliseEmail(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", fmt.Errorf("%w: invalid email %q", ErrInvalidInput, s)
	}
	return s, nil
}

// Action is an entitlement-gated operation.
type Action string

// Gated actions.
const (
	ActionAIQuery          Action = "aiQuery"
	ActionDocumentSave     Action = "documentSave"
	ActionDocumentDownload Action = "documentDownload"
)

// IsValid returns true if the action is recognised.
func (a Action) IsValid() bool {
	switch a {
	case ActionAIQuery, ActionDocumentSave, ActionDocumentDownload:
		return true
	default:
		return false
	}
}

// Usage describes one gated action against a profile. Document is the
// target of save and download actions; it is nil for a save of a document
// that has never been persisted.
type Usage struct {
	Action   Action
	Document *SavedDocument
}
