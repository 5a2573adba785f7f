package driving

import (
	"context"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

// GenerateInput is the user's request to generate a document.
type GenerateInput struct {
	TemplateID   string
	Form         domain.FormData
	Jurisdiction string

	// ClauseIDs are optional clause IDs in selection order.
	ClauseIDs []string
}

// DownloadResult describes an exported document.
type DownloadResult struct {
	Document domain.SavedDocument
	Location string
}

// AccountService orchestrates the session, documents, assistant questions and
// purchases against the entitlement ledger and persistence.
type AccountService interface {
	// Login loads or creates the profile for email and makes it current.
	// When subscribe is true the address is also signed up to the newsletter
	// in the background; signup failures never fail the login.
	Login(ctx context.Context, email string, subscribe bool) (*domain.UserProfile, error)

	// Logout clears the current session. The profile record is kept.
	Logout(ctx context.Context) error

	// Current returns the logged-in profile or domain.ErrNotLoggedIn.
	Current(ctx context.Context) (*domain.UserProfile, error)

	// Generate validates input then generates a document. It does not persist.
	Generate(ctx context.Context, in GenerateInput) (*domain.GeneratedDocument, error)

	// SaveDocument persists a generated document. An empty existingID saves a
	// new document and consumes a slot on the free tier; a non-empty one
	// overwrites that document without consuming.
	SaveDocument(ctx context.Context, doc domain.GeneratedDocument, existingID string) (*domain.SavedDocument, error)

	// ListDocuments returns the current user's documents, newest first.
	ListDocuments(ctx context.Context) ([]domain.SavedDocument, error)

	// GetDocument returns one of the current user's documents.
	GetDocument(ctx context.Context, id string) (*domain.SavedDocument, error)

	// Download exports a document and records the download.
	Download(ctx context.Context, id string) (*DownloadResult, error)

	// Ask answers a question, consuming one query after a completed answer.
	Ask(ctx context.Context, question string, onChunk ChunkHandler) (*domain.AssistantResponse, error)

	// Purchase buys a product and applies its grant on success.
	Purchase(ctx context.Context, productID string) (*domain.UserProfile, error)
}
