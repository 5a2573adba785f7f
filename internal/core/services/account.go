package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// Ensure AccountService implements the interface.
var _ driving.AccountService = (*AccountService)(nil)

// newsletterTimeout bounds the background signup started by Login.
const newsletterTimeout = 10 * time.Second

// AccountDeps are the collaborators of an AccountService.
// Store and Ledger are required; the rest may be nil.
type AccountDeps struct {
	Store      driven.KeyValueStore
	Ledger     driving.EntitlementLedger
	Generator  driving.DocumentGenerator
	Assistant  driving.Assistant
	Exporter   driven.DocumentExporter
	Gateway    driven.PurchaseGateway
	Newsletter driven.NewsletterService
	Clock      driven.Clock

	// RiskPolicy checks the analysis of saved documents. The zero value
	// selects domain.DefaultRiskPolicy.
	RiskPolicy domain.RiskPolicy
}

// AccountService orchestrates gated actions. Every entitlement change is
// committed in the same store transaction as the action it pays for, and
// only after that action has succeeded.
type AccountService struct {
	store      driven.KeyValueStore
	ledger     driving.EntitlementLedger
	generator  driving.DocumentGenerator
	assistant  driving.Assistant
	exporter   driven.DocumentExporter
	gateway    driven.PurchaseGateway
	newsletter driven.NewsletterService
	clock      driven.Clock
	policy     domain.RiskPolicy
	newID      func() string
	background sync.WaitGroup
}

// NewAccountService creates a new account service.
func NewAccountService(deps AccountDeps) *AccountService {
	clock := deps.Clock
	if clock == nil {
		clock = driven.SystemClock{}
	}
	ledger := deps.Ledger
	if ledger == nil {
		ledger = NewLedger()
	}
	policy := deps.RiskPolicy
	if policy == (domain.RiskPolicy{}) {
		policy = domain.DefaultRiskPolicy()
	}
	return &AccountService{
		store:      deps.Store,
		ledger:     ledger,
		generator:  deps.Generator,
		assistant:  deps.Assistant,
		exporter:   deps.Exporter,
		gateway:    deps.Gateway,
		newsletter: deps.Newsletter,
		clock:      clock,
		policy:     policy,
		newID:      uuid.NewString,
	}
}

// Wait blocks until background work started by Login has finished.
func (s *AccountService) Wait() {
	s.background.Wait()
}

// Login loads or creates the profile for email and makes it the session.
func (s *AccountService) Login(ctx context.Context, rawEmail string, subscribe bool) (*domain.UserProfile, error) {
	email, err := domain.NormaliseEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	key, ok := sessionKeyFor(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: login requires a session token", domain.ErrInvalidInput)
	}

	var profile domain.UserProfile
	created := false
	err = s.store.Transact(ctx, func(ctx context.Context, tx driven.KeyValueTx) error {
		p, err := loadJSON[domain.UserProfile](ctx, tx, profileKey(email))
		switch {
		case isNotFound(err):
			p = domain.NewUserProfile(email, s.clock.Now())
			created = true
		case err != nil:
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if created {
			if err := storeJSON(ctx, tx, profileKey(email), p); err != nil {
				return err
			}
		}
		profile = p
		return storeJSON(ctx, tx, key, email)
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	logger.Info("Logged in as %s (new=%t, tier=%s)", email, created, profile.Tier)
	if subscribe {
		s.subscribe(ctx, email)
	}
	return &profile, nil
}

// subscribe signs email up to the newsletter without blocking the caller.
func (s *AccountService) subscribe(ctx context.Context, email string) {
	if s.newsletter == nil {
		return
	}
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), newsletterTimeout)
		defer cancel()

		ok, msg, err := s.newsletter.Subscribe(ctx, email)
		switch {
		case err != nil:
			logger.Warn("Could not subscribe %s to newsletter: %v", email, err)
		case !ok:
			logger.Warn("Newsletter rejected %s: %s", email, msg)
		default:
			logger.Info("Subscribed %s to newsletter", email)
		}
	}()
}

// Logout clears the session reference. The profile record is kept.
func (s *AccountService) Logout(ctx context.Context) error {
	key, ok := sessionKeyFor(ctx)
	if !ok {
		return nil
	}
	if err := s.store.Delete(ctx, key); err != nil && !isNotFound(err) {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Current returns the logged-in profile.
func (s *AccountService) Current(ctx context.Context) (*domain.UserProfile, error) {
	email, err := s.sessionEmail(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := loadJSON[domain.UserProfile](ctx, s.store, profileKey(email))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: profile for %s missing", domain.ErrNotLoggedIn, email)
		}
		return nil, err
	}
	return &profile, nil
}

func (s *AccountService) sessionEmail(ctx context.Context) (string, error) {
	key, ok := sessionKeyFor(ctx)
	if !ok {
		return "", domain.ErrNotLoggedIn
	}
	email, err := loadJSON[string](ctx, s.store, key)
	if err != nil {
		if isNotFound(err) {
			return "", domain.ErrNotLoggedIn
		}
		return "", err
	}
	return email, nil
}

// Generate validates the input before any model call, then generates.
// Generation itself is not charged; saving is.
func (s *AccountService) Generate(ctx context.Context, in driving.GenerateInput) (*domain.GeneratedDocument, error) {
	if _, err := s.Current(ctx); err != nil {
		return nil, err
	}
	tmpl, ok := domain.LookupTemplate(in.TemplateID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown template %q", domain.ErrInvalidInput, in.TemplateID)
	}
	jurisdiction, err := domain.NormaliseJurisdiction(in.Jurisdiction)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateFormData(tmpl, in.Form); err != nil {
		return nil, err
	}
	clauses, err := tmpl.SelectClauses(in.ClauseIDs)
	if err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, domain.ErrNotConfigured)
	}

	return s.generator.Generate(ctx, driving.GenerationRequest{
		Template:     tmpl,
		Form:         in.Form,
		Jurisdiction: jurisdiction,
		Clauses:      clauses,
	})
}

// SaveDocument stores doc. Only the first save of a document consumes a slot.
func (s *AccountService) SaveDocument(
	ctx context.Context,
	doc domain.GeneratedDocument,
	existingID string,
) (*domain.SavedDocument, error) {
	email, err := s.sessionEmail(ctx)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.checkSavable(&doc)
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	var saved domain.SavedDocument
	err = s.store.Transact(ctx, func(ctx context.Context, tx driven.KeyValueTx) error {
		profile, err := loadJSON[domain.UserProfile](ctx, tx, profileKey(email))
		if err != nil {
			return err
		}
		docs, err := loadDocuments(ctx, tx, email)
		if err != nil {
			return err
		}

		idx := -1
		if existingID != "" {
			idx = indexOfDocument(docs, existingID)
			if idx < 0 {
				return fmt.Errorf("document %s: %w", existingID, domain.ErrNotFound)
			}
		}

		usage := domain.Usage{Action: domain.ActionDocumentSave}
		if idx >= 0 {
			usage.Document = &docs[idx]
		}
		updated, err := s.ledger.Consume(profile, usage)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		saved = domain.SavedDocument{
			TemplateID:   doc.TemplateID,
			Title:        tmpl.Title,
			Body:         doc.Body,
			Risk:         doc.Risk,
			Form:         doc.Form.Clone(),
			Jurisdiction: doc.Jurisdiction,
			ClauseIDs:    doc.ClauseIDs,
			State:        domain.DocumentStateDraft,
			UpdatedAt:    now,
		}
		if idx >= 0 {
			prev := docs[idx]
			saved.ID = prev.ID
			saved.CreatedAt = prev.CreatedAt
			saved.Downloaded = prev.Downloaded
			saved.Version = domain.NextVersion(prev.Version)
			docs[idx] = saved
		} else {
			saved.ID = s.newID()
			saved.CreatedAt = now
			saved.Version = domain.InitialVersion
			docs = append(docs, saved)
		}

		if err := storeJSON(ctx, tx, documentsKey(email), docs); err != nil {
			return err
		}
		if updated != profile {
			return storeJSON(ctx, tx, profileKey(email), updated)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	logger.Info("Saved document %s v%s", saved.ID, saved.Version)
	return &saved, nil
}

// checkSavable rejects documents that did not come out of a successful
// generation: every saved document has a body, complete form data for its
// template, a known jurisdiction and clauses, and a risk analysis consistent
// with the policy. The jurisdiction is normalised in place.
func (s *AccountService) checkSavable(doc *domain.GeneratedDocument) (domain.Template, error) {
	tmpl, ok := domain.LookupTemplate(doc.TemplateID)
	if !ok {
		return domain.Template{}, fmt.Errorf("%w: unknown template %q", domain.ErrInvalidInput, doc.TemplateID)
	}
	if strings.TrimSpace(doc.Body) == "" {
		return domain.Template{}, fmt.Errorf("%w: document body is empty", domain.ErrInvalidInput)
	}
	if err := domain.ValidateFormData(tmpl, doc.Form); err != nil {
		return domain.Template{}, err
	}
	jurisdiction, err := domain.NormaliseJurisdiction(doc.Jurisdiction)
	if err != nil {
		return domain.Template{}, err
	}
	doc.Jurisdiction = jurisdiction
	if _, err := tmpl.SelectClauses(doc.ClauseIDs); err != nil {
		return domain.Template{}, err
	}
	if err := doc.Risk.Validate(s.policy); err != nil {
		return domain.Template{}, err
	}
	return tmpl, nil
}

// ListDocuments returns the current user's documents, newest first.
func (s *AccountService) ListDocuments(ctx context.Context) ([]domain.SavedDocument, error) {
	email, err := s.sessionEmail(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := loadDocuments(ctx, s.store, email)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// GetDocument returns one of the current user's documents.
func (s *AccountService) GetDocument(ctx context.Context, id string) (*domain.SavedDocument, error) {
	email, err := s.sessionEmail(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := loadDocuments(ctx, s.store, email)
	if err != nil {
		return nil, err
	}
	idx := indexOfDocument(docs, id)
	if idx < 0 {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return &docs[idx], nil
}

// Download exports a document. On the free tier the document is then
// marked as downloaded and cannot be downloaded again.
func (s *AccountService) Download(ctx context.Context, id string) (*driving.DownloadResult, error) {
	if s.exporter == nil {
		return nil, fmt.Errorf("download: exporter %w", domain.ErrNotConfigured)
	}
	profile, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	usage := domain.Usage{Action: domain.ActionDocumentDownload, Document: doc}
	if err := s.ledger.Check(*profile, usage); err != nil {
		return nil, err
	}

	location, err := s.exporter.Export(ctx, doc.FileName()+".md", []byte(RenderDocument(*doc)))
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", doc.ID, err)
	}

	if !profile.IsPro() {
		err = s.store.Transact(ctx, func(ctx context.Context, tx driven.KeyValueTx) error {
			docs, err := loadDocuments(ctx, tx, profile.Email)
			if err != nil {
				return err
			}
			idx := indexOfDocument(docs, id)
			if idx < 0 {
				return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
			}
			current, err := loadJSON[domain.UserProfile](ctx, tx, profileKey(profile.Email))
			if err != nil {
				return err
			}
			// A concurrent download may have used the document's allowance
			// since the check above.
			if err := s.ledger.Check(current, domain.Usage{Action: domain.ActionDocumentDownload, Document: &docs[idx]}); err != nil {
				return err
			}
			if current.IsPro() {
				*doc = docs[idx]
				return nil
			}
			docs[idx].Downloaded = true
			*doc = docs[idx]
			return storeJSON(ctx, tx, documentsKey(profile.Email), docs)
		})
		if err != nil {
			return nil, fmt.Errorf("record download: %w", err)
		}
	}

	logger.Info("Exported %s to %s", doc.ID, location)
	return &driving.DownloadResult{Document: *doc, Location: location}, nil
}

// Ask checks the query allowance, streams the answer and then consumes one
// query. Failed answers are not charged.
func (s *AccountService) Ask(ctx context.Context, question string, onChunk driving.ChunkHandler) (*domain.AssistantResponse, error) {
	profile, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	usage := domain.Usage{Action: domain.ActionAIQuery}
	if err := s.ledger.Check(*profile, usage); err != nil {
		return nil, err
	}
	if s.assistant == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAssistantFailure, domain.ErrNotConfigured)
	}

	resp, err := s.assistant.Ask(ctx, question, onChunk)
	if err != nil {
		return nil, err
	}

	err = s.store.Transact(ctx, func(ctx context.Context, tx driven.KeyValueTx) error {
		current, err := loadJSON[domain.UserProfile](ctx, tx, profileKey(profile.Email))
		if err != nil {
			return err
		}
		updated, err := s.ledger.Consume(current, usage)
		if errors.Is(err, domain.ErrEntitlementExhausted) {
			logger.Warn("Query allowance for %s exhausted while answering", profile.Email)
			return nil
		}
		if err != nil {
			return err
		}
		if updated == current {
			return nil
		}
		return storeJSON(ctx, tx, profileKey(profile.Email), updated)
	})
	if err != nil {
		return nil, fmt.Errorf("record query: %w", err)
	}
	return resp, nil
}

// Purchase buys a product and applies its grant once payment is confirmed.
func (s *AccountService) Purchase(ctx context.Context, productID string) (*domain.UserProfile, error) {
	product, ok := domain.LookupProduct(productID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProduct, productID)
	}
	profile, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: payment gateway %w", domain.ErrPurchaseFailed, domain.ErrNotConfigured)
	}

	paid, err := s.gateway.Purchase(ctx, product, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPurchaseFailed, err)
	}
	if !paid {
		return nil, fmt.Errorf("%w: payment for %s was not confirmed", domain.ErrPurchaseFailed, product.Name)
	}

	var updated domain.UserProfile
	err = s.store.Transact(ctx, func(ctx context.Context, tx driven.KeyValueTx) error {
		current, err := loadJSON[domain.UserProfile](ctx, tx, profileKey(profile.Email))
		if err != nil {
			return err
		}
		updated, err = s.ledger.ApplyGrant(current, product.Grant)
		if err != nil {
			return err
		}
		return storeJSON(ctx, tx, profileKey(profile.Email), updated)
	})
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", product.ID, err)
	}

	logger.Info("%s activated for %s", product.Name, profile.Email)
	return &updated, nil
}

func indexOfDocument(docs []domain.SavedDocument, id string) int {
	for i := range docs {
		if docs[i].ID == id {
			return i
		}
	}
	return -1
}

// RenderDocument returns the exported Markdown of a saved document.
func RenderDocument(doc domain.SavedDocument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "_Version %s · %s · %s_\n\n", doc.Version, doc.Jurisdiction, doc.State)
	b.WriteString(strings.TrimSpace(doc.Body))
	b.WriteString("\n")
	return b.String()
}
