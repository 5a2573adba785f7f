package httpapi

import (
	"context"
	"errors"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft-cli/internal/core/services"
)

type mockAccountService struct {
	profile   *domain.UserProfile
	docs      []domain.SavedDocument
	generated *domain.GeneratedDocument
	chunks    []string
	sources   []domain.GroundingSource
	err       error
	streamErr error

	lastEmail     string
	lastSubscribe bool
	lastInput     driving.GenerateInput
	lastExisting  string
	lastProduct   string
	loggedOut     bool
}

var _ driving.AccountService = (*mockAccountService)(nil)

func (m *mockAccountService) Login(_ context.Context, email string, subscribe bool) (*domain.UserProfile, error) {
	m.lastEmail, m.lastSubscribe = email, subscribe
	if m.err != nil {
		return nil, m.err
	}
	m.profile = &domain.UserProfile{Email: email, Tier: domain.TierFree, AvailableAIQueries: 3}
	return m.profile, nil
}

func (m *mockAccountService) Logout(_ context.Context) error {
	m.loggedOut = true
	m.profile = nil
	return nil
}

func (m *mockAccountService) Current(_ context.Context) (*domain.UserProfile, error) {
	if m.profile == nil {
		return nil, domain.ErrNotLoggedIn
	}
	return m.profile, nil
}

func (m *mockAccountService) Generate(_ context.Context, in driving.GenerateInput) (*domain.GeneratedDocument, error) {
	m.lastInput = in
	if m.err != nil {
		return nil, m.err
	}
	return m.generated, nil
}

func (m *mockAccountService) SaveDocument(
	_ context.Context, doc domain.GeneratedDocument, existingID string,
) (*domain.SavedDocument, error) {
	m.lastExisting = existingID
	if m.err != nil {
		return nil, m.err
	}
	id := existingID
	if id == "" {
		id = "doc-new"
	}
	return &domain.SavedDocument{ID: id, TemplateID: doc.TemplateID, Body: doc.Body, Version: domain.InitialVersion}, nil
}

func (m *mockAccountService) ListDocuments(_ context.Context) ([]domain.SavedDocument, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

func (m *mockAccountService) GetDocument(_ context.Context, id string) (*domain.SavedDocument, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockAccountService) Download(ctx context.Context, id string) (*driving.DownloadResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc, err := m.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return &driving.DownloadResult{Document: *doc, Location: "/tmp/" + doc.FileName() + ".md"}, nil
}

func (m *mockAccountService) Ask(
	_ context.Context, _ string, onChunk driving.ChunkHandler,
) (*domain.AssistantResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	answer := ""
	for _, c := range m.chunks {
		onChunk(c)
		answer += c
	}
	if m.streamErr != nil {
		return nil, m.streamErr
	}
	return &domain.AssistantResponse{Answer: answer, Sources: m.sources}, nil
}

func (m *mockAccountService) Purchase(_ context.Context, productID string) (*domain.UserProfile, error) {
	m.lastProduct = productID
	if _, ok := domain.LookupProduct(productID); !ok {
		return nil, domain.ErrUnknownProduct
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func newTestPorts(account *mockAccountService) *Ports {
	return &Ports{
		Account: account,
		Quiz:    services.NewQuizService(domain.DefaultRiskPolicy()),
	}
}

var errBoom = errors.New("boom")
