package mcp

import (
	"context"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// mockAccountService is a mock implementation of driving.AccountService.
// Methods the MCP server never calls panic through the nil embedded interface.
type mockAccountService struct {
	driving.AccountService

	profile   *domain.UserProfile
	generated *domain.GeneratedDocument
	saved     *domain.SavedDocument
	answer    *domain.AssistantResponse
	err       error
	saveErr   error

	lastInput driving.GenerateInput
	saves     int
}

func (m *mockAccountService) Current(_ context.Context) (*domain.UserProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
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
	_ context.Context, _ domain.GeneratedDocument, _ string,
) (*domain.SavedDocument, error) {
	m.saves++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	return m.saved, nil
}

func (m *mockAccountService) Ask(
	_ context.Context, _ string, onChunk driving.ChunkHandler,
) (*domain.AssistantResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if onChunk != nil {
		onChunk(m.answer.Answer)
	}
	return m.answer, nil
}
