package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

func TestServer_handleListTemplates(t *testing.T) {
	server := newTestServer(t, &mockAccountService{})

	_, output, err := server.handleListTemplates(context.Background(), nil, ListTemplatesInput{})

	require.NoError(t, err)
	require.Len(t, output.Templates, 6)
	employment := output.Templates[0]
	assert.Equal(t, "employment", employment.ID)
	assert.Equal(t, "businessName", employment.Fields[0].Key)
	assert.Equal(t, domain.FieldLabel("businessName"), employment.Fields[0].Label)
	assert.NotEmpty(t, employment.Clauses)
}

func TestServer_handleGenerate(t *testing.T) {
	ctx := context.Background()
	generated := &domain.GeneratedDocument{
		TemplateID: "nda",
		Body:       "MUTUAL NON-DISCLOSURE AGREEMENT",
		Risk: domain.RiskAnalysis{
			Score:     30,
			Level:     domain.RiskLevelMedium,
			Summary:   "Term is short.",
			Breakdown: []domain.RiskFactor{{Title: "Term", Reasoning: "One year is brief."}},
		},
	}

	t.Run("returns document and risk", func(t *testing.T) {
		account := &mockAccountService{generated: generated}
		server := newTestServer(t, account)

		_, output, err := server.handleGenerate(ctx, nil, GenerateInput{
			TemplateID:   " nda ",
			Fields:       map[string]string{"disclosingParty": "Acme Pty Ltd"},
			Jurisdiction: "Victoria",
			ClauseIDs:    []string{"mutual"},
		})

		require.NoError(t, err)
		assert.Equal(t, "MUTUAL NON-DISCLOSURE AGREEMENT", output.DocumentText)
		assert.Equal(t, "Medium", output.Risk.Level)
		assert.Equal(t, 30, output.Risk.Score)
		require.Len(t, output.Risk.Breakdown, 1)
		assert.Equal(t, "Term", output.Risk.Breakdown[0].Title)
		assert.Empty(t, output.SavedID)
		assert.Zero(t, account.saves)

		assert.Equal(t, "nda", account.lastInput.TemplateID)
		assert.Equal(t, "Victoria", account.lastInput.Jurisdiction)
		assert.Equal(t, []string{"mutual"}, account.lastInput.ClauseIDs)
		assert.Equal(t, "Acme Pty Ltd", account.lastInput.Form["disclosingParty"])
	})

	t.Run("saves when asked", func(t *testing.T) {
		account := &mockAccountService{
			generated: generated,
			saved:     &domain.SavedDocument{ID: "doc-1", Version: domain.InitialVersion},
		}
		server := newTestServer(t, account)

		_, output, err := server.handleGenerate(ctx, nil, GenerateInput{TemplateID: "nda", Save: true})

		require.NoError(t, err)
		assert.Equal(t, "doc-1", output.SavedID)
		assert.Equal(t, "1.0", output.Version)
		assert.Equal(t, 1, account.saves)
	})

	t.Run("save without credits", func(t *testing.T) {
		account := &mockAccountService{generated: generated, saveErr: domain.ErrEntitlementExhausted}
		server := newTestServer(t, account)

		_, _, err := server.handleGenerate(ctx, nil, GenerateInput{TemplateID: "nda", Save: true})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEntitlementExhausted)
		assert.Contains(t, err.Error(), "lexdraft purchase")
	})

	t.Run("validation error", func(t *testing.T) {
		verr := &domain.ValidationError{}
		verr.Add("businessName", "Business Name is required.")
		server := newTestServer(t, &mockAccountService{err: verr})

		_, _, err := server.handleGenerate(ctx, nil, GenerateInput{TemplateID: "privacy"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "the form is incomplete")
	})
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with sources", func(t *testing.T) {
		account := &mockAccountService{answer: &domain.AssistantResponse{
			Answer:  "Yes, under the Fair Work Act.",
			Sources: []domain.GroundingSource{{URI: "https://www.fairwork.gov.au", Title: "Fair Work"}},
		}}
		server := newTestServer(t, account)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "Do I need a contract?"})

		require.NoError(t, err)
		assert.Equal(t, "Yes, under the Fair Work Act.", output.Answer)
		require.Len(t, output.Sources, 1)
		assert.Equal(t, "https://www.fairwork.gov.au", output.Sources[0].URI)
	})

	t.Run("empty question", func(t *testing.T) {
		server := newTestServer(t, &mockAccountService{})

		_, _, err := server.handleAsk(ctx, nil, AskInput{Question: "  "})

		require.Error(t, err)
	})

	t.Run("service failure", func(t *testing.T) {
		server := newTestServer(t, &mockAccountService{
			err: fmt.Errorf("%w: stream reset", domain.ErrAssistantFailure),
		})

		_, _, err := server.handleAsk(ctx, nil, AskInput{Question: "Do I need a contract?"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAssistantFailure)
		assert.Contains(t, err.Error(), "unavailable right now")
	})
}

func TestServer_handleQuizScore(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, &mockAccountService{})

	t.Run("scores answers", func(t *testing.T) {
		_, output, err := server.handleQuizScore(ctx, nil, QuizInput{Answers: []int{1, 1, 0, 1}})

		require.NoError(t, err)
		// 20 + 15 + 0 + 15
		assert.Equal(t, 50, output.Score)
		assert.Equal(t, "Medium", output.Risk)
		assert.NotEmpty(t, output.Message)
	})

	t.Run("wrong number of answers", func(t *testing.T) {
		_, _, err := server.handleQuizScore(ctx, nil, QuizInput{Answers: []int{0}})

		assert.ErrorIs(t, err, domain.ErrQuizIncomplete)
	})

	t.Run("option out of range", func(t *testing.T) {
		_, _, err := server.handleQuizScore(ctx, nil, QuizInput{Answers: []int{0, 0, 0, 7}})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleAccountStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("logged in", func(t *testing.T) {
		server := newTestServer(t, &mockAccountService{profile: &domain.UserProfile{
			Email: "owner@acme.com.au", Tier: domain.TierFree, AvailableAIQueries: 3, PurchasedDocSlots: 2,
		}})

		_, output, err := server.handleAccountStatus(ctx, nil, AccountStatusInput{})

		require.NoError(t, err)
		assert.True(t, output.LoggedIn)
		assert.Equal(t, "owner@acme.com.au", output.Email)
		assert.Equal(t, "free", output.Tier)
		assert.Equal(t, 3, output.AIQueries)
		assert.Equal(t, 2, output.DocSlots)
	})

	t.Run("logged out", func(t *testing.T) {
		server := newTestServer(t, &mockAccountService{})

		_, output, err := server.handleAccountStatus(ctx, nil, AccountStatusInput{})

		require.NoError(t, err)
		assert.False(t, output.LoggedIn)
	})

	t.Run("store failure", func(t *testing.T) {
		server := newTestServer(t, &mockAccountService{err: errors.New("disk full")})

		_, _, err := server.handleAccountStatus(ctx, nil, AccountStatusInput{})

		assert.EqualError(t, err, "disk full")
	})
}

func TestToolError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not logged in", err: domain.ErrNotLoggedIn, want: "lexdraft login"},
		{name: "exhausted", err: domain.ErrEntitlementExhausted, want: "purchase pro"},
		{name: "generation", err: domain.ErrGenerationFailure, want: "unusable document"},
		{name: "unavailable", err: domain.ErrServiceUnavailable, want: "unavailable right now"},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toolError(tt.err)
			assert.ErrorIs(t, got, tt.err)
			assert.Contains(t, got.Error(), tt.want)
		})
	}
}
