package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.Assistant = (*AssistantService)(nil)

const (
	assistantTemperature = 0.1

	fallbackAssistantInstruction = "You are an informational AI assistant for Australian business law questions. " +
		"Answer strictly from the web search results, tailor answers to Australia, use simple Markdown, and do not " +
		"give legal advice."
)

// AssistantService streams grounded answers and collects their sources.
// It never touches entitlements; the caller decrements once per completed answer.
type AssistantService struct {
	answers driven.GroundedAnswerService
	prompts driven.PromptStore
}

// NewAssistantService creates a new assistant.
// The prompts parameter is optional; a built-in instruction is used when nil.
func NewAssistantService(answers driven.GroundedAnswerService, prompts driven.PromptStore) *AssistantService {
	return &AssistantService{
		answers: answers,
		prompts: prompts,
	}
}

// Ask streams an answer, forwarding every non-empty fragment to onChunk in
// arrival order. Grounding batches are accumulated across the whole stream
// and deduplicated by URI once it ends.
func (a *AssistantService) Ask(ctx context.Context, question string, onChunk driving.ChunkHandler) (*domain.AssistantResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}
	if a.answers == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAssistantFailure, domain.ErrNotConfigured)
	}

	logger.Section("Assistant")
	logger.Debug("Question: %q", question)

	stream, err := a.answers.StreamGrounded(ctx, driven.GroundedRequest{
		SystemInstruction: a.instruction(),
		Question:          question,
		UserContent:       BuildQuestionPrompt(question),
		Temperature:       assistantTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAssistantFailure, err)
	}
	defer stream.Close()

	var (
		answer  strings.Builder
		sources []domain.GroundingSource
		chunks  int
	)
	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("Assistant stream failed after %d chunks: %v", chunks, err)
			return nil, fmt.Errorf("%w: %w", domain.ErrAssistantFailure, err)
		}
		if chunk.Text != "" {
			answer.WriteString(chunk.Text)
			chunks++
			if onChunk != nil {
				onChunk(chunk.Text)
			}
		}
		sources = append(sources, chunk.Sources...)
	}

	unique := domain.DedupeSources(sources)
	logger.Info("Answer complete: %d chunks, %d sources (%d raw)", chunks, len(unique), len(sources))

	return &domain.AssistantResponse{
		Answer:  answer.String(),
		Sources: unique,
	}, nil
}

func (a *AssistantService) instruction() string {
	if a.prompts == nil {
		return fallbackAssistantInstruction
	}
	prompt, err := a.prompts.Load(driven.PromptAssistantSystem)
	if err != nil || strings.TrimSpace(prompt) == "" {
		logger.Warn("Using built-in assistant instruction: %v", err)
		return fallbackAssistantInstruction
	}
	return prompt
}

// BuildQuestionPrompt frames a question for a search-grounded answer.
func BuildQuestionPrompt(question string) string {
	return fmt.Sprintf("Question: %q\n\n"+
		"Answer for an Australian business using the latest web search results.", strings.TrimSpace(question))
}
