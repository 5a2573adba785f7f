// Package openai provides generation and streaming adapters for the OpenAI
// API and compatible endpoints.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// Ensure Service implements the interfaces.
var (
	_ driven.GenerationService     = (*Service)(nil)
	_ driven.GroundedAnswerService = (*Service)(nil)
)

// Default configuration values.
const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second
	maxTokens      = 8192
)

// Config holds configuration for the OpenAI service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API base URL for compatible servers.
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Timeout bounds each request (default: 120s). Streams are bounded by
	// the caller's context instead.
	Timeout time.Duration

	// HTTPClient replaces the default client. Used by tests.
	HTTPClient *http.Client
}

// Service calls the chat completions API. Answers are not grounded on web
// search, so streamed chunks never carry sources.
type Service struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewService creates a new OpenAI service.
func NewService(cfg Config) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}

	return &Service{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// GenerateStructured requests a strict json_schema response.
func (s *Service) GenerateStructured(ctx context.Context, req driven.StructuredRequest) ([]byte, error) {
	if req.Schema == nil {
		return nil, fmt.Errorf("%w: schema is required", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	name := req.SchemaName
	if name == "" {
		name = "response"
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: req.UserContent},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: ToDefinition(req.Schema),
				Strict: true,
			},
		},
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %w", domain.ErrServiceUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai: no response choices returned", domain.ErrGenerationFailure)
	}

	choice := resp.Choices[0]
	logger.Debug("openai: %s finished (%s) in %s, %d tokens",
		s.model, choice.FinishReason, time.Since(start).Round(time.Millisecond), resp.Usage.TotalTokens)
	if choice.Message.Refusal != "" {
		return nil, fmt.Errorf("%w: openai refused: %s", domain.ErrGenerationFailure, choice.Message.Refusal)
	}
	return []byte(choice.Message.Content), nil
}

// StreamGrounded streams a chat completion.
func (s *Service) StreamGrounded(ctx context.Context, req driven.GroundedRequest) (driven.AnswerStream, error) {
	content := req.UserContent
	if content == "" {
		content = req.Question
	}
	stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: req.Temperature,
		Stream:      true,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: start stream: %w", err)
	}
	return &answerStream{stream: stream}, nil
}

// SupportsGrounding returns false; the chat API returns no citations.
func (s *Service) SupportsGrounding() bool {
	return false
}

// ModelName returns the model being used.
func (s *Service) ModelName() string {
	return s.model
}

// Ping validates the API key by listing models.
func (s *Service) Ping(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *Service) Close() error {
	return nil
}

type answerStream struct {
	stream *openai.ChatCompletionStream
}

func (a *answerStream) Next() (driven.AnswerChunk, error) {
	for {
		resp, err := a.stream.Recv()
		if errors.Is(err, io.EOF) {
			return driven.AnswerChunk{}, io.EOF
		}
		if err != nil {
			return driven.AnswerChunk{}, fmt.Errorf("openai: stream: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		return driven.AnswerChunk{Text: resp.Choices[0].Delta.Content}, nil
	}
}

func (a *answerStream) Close() error {
	return a.stream.Close()
}

// ToDefinition converts a provider-neutral schema to a strict-mode
// definition. Strict mode requires closed objects.
func ToDefinition(s *driven.Schema) *jsonschema.Definition {
	if s == nil {
		return nil
	}
	def := &jsonschema.Definition{
		Type:        dataType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	if s.Type == driven.SchemaObject {
		def.AdditionalProperties = false
		def.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for name, prop := range s.Properties {
			def.Properties[name] = *ToDefinition(prop)
		}
	}
	if s.Items != nil {
		def.Items = ToDefinition(s.Items)
	}
	return def
}

func dataType(t driven.SchemaType) jsonschema.DataType {
	switch t {
	case driven.SchemaObject:
		return jsonschema.Object
	case driven.SchemaArray:
		return jsonschema.Array
	case driven.SchemaInteger:
		return jsonschema.Integer
	default:
		return jsonschema.String
	}
}

// IsRateLimited reports whether err is an HTTP 429 from the API.
func IsRateLimited(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}
