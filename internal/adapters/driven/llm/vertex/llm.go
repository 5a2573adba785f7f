// Package vertex provides generation and grounded streaming adapters for
// Gemini models on Google Cloud Vertex AI.
package vertex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

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
	DefaultModel   = "gemini-2.5-flash"
	DefaultRegion  = "us-central1"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the Vertex AI service.
type Config struct {
	// Project is the Google Cloud project ID (required).
	Project string

	// Region is the Vertex AI location (default: us-central1).
	Region string

	// Model is the Gemini model name (default: gemini-2.5-flash).
	Model string

	// Timeout bounds each structured request (default: 120s).
	Timeout time.Duration
}

// Service calls Gemini through the Gen AI SDK on the Vertex AI backend.
// Credentials come from Application Default Credentials.
type Service struct {
	models  *genai.Models
	model   string
	timeout time.Duration
}

// NewService creates a Vertex AI client.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.Project == "" {
		return nil, fmt.Errorf("vertex: project is required")
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  cfg.Project,
		Location: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	return &Service{
		models:  client.Models,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// GenerateStructured requests JSON constrained by a response schema.
func (s *Service) GenerateStructured(ctx context.Context, req driven.StructuredRequest) ([]byte, error) {
	if req.Schema == nil {
		return nil, fmt.Errorf("%w: schema is required", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(req.UserContent), StructuredConfig(req))
	if err != nil {
		return nil, fmt.Errorf("%w: vertex: %w", domain.ErrServiceUnavailable, err)
	}

	text, finish := ResponseText(resp)
	logger.Debug("vertex: %s finished (%s) in %s", s.model, finish, time.Since(start).Round(time.Millisecond))
	if text == "" {
		return nil, fmt.Errorf("%w: vertex: empty response (finish reason %s)", domain.ErrGenerationFailure, finish)
	}
	return []byte(text), nil
}

// StreamGrounded streams an answer with Google Search grounding enabled.
func (s *Service) StreamGrounded(ctx context.Context, req driven.GroundedRequest) (driven.AnswerStream, error) {
	content := req.UserContent
	if content == "" {
		content = req.Question
	}

	ctx, cancel := context.WithCancel(ctx)
	seq := s.models.GenerateContentStream(ctx, s.model, genai.Text(content), GroundedConfig(req))
	return newAnswerStream(seq, cancel), nil
}

// StructuredConfig builds the JSON-mode config for a structured request.
func StructuredConfig(req driven.StructuredRequest) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction(req.SystemInstruction),
		Temperature:       genai.Ptr(req.Temperature),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    ToGenaiSchema(req.Schema),
	}
}

// GroundedConfig builds the config for a grounded answer. The Google Search
// tool cannot be combined with a response schema, so answers are plain text.
func GroundedConfig(req driven.GroundedRequest) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction(req.SystemInstruction),
		Temperature:       genai.Ptr(req.Temperature),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
}

// SupportsGrounding returns true.
func (s *Service) SupportsGrounding() bool {
	return true
}

// ModelName returns the model being used.
func (s *Service) ModelName() string {
	return s.model
}

// Ping checks credentials and model access by counting tokens.
func (s *Service) Ping(ctx context.Context) error {
	if _, err := s.models.CountTokens(ctx, s.model, genai.Text("ping"), nil); err != nil {
		return fmt.Errorf("vertex: ping failed: %w", err)
	}
	return nil
}

// Close is a no-op; the Gen AI client holds no connections of its own.
func (s *Service) Close() error {
	return nil
}

// answerStream adapts the SDK's push iterator to the pull-style AnswerStream.
type answerStream struct {
	next   func() (*genai.GenerateContentResponse, error, bool)
	stop   func()
	cancel context.CancelFunc
}

func newAnswerStream(seq iter.Seq2[*genai.GenerateContentResponse, error], cancel context.CancelFunc) *answerStream {
	next, stop := iter.Pull2(seq)
	return &answerStream{next: next, stop: stop, cancel: cancel}
}

func (a *answerStream) Next() (driven.AnswerChunk, error) {
	resp, err, ok := a.next()
	if !ok {
		return driven.AnswerChunk{}, io.EOF
	}
	if err != nil {
		return driven.AnswerChunk{}, fmt.Errorf("vertex: stream: %w", err)
	}
	return ChunkFromResponse(resp), nil
}

func (a *answerStream) Close() error {
	a.cancel()
	a.stop()
	return nil
}

func systemInstruction(text string) *genai.Content {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// ResponseText concatenates the text parts of the first candidate and
// returns its finish reason. Thought parts are skipped.
func ResponseText(resp *genai.GenerateContentResponse) (string, genai.FinishReason) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", genai.FinishReasonUnspecified
	}
	cand := resp.Candidates[0]
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String(), cand.FinishReason
}

// ChunkFromResponse extracts text and web grounding sources from one
// streamed response. Sources are passed through unfiltered.
func ChunkFromResponse(resp *genai.GenerateContentResponse) driven.AnswerChunk {
	text, _ := ResponseText(resp)
	chunk := driven.AnswerChunk{Text: text}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return chunk
	}
	for _, gc := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if gc == nil || gc.Web == nil {
			continue
		}
		chunk.Sources = append(chunk.Sources, domain.GroundingSource{
			URI:   gc.Web.URI,
			Title: gc.Web.Title,
		})
	}
	return chunk
}

// ToGenaiSchema converts a provider-neutral schema to a Gemini response schema.
func ToGenaiSchema(s *driven.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
		Items:       ToGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = ToGenaiSchema(prop)
		}
	}
	return out
}

func genaiType(t driven.SchemaType) genai.Type {
	switch t {
	case driven.SchemaObject:
		return genai.TypeObject
	case driven.SchemaArray:
		return genai.TypeArray
	case driven.SchemaInteger:
		return genai.TypeInteger
	default:
		return genai.TypeString
	}
}

// IsRateLimited reports whether err is a Vertex AI quota rejection.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Status == "RESOURCE_EXHAUSTED"
	}
	return status.Code(err) == codes.ResourceExhausted
}
