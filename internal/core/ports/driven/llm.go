package driven

import (
	"context"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

// GenerationService requests schema-constrained output from a generative model.
// The service returns the raw payload; conformance is checked by the caller.
//
// Implementations include:
//   - Gemini on Vertex AI (ResponseSchema)
//   - OpenAI (json_schema response format)
type GenerationService interface {
	// GenerateStructured returns the model's JSON payload for the request.
	// Transport and timeout failures wrap domain.ErrServiceUnavailable.
	GenerateStructured(ctx context.Context, req StructuredRequest) ([]byte, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// StructuredRequest is one schema-constrained generation call.
type StructuredRequest struct {
	// SystemInstruction sets the model's role and directives.
	SystemInstruction string

	// UserContent carries the template, jurisdiction, form data and clauses.
	UserContent string

	// Schema is the required output shape.
	Schema *Schema

	// SchemaName identifies the schema for providers that require a name.
	SchemaName string

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float32
}

// GroundedAnswerService streams answers grounded on live web search.
//
// Implementations include:
//   - Gemini on Vertex AI (Google Search retrieval tool)
//   - OpenAI (streamed chat completion, no grounding metadata)
type GroundedAnswerService interface {
	// StreamGrounded starts a streamed answer. Cancelling ctx aborts the
	// underlying transport on a best-effort basis.
	StreamGrounded(ctx context.Context, req GroundedRequest) (AnswerStream, error)

	// SupportsGrounding returns true if chunks may carry sources.
	SupportsGrounding() bool

	// Close releases resources.
	Close() error
}

// GroundedRequest is one grounded question.
type GroundedRequest struct {
	SystemInstruction string

	// Question is the user's question as asked.
	Question string

	// UserContent is the question framed for the model.
	UserContent string

	Temperature float32
}

// AnswerStream yields chunks in order until io.EOF.
type AnswerStream interface {
	// Next returns the next chunk, or io.EOF when the stream is complete.
	Next() (AnswerChunk, error)

	// Close releases the stream.
	Close() error
}

// AnswerChunk is one increment of a streamed answer. Text may be empty when
// the increment only carries grounding metadata. Sources may be incomplete
// and repeat across chunks.
type AnswerChunk struct {
	Text    string
	Sources []domain.GroundingSource
}

// SchemaType is the JSON type of a Schema node.
type SchemaType string

// Schema node types.
const (
	SchemaObject  SchemaType = "object"
	SchemaArray   SchemaType = "array"
	SchemaString  SchemaType = "string"
	SchemaInteger SchemaType = "integer"
)

// Schema is a provider-neutral subset of JSON Schema. Adapters translate it
// into their native schema types.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
	Enum        []string
}
