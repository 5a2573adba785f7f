package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
)

func testSchema() *driven.Schema {
	return &driven.Schema{
		Type:     driven.SchemaObject,
		Required: []string{"documentText", "riskAnalysis"},
		Properties: map[string]*driven.Schema{
			"documentText": {Type: driven.SchemaString},
			"riskAnalysis": {
				Type:     driven.SchemaObject,
				Required: []string{"score", "level"},
				Properties: map[string]*driven.Schema{
					"score": {Type: driven.SchemaInteger},
					"level": {Type: driven.SchemaString, Enum: []string{"Low", "High"}},
				},
			},
			"tags": {Type: driven.SchemaArray, Items: &driven.Schema{Type: driven.SchemaString}},
		},
	}
}

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	svc, err := NewService(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	_, err := NewService(Config{})
	assert.Error(t, err)

	svc, err := NewService(Config{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.False(t, svc.SupportsGrounding())
	assert.NoError(t, svc.Close())
}

func TestService_GenerateStructured(t *testing.T) {
	var captured map[string]any
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","model":"gpt-4o-mini",
			"choices":[{"index":0,"message":{"role":"assistant","content":"{\"documentText\":\"## NDA\"}"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`)
	})

	out, err := svc.GenerateStructured(context.Background(), driven.StructuredRequest{
		SystemInstruction: "Draft.",
		UserContent:       "**Document to Generate:** NDA",
		Schema:            testSchema(),
		SchemaName:        "legal_document",
		Temperature:       0.2,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"documentText":"## NDA"}`, string(out))

	format := captured["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	js := format["json_schema"].(map[string]any)
	assert.Equal(t, "legal_document", js["name"])
	assert.Equal(t, true, js["strict"])
	schema := js["schema"].(map[string]any)
	assert.Equal(t, false, schema["additionalProperties"])

	msgs := captured["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.InDelta(t, 0.2, captured["temperature"], 0.0001)
}

func TestService_GenerateStructured_Errors(t *testing.T) {
	t.Run("api error is service unavailable", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
		})
		_, err := svc.GenerateStructured(context.Background(), driven.StructuredRequest{Schema: testSchema()})
		assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
	})

	t.Run("no choices is a generation failure", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":"c1","choices":[]}`)
		})
		_, err := svc.GenerateStructured(context.Background(), driven.StructuredRequest{Schema: testSchema()})
		assert.ErrorIs(t, err, domain.ErrGenerationFailure)
	})

	t.Run("schema required", func(t *testing.T) {
		svc, err := NewService(Config{APIKey: "sk-test"})
		require.NoError(t, err)
		_, err = svc.GenerateStructured(context.Background(), driven.StructuredRequest{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func sseChunk(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "s1",
		"object":  "chat.completion.chunk",
		"choices": []any{map[string]any{"index": 0, "delta": map[string]any{"content": content}}},
	})
	return "data: " + string(b) + "\n\n"
}

func TestService_StreamGrounded(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, true, req["stream"])

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseChunk("The Privacy Act "))
		fmt.Fprint(w, `data: {"id":"s1","object":"chat.completion.chunk","choices":[]}`+"\n\n")
		fmt.Fprint(w, sseChunk("applies."))
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	stream, err := svc.StreamGrounded(context.Background(), driven.GroundedRequest{
		SystemInstruction: "Inform.",
		Question:          "Does the Privacy Act apply?",
	})
	require.NoError(t, err)
	defer stream.Close()

	var text string
	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		assert.Empty(t, chunk.Sources)
		text += chunk.Text
	}
	assert.Equal(t, "The Privacy Act applies.", text)
}

func TestService_Ping(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","data":[{"id":"gpt-4o-mini","object":"model"}]}`)
	})
	assert.NoError(t, svc.Ping(context.Background()))
}

func TestToDefinition(t *testing.T) {
	def := ToDefinition(testSchema())
	raw, err := json.Marshal(def)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "object", got["type"])
	assert.Equal(t, false, got["additionalProperties"])

	props := got["properties"].(map[string]any)
	risk := props["riskAnalysis"].(map[string]any)
	assert.Equal(t, false, risk["additionalProperties"])
	level := risk["properties"].(map[string]any)["level"].(map[string]any)
	assert.Equal(t, []any{"Low", "High"}, level["enum"])
	tags := props["tags"].(map[string]any)
	assert.Equal(t, "string", tags["items"].(map[string]any)["type"])

	assert.Nil(t, ToDefinition(nil))
}

func TestIsRateLimited(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"Rate limit reached","type":"requests"}}`)
	})

	_, err := svc.GenerateStructured(context.Background(), driven.StructuredRequest{Schema: testSchema()})
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	assert.False(t, IsRateLimited(errors.New("boom")))
	assert.False(t, IsRateLimited(&openai.APIError{HTTPStatusCode: http.StatusBadRequest}))
}
