package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// Ensure DocumentGenerator implements the interface.
var _ driving.DocumentGenerator = (*DocumentGenerator)(nil)

const (
	documentSchemaName  = "legal_document"
	documentTemperature = 0.2

	fallbackDocumentInstruction = "You are an expert AI legal assistant drafting documents for Australian " +
		"businesses. Draft the requested document in Markdown, integrate any optional clauses, and return a " +
		"practical risk analysis. Respond only with JSON that matches the provided schema."
)

// DocumentGenerator builds schema-constrained generation requests and
// validates the structured response. It never touches entitlements or
// persistence.
type DocumentGenerator struct {
	llm     driven.GenerationService
	prompts driven.PromptStore
	policy  domain.RiskPolicy
	clock   driven.Clock
}

// NewDocumentGenerator creates a new document generator.
// The prompts parameter is optional; a built-in instruction is used when nil.
func NewDocumentGenerator(llm driven.GenerationService, prompts driven.PromptStore, policy domain.RiskPolicy) *DocumentGenerator {
	return &DocumentGenerator{
		llm:     llm,
		prompts: prompts,
		policy:  policy,
		clock:   driven.SystemClock{},
	}
}

// SetClock replaces the clock used to stamp generated documents.
func (g *DocumentGenerator) SetClock(clock driven.Clock) {
	g.clock = clock
}

// Generate requests a document and risk analysis from the model.
func (g *DocumentGenerator) Generate(ctx context.Context, req driving.GenerationRequest) (*domain.GeneratedDocument, error) {
	if g.llm == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, domain.ErrNotConfigured)
	}

	logger.Section("Document Generation")
	jurisdiction := req.Jurisdiction
	if strings.TrimSpace(jurisdiction) == "" {
		jurisdiction = domain.DefaultJurisdiction
	}
	form := req.Form.Clone()

	content, err := BuildDocumentPrompt(req.Template, form, jurisdiction, req.Clauses)
	if err != nil {
		return nil, err
	}
	logger.Debug("Template: %s, jurisdiction: %s, clauses: %d, model: %s",
		req.Template.ID, jurisdiction, len(req.Clauses), g.llm.ModelName())

	raw, err := g.llm.GenerateStructured(ctx, driven.StructuredRequest{
		SystemInstruction: g.instruction(),
		UserContent:       content,
		Schema:            DocumentSchema(),
		SchemaName:        documentSchemaName,
		Temperature:       documentTemperature,
	})
	if err != nil {
		if errors.Is(err, domain.ErrGenerationFailure) || errors.Is(err, domain.ErrServiceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
	}

	body, risk, err := ParseDocumentResponse(raw, g.policy)
	if err != nil {
		logger.Warn("Rejected model response: %v", err)
		return nil, err
	}
	logger.Info("Generated %s: risk %d (%s), %d factors", req.Template.ID, risk.Score, risk.Level, len(risk.Breakdown))

	clauseIDs := make([]string, 0, len(req.Clauses))
	for _, c := range req.Clauses {
		clauseIDs = append(clauseIDs, c.ID)
	}

	return &domain.GeneratedDocument{
		TemplateID:   req.Template.ID,
		Body:         body,
		Risk:         risk,
		Form:         form,
		Jurisdiction: jurisdiction,
		ClauseIDs:    clauseIDs,
		GeneratedAt:  g.clock.Now(),
	}, nil
}

func (g *DocumentGenerator) instruction() string {
	if g.prompts == nil {
		return fallbackDocumentInstruction
	}
	prompt, err := g.prompts.Load(driven.PromptDocumentSystem)
	if err != nil || strings.TrimSpace(prompt) == "" {
		logger.Warn("Using built-in document instruction: %v", err)
		return fallbackDocumentInstruction
	}
	return prompt
}

// BuildDocumentPrompt renders the user content of a generation request.
// Form values are serialised as indented JSON and clauses follow in
// selection order.
func BuildDocumentPrompt(
	tmpl domain.Template,
	form domain.FormData,
	jurisdiction string,
	clauses []domain.OptionalClause,
) (string, error) {
	formJSON, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode form data: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Document to Generate:** %s\n", tmpl.Title)
	fmt.Fprintf(&b, "**Jurisdiction:** %s, Australia\n\n", jurisdiction)
	b.WriteString("**User-provided Data:**\n")
	b.Write(formJSON)
	b.WriteString("\n\n**Optional Clauses to Include:**\n")
	if len(clauses) == 0 {
		b.WriteString("None.\n")
	}
	for _, c := range clauses {
		fmt.Fprintf(&b, "\n### %s\n%s\n", c.Title, c.Content)
	}
	b.WriteString("\n**Task:**\nGenerate the legal document and perform the risk analysis based on the data provided, " +
		"following all core directives.\n")
	return b.String(), nil
}

// DocumentSchema is the required output shape: the document body and a risk
// analysis object.
func DocumentSchema() *driven.Schema {
	levels := make([]string, 0, 4)
	for _, l := range domain.RiskLevels() {
		levels = append(levels, l.String())
	}

	return &driven.Schema{
		Type: driven.SchemaObject,
		Properties: map[string]*driven.Schema{
			"documentText": {
				Type: driven.SchemaString,
				Description: "The full legal document text in clean, well-structured Markdown. Use ## for headings, " +
					"* for list items, and ** for bold.",
			},
			"riskAnalysis": {
				Type: driven.SchemaObject,
				Properties: map[string]*driven.Schema{
					"score": {
						Type:        driven.SchemaInteger,
						Description: "A risk score from 0 (low risk) to 100 (critical risk).",
					},
					"level": {
						Type:        driven.SchemaString,
						Description: "A one-word risk level: Low, Medium, High, or Critical.",
						Enum:        levels,
					},
					"summary": {
						Type:        driven.SchemaString,
						Description: "A one-sentence summary of the primary legal risk.",
					},
					"breakdown": {
						Type:        driven.SchemaArray,
						Description: "The specific risks identified.",
						Items: &driven.Schema{
							Type: driven.SchemaObject,
							Properties: map[string]*driven.Schema{
								"title": {
									Type:        driven.SchemaString,
									Description: "The title of the risk area (e.g., 'Sham Contracting').",
								},
								"reasoning": {
									Type:        driven.SchemaString,
									Description: "Why this is a risk based on the provided data.",
								},
							},
							Required: []string{"title", "reasoning"},
						},
					},
				},
				Required: []string{"score", "level", "summary", "breakdown"},
			},
		},
		Required: []string{"documentText", "riskAnalysis"},
	}
}

type documentPayload struct {
	DocumentText *string      `json:"documentText"`
	RiskAnalysis *riskPayload `json:"riskAnalysis"`
}

type riskPayload struct {
	Score     *json.Number     `json:"score"`
	Level     *string          `json:"level"`
	Summary   *string          `json:"summary"`
	Breakdown *[]factorPayload `json:"breakdown"`
}

type factorPayload struct {
	Title     *string `json:"title"`
	Reasoning *string `json:"reasoning"`
}

// ParseDocumentResponse validates a model payload and returns the document
// body and risk analysis. Any deviation from the schema fails with
// domain.ErrGenerationFailure. The level is re-derived from the score by the
// policy so stored analyses are always consistent.
func ParseDocumentResponse(raw []byte, policy domain.RiskPolicy) (string, domain.RiskAnalysis, error) {
	cleaned := trimCodeFence(raw)
	if len(cleaned) == 0 {
		return "", domain.RiskAnalysis{}, fmt.Errorf("%w: empty response", domain.ErrGenerationFailure)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(cleaned, &top); err != nil {
		return "", domain.RiskAnalysis{}, fmt.Errorf("%w: response is not a JSON object: %w", domain.ErrGenerationFailure, err)
	}
	for key := range top {
		if key != "documentText" && key != "riskAnalysis" {
			return "", domain.RiskAnalysis{}, fmt.Errorf("%w: unexpected member %q", domain.ErrGenerationFailure, key)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(cleaned))
	dec.UseNumber()
	var payload documentPayload
	if err := dec.Decode(&payload); err != nil {
		return "", domain.RiskAnalysis{}, fmt.Errorf("%w: %w", domain.ErrGenerationFailure, err)
	}

	if payload.DocumentText == nil || strings.TrimSpace(*payload.DocumentText) == "" {
		return "", domain.RiskAnalysis{}, fmt.Errorf("%w: missing documentText", domain.ErrGenerationFailure)
	}
	risk, err := parseRisk(payload.RiskAnalysis, policy)
	if err != nil {
		return "", domain.RiskAnalysis{}, err
	}
	return *payload.DocumentText, risk, nil
}

func parseRisk(p *riskPayload, policy domain.RiskPolicy) (domain.RiskAnalysis, error) {
	if p == nil {
		return domain.RiskAnalysis{}, fmt.Errorf("%w: missing riskAnalysis", domain.ErrGenerationFailure)
	}
	if p.Score == nil || p.Level == nil || p.Summary == nil || p.Breakdown == nil {
		return domain.RiskAnalysis{}, fmt.Errorf("%w: riskAnalysis requires score, level, summary and breakdown",
			domain.ErrGenerationFailure)
	}

	f, err := p.Score.Float64()
	if err != nil || f != math.Trunc(f) {
		return domain.RiskAnalysis{}, fmt.Errorf("%w: score %q is not an integer", domain.ErrGenerationFailure, p.Score.String())
	}
	if f < domain.MinRiskScore || f > domain.MaxRiskScore {
		return domain.RiskAnalysis{}, fmt.Errorf("%w: score %v outside [%d,%d]",
			domain.ErrGenerationFailure, f, domain.MinRiskScore, domain.MaxRiskScore)
	}
	score := int(f)

	reported, ok := domain.ParseRiskLevel(*p.Level)
	if !ok {
		return domain.RiskAnalysis{}, fmt.Errorf("%w: unknown risk level %q", domain.ErrGenerationFailure, *p.Level)
	}

	breakdown := make([]domain.RiskFactor, 0, len(*p.Breakdown))
	for i, item := range *p.Breakdown {
		if item.Title == nil || item.Reasoning == nil {
			return domain.RiskAnalysis{}, fmt.Errorf("%w: breakdown item %d requires title and reasoning",
				domain.ErrGenerationFailure, i)
		}
		breakdown = append(breakdown, domain.RiskFactor{Title: *item.Title, Reasoning: *item.Reasoning})
	}

	risk, err := policy.NewRiskAnalysis(score, *p.Summary, breakdown)
	if err != nil {
		return domain.RiskAnalysis{}, fmt.Errorf("%w: %w", domain.ErrGenerationFailure, err)
	}
	if risk.Level != reported {
		logger.Debug("Model reported level %s for score %d, using %s", reported, score, risk.Level)
	}
	return risk, nil
}

// trimCodeFence removes a Markdown code fence some models wrap JSON in.
func trimCodeFence(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return []byte(strings.TrimSpace(s))
}
