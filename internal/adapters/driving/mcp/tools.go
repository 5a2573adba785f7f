package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// ListTemplatesInput is the input schema for the list_templates tool.
type ListTemplatesInput struct{}

// ListTemplatesOutput is the output schema for the list_templates tool.
type ListTemplatesOutput struct {
	Templates []TemplateOutput `json:"templates"`
}

// TemplateOutput describes one template and the fields it needs.
type TemplateOutput struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	RiskTier    string         `json:"risk_tier"`
	Fields      []FieldOutput  `json:"fields"`
	Clauses     []ClauseOutput `json:"clauses,omitempty"`
}

// FieldOutput is a required form field.
type FieldOutput struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ClauseOutput is an optional clause that can be merged in.
type ClauseOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GenerateInput is the input schema for the generate_document tool.
type GenerateInput struct {
	TemplateID   string            `json:"template_id" jsonschema:"template to draft, as returned by list_templates"`
	Fields       map[string]string `json:"fields" jsonschema:"value for every required field of the template, keyed by field key"`
	Jurisdiction string            `json:"jurisdiction,omitempty" jsonschema:"Australian state or territory (default New South Wales)"`
	ClauseIDs    []string          `json:"clause_ids,omitempty" jsonschema:"optional clause IDs to merge, in order"`
	Save         bool              `json:"save,omitempty" jsonschema:"save the draft to the account (uses a document credit on the free tier)"`
}

// GenerateOutput is the output schema for the generate_document tool.
type GenerateOutput struct {
	DocumentText string     `json:"document_text"`
	Risk         RiskOutput `json:"risk"`
	SavedID      string     `json:"saved_id,omitempty"`
	Version      string     `json:"version,omitempty"`
}

// RiskOutput is the risk analysis of a generated document.
type RiskOutput struct {
	Score     int            `json:"score"`
	Level     string         `json:"level"`
	Summary   string         `json:"summary"`
	Breakdown []FactorOutput `json:"breakdown"`
}

// FactorOutput is one contributing risk factor.
type FactorOutput struct {
	Title     string `json:"title"`
	Reasoning string `json:"reasoning"`
}

// AskInput is the input schema for the ask_legal_assistant tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"legal question about running a small business in Australia"`
}

// AskOutput is the output schema for the ask_legal_assistant tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput is a web source the answer was grounded on.
type SourceOutput struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// QuizInput is the input schema for the risk_quiz_score tool.
type QuizInput struct {
	Answers []int `json:"answers" jsonschema:"0-based option chosen for each health check question, in order"`
}

// QuizOutput is the output schema for the risk_quiz_score tool.
type QuizOutput struct {
	Score   int    `json:"score"`
	Risk    string `json:"risk"`
	Message string `json:"message"`
}

// AccountStatusInput is the input schema for the account_status tool.
type AccountStatusInput struct{}

// AccountStatusOutput is the output schema for the account_status tool.
type AccountStatusOutput struct {
	LoggedIn  bool   `json:"logged_in"`
	Email     string `json:"email,omitempty"`
	Tier      string `json:"tier,omitempty"`
	AIQueries int    `json:"ai_queries"`
	DocSlots  int    `json:"doc_slots"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List the legal document templates and the fields each one needs",
	}, s.handleListTemplates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "generate_document",
		Description: "Draft a legal document from a template with an AI risk analysis. " +
			"Optionally saves it to the logged-in account.",
	}, s.handleGenerate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_legal_assistant",
		Description: "Ask the web-grounded legal assistant a question. Uses one AI query on the free tier.",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "risk_quiz_score",
		Description: "Score the four-question legal health check and classify the business's risk",
	}, s.handleQuizScore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "account_status",
		Description: "Show the logged-in account's tier and remaining credits",
	}, s.handleAccountStatus)
}

func (s *Server) handleListTemplates(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListTemplatesInput,
) (*mcp.CallToolResult, ListTemplatesOutput, error) {
	templates := domain.Templates()
	output := ListTemplatesOutput{Templates: make([]TemplateOutput, len(templates))}
	for i, t := range templates {
		output.Templates[i] = toTemplateOutput(t)
	}
	return nil, output, nil
}

func toTemplateOutput(t domain.Template) TemplateOutput {
	out := TemplateOutput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		RiskTier:    t.RiskTier.String(),
		Fields:      make([]FieldOutput, len(t.Fields)),
	}
	for i, f := range t.Fields {
		out.Fields[i] = FieldOutput{Key: f, Label: domain.FieldLabel(f)}
	}
	for _, c := range t.Clauses {
		out.Clauses = append(out.Clauses, ClauseOutput{ID: c.ID, Title: c.Title, Description: c.Description})
	}
	return out
}

func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	doc, err := s.ports.Account.Generate(ctx, driving.GenerateInput{
		TemplateID:   strings.TrimSpace(input.TemplateID),
		Form:         domain.FormData(input.Fields),
		Jurisdiction: input.Jurisdiction,
		ClauseIDs:    input.ClauseIDs,
	})
	if err != nil {
		return nil, GenerateOutput{}, toolError(err)
	}

	output := GenerateOutput{
		DocumentText: doc.Body,
		Risk:         toRiskOutput(doc.Risk),
	}

	if input.Save {
		saved, err := s.ports.Account.SaveDocument(ctx, *doc, "")
		if err != nil {
			return nil, GenerateOutput{}, toolError(err)
		}
		output.SavedID = saved.ID
		output.Version = saved.Version
	}

	return nil, output, nil
}

func toRiskOutput(r domain.RiskAnalysis) RiskOutput {
	out := RiskOutput{
		Score:     r.Score,
		Level:     r.Level.String(),
		Summary:   r.Summary,
		Breakdown: make([]FactorOutput, len(r.Breakdown)),
	}
	for i, f := range r.Breakdown {
		out.Breakdown[i] = FactorOutput{Title: f.Title, Reasoning: f.Reasoning}
	}
	return out
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if strings.TrimSpace(input.Question) == "" {
		return nil, AskOutput{}, errors.New("question is required")
	}

	resp, err := s.ports.Account.Ask(ctx, input.Question, nil)
	if err != nil {
		return nil, AskOutput{}, toolError(err)
	}

	output := AskOutput{
		Answer:  resp.Answer,
		Sources: make([]SourceOutput, len(resp.Sources)),
	}
	for i, src := range resp.Sources {
		output.Sources[i] = SourceOutput{URI: src.URI, Title: src.Title}
	}
	return nil, output, nil
}

func (s *Server) handleQuizScore(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input QuizInput,
) (*mcp.CallToolResult, QuizOutput, error) {
	result, err := s.ports.Quiz.ScoreQuiz(input.Answers)
	if err != nil {
		return nil, QuizOutput{}, err
	}
	return nil, QuizOutput{
		Score:   result.Score,
		Risk:    result.Risk.String(),
		Message: result.Message,
	}, nil
}

func (s *Server) handleAccountStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ AccountStatusInput,
) (*mcp.CallToolResult, AccountStatusOutput, error) {
	profile, err := s.ports.Account.Current(ctx)
	if errors.Is(err, domain.ErrNotLoggedIn) {
		return nil, AccountStatusOutput{}, nil
	}
	if err != nil {
		return nil, AccountStatusOutput{}, err
	}
	return nil, AccountStatusOutput{
		LoggedIn:  true,
		Email:     profile.Email,
		Tier:      profile.Tier.String(),
		AIQueries: profile.AvailableAIQueries,
		DocSlots:  profile.PurchasedDocSlots,
	}, nil
}
