package cli

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft-cli/internal/core/services"
)

// MockAccountService implements driving.AccountService for CLI tests.
type MockAccountService struct {
	Profile   *domain.UserProfile
	Docs      []domain.SavedDocument
	Generated *domain.GeneratedDocument
	Chunks    []string
	Sources   []domain.GroundingSource
	Err       error

	LastInput     driving.GenerateInput
	LastSubscribe bool
	LastExisting  string
	Saves         int
	Purchased     string
}

var _ driving.AccountService = (*MockAccountService)(nil)

func (m *MockAccountService) Login(_ context.Context, email string, subscribe bool) (*domain.UserProfile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.LastSubscribe = subscribe
	m.Profile = &domain.UserProfile{Email: email, Tier: domain.TierFree, AvailableAIQueries: 3, PurchasedDocSlots: 1}
	return m.Profile, nil
}

func (m *MockAccountService) Logout(_ context.Context) error {
	m.Profile = nil
	return nil
}

func (m *MockAccountService) Current(_ context.Context) (*domain.UserProfile, error) {
	if m.Profile == nil {
		return nil, domain.ErrNotLoggedIn
	}
	return m.Profile, nil
}

func (m *MockAccountService) Generate(_ context.Context, in driving.GenerateInput) (*domain.GeneratedDocument, error) {
	m.LastInput = in
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Generated, nil
}

func (m *MockAccountService) SaveDocument(
	_ context.Context, doc domain.GeneratedDocument, existingID string,
) (*domain.SavedDocument, error) {
	m.Saves++
	m.LastExisting = existingID
	id := existingID
	if id == "" {
		id = "doc-new"
	}
	return &domain.SavedDocument{
		ID: id, TemplateID: doc.TemplateID, Title: "Privacy Policy", Body: doc.Body,
		Version: domain.InitialVersion, State: domain.DocumentStateDraft,
	}, nil
}

func (m *MockAccountService) ListDocuments(_ context.Context) ([]domain.SavedDocument, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Docs, nil
}

func (m *MockAccountService) GetDocument(_ context.Context, id string) (*domain.SavedDocument, error) {
	for i := range m.Docs {
		if m.Docs[i].ID == id {
			return &m.Docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockAccountService) Download(ctx context.Context, id string) (*driving.DownloadResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	doc, err := m.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return &driving.DownloadResult{Document: *doc, Location: "/tmp/" + doc.FileName() + ".md"}, nil
}

func (m *MockAccountService) Ask(
	_ context.Context, _ string, onChunk driving.ChunkHandler,
) (*domain.AssistantResponse, error) {
	for _, c := range m.Chunks {
		onChunk(c)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.AssistantResponse{Answer: strings.Join(m.Chunks, ""), Sources: m.Sources}, nil
}

func (m *MockAccountService) Purchase(_ context.Context, productID string) (*domain.UserProfile, error) {
	m.Purchased = productID
	if m.Err != nil {
		return nil, m.Err
	}
	m.Profile.Tier = domain.TierPro
	return m.Profile, nil
}

// MockActions records desktop actions.
type MockActions struct {
	Copied *domain.SavedDocument
	Opened string
	Err    error
}

func (m *MockActions) CopyToClipboard(doc *domain.SavedDocument) error {
	m.Copied = doc
	return m.Err
}

func (m *MockActions) Open(location string) error {
	m.Opened = location
	return m.Err
}

// MockPrompts is an in-memory PromptFiles.
type MockPrompts struct {
	ResetNames []string
}

func (m *MockPrompts) Names() []string { return []string{"assistant_system", "document_system"} }

func (m *MockPrompts) Path(name string) string { return "/home/u/.lexdraft/prompts/" + name + ".txt" }

func (m *MockPrompts) Reset(name string) error {
	m.ResetNames = append(m.ResetNames, name)
	return nil
}

type testServices struct {
	account  *MockAccountService
	actions  *MockActions
	prompts  *MockPrompts
	settings *services.SettingsService
}

// setupTestServices installs mocks and returns a cleanup function.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		account: &MockAccountService{
			Profile: &domain.UserProfile{
				Email: "owner@acme.com.au", Tier: domain.TierFree, AvailableAIQueries: 2, PurchasedDocSlots: 1,
			},
		},
		actions:  &MockActions{},
		prompts:  &MockPrompts{},
		settings: services.NewSettingsService(memory.NewConfigStore()),
	}
	SetServices(Services{
		Account:  ts.account,
		Quiz:     services.NewQuizService(domain.DefaultRiskPolicy()),
		Settings: ts.settings,
		Actions:  ts.actions,
		Prompts:  ts.prompts,
	})
	return ts, func() {
		SetServices(Services{})
		resetFlags(rootCmd)
	}
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	return executeWithInput("", args...)
}

func executeWithInput(input string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
