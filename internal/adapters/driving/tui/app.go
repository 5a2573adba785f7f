package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/views/doccontent"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/views/quiz"
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView       *menu.View
	quizView       *quiz.View
	documentsView  *documents.View
	docContentView *doccontent.View
	statusBar      *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// profile is the logged-in account, nil when anonymous.
	profile *domain.UserProfile

	// lastResult is the most recent completed quiz.
	lastResult *domain.QuizResult

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		help:           help.New(),
		menuView:       menu.NewView(s, ports.Account != nil),
		quizView:       quiz.NewView(s, ports.Quiz),
		documentsView:  documents.NewView(s, ports.Account),
		docContentView: doccontent.NewView(s, ports.Actions),
		statusBar:      status.NewBar(s, km),
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// OpenQuiz makes the app start on the health check instead of the menu.
func (a *App) OpenQuiz() *App {
	a.switchTo(messages.ViewQuiz)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("lexdraft - Legal health check"),
		a.loadProfile(),
	)
}

// loadProfile fetches the current account for the status bar.
func (a *App) loadProfile() tea.Cmd {
	account := a.ports.Account
	if account == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		p, err := account.Current(ctx)
		if errors.Is(err, domain.ErrNotLoggedIn) {
			return messages.ProfileLoaded{}
		}
		return messages.ProfileLoaded{Profile: p, Err: err}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ProfileLoaded:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.profile = msg.Profile
		a.statusBar.SetProfile(msg.Profile)
		return a, nil

	case messages.QuizCompleted:
		result := msg.Result
		a.lastResult = &result
		a.statusBar.SetState(status.StateNotice)
		a.statusBar.SetMessage(fmt.Sprintf("Health check: %s risk (score %d)", result.Risk, result.Score))
		return a, nil

	case messages.DocumentsLoaded:
		a.documentsView, cmd = a.documentsView.Update(msg)
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.statusBar.Clear()
		}
		return a, cmd

	case messages.DocumentSelected:
		a.docContentView.SetDocument(msg.Document)
		a.currentView = messages.ViewDocContent
		a.statusBar.Clear()
		a.statusBar.SetBindings(a.keymap.ContentHelp())
		return a, nil

	case messages.DocumentCopied:
		a.docContentView, cmd = a.docContentView.Update(msg)
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.statusBar.SetState(status.StateNotice)
			a.statusBar.SetMessage("Copied to clipboard")
		}
		return a, cmd

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		switch a.currentView {
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewDocContent:
			a.docContentView, cmd = a.docContentView.Update(msg)
		case messages.ViewMenu, messages.ViewQuiz, messages.ViewHelp:
			// Shown in the status bar only
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		if msg.String() == "?" {
			return a, a.switchTo(messages.ViewHelp)
		}
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewQuiz:
		a.quizView, cmd = a.quizView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
		if a.documentsView.IsLoading() {
			a.statusBar.SetState(status.StateLoading)
		}
	case messages.ViewDocContent:
		a.docContentView, cmd = a.docContentView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			return a, a.switchTo(messages.ViewMenu)
		}
	}
	return a, cmd
}

// switchTo activates view and returns any command needed to populate it.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.err = nil
	a.statusBar.Clear()

	switch view {
	case messages.ViewQuiz:
		a.quizView.Start()
		a.statusBar.SetBindings(a.keymap.QuizHelp())
		return nil
	case messages.ViewDocuments:
		a.statusBar.SetBindings(nil)
		a.statusBar.SetState(status.StateLoading)
		return a.documentsView.Load()
	case messages.ViewDocContent:
		a.statusBar.SetBindings(a.keymap.ContentHelp())
		return nil
	case messages.ViewMenu:
		a.statusBar.SetBindings(nil)
		return a.loadProfile()
	case messages.ViewHelp:
		a.statusBar.SetBindings(nil)
	}
	return nil
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewQuiz:
		body = a.quizView.View()
	case messages.ViewDocuments:
		body = a.documentsView.View()
	case messages.ViewDocContent:
		body = a.docContentView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	return body + "\n\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("Run `lexdraft --help` for generation, documents and account commands."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Profile returns the logged-in profile, if loaded.
func (a *App) Profile() *domain.UserProfile {
	return a.profile
}

// LastResult returns the most recent quiz result.
func (a *App) LastResult() *domain.QuizResult {
	return a.lastResult
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// Status bar line
	viewHeight := max(height-2, 1)
	a.menuView.SetDimensions(width, viewHeight)
	a.quizView.SetDimensions(width, viewHeight)
	a.documentsView.SetDimensions(width, viewHeight)
	a.docContentView.SetDimensions(width, viewHeight)
	a.statusBar.SetWidth(width)
	a.help.Width = width
}
