// Package quiz provides the legal health check view for the TUI.
package quiz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// View walks through one quiz run and shows its result.
type View struct {
	styles   *styles.Styles
	factory  driving.QuizFactory
	quiz     driving.Quiz
	progress progress.Model

	cursor int
	result *domain.QuizResult
	err    error
	width  int
	height int
	ready  bool
}

// NewView creates a quiz view. Call Start before showing it.
func NewView(s *styles.Styles, factory driving.QuizFactory) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40
	return &View{
		styles:   s,
		factory:  factory,
		progress: bar,
		width:    80,
		height:   24,
	}
}

// Start begins a fresh run, discarding any previous one.
func (v *View) Start() {
	v.cursor = 0
	v.result = nil
	v.err = nil
	v.quiz = nil
	if v.factory != nil {
		v.quiz = v.factory.NewQuiz()
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the quiz view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.quiz == nil {
			if msg.String() == "esc" {
				return v, backToMenu
			}
			return v, nil
		}
		if v.result != nil {
			return v.handleResultKey(msg)
		}
		return v.handleQuestionKey(msg)
	}

	return v, nil
}

func (v *View) handleQuestionKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	options := v.currentQuestion().Options

	switch key := msg.String(); key {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(options)-1 {
			v.cursor++
		}
	case "enter", " ":
		return v.answer(v.cursor)
	case "left", "h":
		if err := v.quiz.Back(); err == nil {
			v.err = nil
			v.cursor = max(v.quiz.Answers()[v.quiz.Index()], 0)
		}
	case "esc":
		return v, backToMenu
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if option := int(key[0] - '1'); option < len(options) {
				return v.answer(option)
			}
		}
	}

	return v, nil
}

func (v *View) handleResultKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "r":
		v.Start()
	case "enter", "esc":
		return v, backToMenu
	}
	return v, nil
}

func (v *View) answer(option int) (*View, tea.Cmd) {
	done, err := v.quiz.Answer(option)
	if err != nil {
		v.err = err
		return v, nil
	}
	v.err = nil
	if !done {
		v.cursor = max(v.quiz.Answers()[v.quiz.Index()], 0)
		return v, nil
	}

	result, err := v.quiz.Result()
	if err != nil {
		v.err = err
		return v, nil
	}
	v.result = &result
	return v, func() tea.Msg {
		return messages.QuizCompleted{Result: result}
	}
}

func backToMenu() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

func (v *View) currentQuestion() domain.QuizQuestion {
	return v.quiz.Questions()[v.quiz.Index()]
}

// View renders the current question or the result.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Legal health check"))
	b.WriteString("\n\n")

	if v.quiz == nil {
		b.WriteString(v.styles.Error.Render("Quiz not available"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	if v.result != nil {
		b.WriteString(v.renderResult())
		return b.String()
	}

	total := len(v.quiz.Questions())
	index := v.quiz.Index()
	b.WriteString(v.progress.ViewAs(float64(index) / float64(total)))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Question %d of %d", index+1, total)))
	b.WriteString("\n\n")

	q := v.currentQuestion()
	b.WriteString(v.styles.Subtitle.Render(q.Question))
	b.WriteString("\n\n")

	for i, opt := range q.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		if i == v.cursor {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] choose  [1-9/enter] answer  [←/h] previous  [esc] menu"))

	return b.String()
}

func (v *View) renderResult() string {
	r := v.result

	var card strings.Builder
	card.WriteString(v.progress.ViewAs(1))
	card.WriteString("\n\n")
	card.WriteString("Risk level: ")
	card.WriteString(v.styles.Risk(r.Risk).Render(r.Risk.String()))
	card.WriteString(v.styles.Muted.Render(fmt.Sprintf("  (score %d)", r.Score)))
	card.WriteString("\n\n")
	card.WriteString(v.styles.Normal.Render(r.Message))

	width := max(min(v.width-4, 72), 20)
	return v.styles.Card.Width(width).Render(card.String()) + "\n\n" +
		v.styles.Help.Render("[r] retake  [enter/esc] menu")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.progress.Width = max(min(width-24, 60), 10)
}

// Result returns the result once the run is complete.
func (v *View) Result() *domain.QuizResult {
	return v.result
}

// Cursor returns the highlighted option.
func (v *View) Cursor() int {
	return v.cursor
}

// Quiz returns the run in progress.
func (v *View) Quiz() driving.Quiz {
	return v.quiz
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
