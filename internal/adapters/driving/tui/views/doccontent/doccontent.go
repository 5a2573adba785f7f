// Package doccontent provides the saved document reader for the TUI.
package doccontent

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// View shows a document's risk analysis followed by its body.
type View struct {
	styles  *styles.Styles
	actions driving.DocumentActions

	document     *domain.SavedDocument
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	notice       string
}

// NewView creates a new document content view.
func NewView(s *styles.Styles, actions driving.DocumentActions) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		actions: actions,
		width:   80,
		height:  24,
	}
}

// SetDocument replaces the document being read.
func (v *View) SetDocument(doc domain.SavedDocument) {
	v.document = &doc
	v.scrollOffset = 0
	v.err = nil
	v.notice = ""
	v.wrapContent()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the document content view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.wrapContent()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentCopied:
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
		} else {
			v.err = nil
			v.notice = "Copied to clipboard"
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "c":
		return v, v.copyDocument()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	}

	return v, nil
}

func (v *View) copyDocument() tea.Cmd {
	if v.document == nil {
		return nil
	}
	doc := *v.document
	actions := v.actions
	return func() tea.Msg {
		if actions == nil {
			return messages.DocumentCopied{DocumentID: doc.ID, Err: fmt.Errorf("clipboard not available")}
		}
		return messages.DocumentCopied{DocumentID: doc.ID, Err: actions.CopyToClipboard(&doc)}
	}
}

// Render lays out the risk analysis above the document body as plain text.
func Render(doc domain.SavedDocument) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Version %s · %s · %s\n\n", doc.Version, doc.State, doc.Jurisdiction)
	fmt.Fprintf(&b, "Risk: %s (%d/100)\n", doc.Risk.Level, doc.Risk.Score)
	if doc.Risk.Summary != "" {
		b.WriteString(doc.Risk.Summary)
		b.WriteString("\n")
	}
	for _, f := range doc.Risk.Breakdown {
		fmt.Fprintf(&b, "  - %s: %s\n", f.Title, f.Reasoning)
	}
	b.WriteString("\n")
	b.WriteString(doc.Body)

	return b.String()
}

// wrapContent wraps the rendered document to fit the view width.
func (v *View) wrapContent() {
	if v.document == nil {
		v.lines = nil
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	rawLines := strings.Split(Render(*v.document), "\n")
	v.lines = make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		runes := []rune(line)
		for len(runes) > contentWidth {
			v.lines = append(v.lines, string(runes[:contentWidth]))
			runes = runes[contentWidth:]
		}
		v.lines = append(v.lines, string(runes))
	}
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

func (v *View) visibleLines() int {
	// Title, separator, help and padding
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the document content view.
func (v *View) View() string {
	var b strings.Builder

	title := "Document"
	if v.document != nil {
		title = v.document.Title
	}
	b.WriteString(v.styles.Title.Render(title))
	if v.document != nil {
		b.WriteString("  ")
		b.WriteString(v.styles.Risk(v.document.Risk.Level).Render(v.document.Risk.Level.String()))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 0)))
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(No document selected)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderFooter())
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString("\n")
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage,
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.lines)),
			len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderFooter())

	return b.String()
}

func (v *View) renderFooter() string {
	var b strings.Builder
	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case v.notice != "":
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [c] copy  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
}

// Document returns the current document.
func (v *View) Document() *domain.SavedDocument {
	return v.document
}

// Lines returns the wrapped lines being displayed.
func (v *View) Lines() []string {
	return v.lines
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Notice returns the last success message.
func (v *View) Notice() string {
	return v.notice
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
