// Package preview shows a laid-out document page by page in the terminal.
package preview

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/application-tailor/internal/layout"
	"github.com/jonathan/application-tailor/internal/locale"
	"github.com/jonathan/application-tailor/internal/rendering"
)

const (
	minColumns = 40
	maxColumns = 110
	// reservedLines holds the title, separator and footer.
	reservedLines = 5
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1F3A5F"))
	pageStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#45475A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// Model is the bubbletea model of the page navigator.
type Model struct {
	doc   *layout.Document
	title string
	keys  KeyMap

	page   int
	offset int
	width  int
	height int
	lines  []string
}

// New creates a navigator positioned on the first page of doc.
func New(doc *layout.Document, title string) *Model {
	m := &Model{
		doc:    doc,
		title:  title,
		keys:   DefaultKeyMap(),
		page:   1,
		width:  80,
		height: 40,
	}
	m.renderPage()
	return m
}

// Page returns the 1-based page currently shown.
func (m *Model) Page() int {
	return m.page
}

// PageCount returns the number of pages of the document.
func (m *Model) PageCount() int {
	if m.doc == nil {
		return 0
	}
	return m.doc.PageCount()
}

// Init initialises the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and terminal resizes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderPage()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.goTo(m.page + 1)
		case key.Matches(msg, m.keys.Prev):
			m.goTo(m.page - 1)
		case key.Matches(msg, m.keys.First):
			m.goTo(1)
		case key.Matches(msg, m.keys.Last):
			m.goTo(m.PageCount())
		case key.Matches(msg, m.keys.Up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, m.keys.Down):
			if m.offset < m.maxOffset() {
				m.offset++
			}
		}
	}
	return m, nil
}

// goTo switches to page n when it exists.
func (m *Model) goTo(n int) {
	if n < 1 || n > m.PageCount() || n == m.page {
		return
	}
	m.page = n
	m.offset = 0
	m.renderPage()
}

func (m *Model) columns() int {
	return min(max(m.width-4, minColumns), maxColumns)
}

func (m *Model) visibleLines() int {
	return max(m.height-reservedLines-2, 1)
}

func (m *Model) maxOffset() int {
	return max(len(m.lines)-m.visibleLines(), 0)
}

func (m *Model) renderPage() {
	m.lines = rendering.RenderText(m.doc, m.page, m.columns())
	m.offset = min(m.offset, m.maxOffset())
}

// View renders the current page.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	if m.PageCount() == 0 {
		b.WriteString(footerStyle.Render("(empty document)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.visibleLines(), len(m.lines))
	body := make([]string, 0, end-m.offset)
	for _, line := range m.lines[m.offset:end] {
		body = append(body, fmt.Sprintf("%-*s", m.columns(), line))
	}
	b.WriteString(pageStyle.Render(strings.Join(body, "\n")))
	b.WriteString("\n")

	b.WriteString(footerStyle.Render(m.footer()))
	return b.String()
}

func (m *Model) footer() string {
	parts := []string{locale.Message(m.doc.Locale, locale.LabelPage, m.page, m.PageCount())}
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}

// Run shows doc until the user quits. in and out default to the terminal when nil.
func Run(ctx context.Context, doc *layout.Document, title string, in io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	} else {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(New(doc, title), opts...).Run(); err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	return nil
}
