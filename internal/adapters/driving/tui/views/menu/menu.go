// Package menu provides the landing view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/messages"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/styles"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// Item is one entry of the menu.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// View lists the screens of the app above a one-line corpus summary.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	corpus   *domain.CorpusStats
	width    int
	height   int
	ready    bool
}

// NewView creates the menu with the first entry selected.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Ask a Question", Hint: "trends, margins, expenses", View: messages.ViewAsk},
			{Label: "Browse Records", Hint: "extracted metrics by period", View: messages.ViewRecords},
			{Label: "Help", Hint: "keys and example questions", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init implements the view lifecycle; the menu loads nothing itself.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and corpus summaries.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CorpusLoaded:
		stats := msg.Stats
		v.corpus = &stats
		return v, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil
		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil
		case "enter":
			return v, v.choose(v.selected)
		case "q":
			return v, tea.Quit
		}

		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(v.items) {
			v.selected = int(key[0] - '1')
			return v, v.choose(v.selected)
		}
	}

	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("finrag"))
	b.WriteString("\n")
	b.WriteString(muted.Render("Financial Report Q&A"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		label := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		if i == v.selected {
			cursor = "> "
			label = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
		}

		line := fmt.Sprintf("%s%d. %s", cursor, i+1, label.Render(item.Label))
		if item.Hint != "" {
			line += "  " + muted.Render(item.Hint)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(muted.Render(v.summary()))
	b.WriteString("\n\n")
	b.WriteString(muted.Render("[j/k] Navigate  [1-4] Jump  [Enter] Select  [q] Quit"))

	return b.String()
}

func (v *View) summary() string {
	switch {
	case v.corpus == nil:
		return "Corpus: loading..."
	case v.corpus.Passages == 0:
		return "Corpus: empty. Run `finrag ingest <report>` first."
	default:
		return fmt.Sprintf("Corpus: %d passages across %d periods (%s)",
			v.corpus.Passages, len(v.corpus.Periods), v.corpus.Model)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
