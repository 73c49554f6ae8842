// Package answer renders query answers in a scrollable panel.
package answer

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/styles"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// Panel shows one answer with light markdown styling.
type Panel struct {
	viewport viewport.Model
	styles   *styles.Styles
	answer   *domain.Answer
}

// NewPanel creates an empty answer panel.
func NewPanel(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Panel{
		viewport: viewport.New(80, 10),
		styles:   s,
	}
}

// Init initialises the panel.
func (p *Panel) Init() tea.Cmd {
	return nil
}

// Update forwards scrolling keys to the viewport.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the panel.
func (p *Panel) View() string {
	if p.answer == nil {
		return p.styles.Muted.Render("Ask about revenue, profit, margins or expenses.")
	}
	return p.viewport.View()
}

// SetAnswer replaces the displayed answer and scrolls to the top.
func (p *Panel) SetAnswer(a *domain.Answer) {
	p.answer = a
	if a == nil {
		p.viewport.SetContent("")
		return
	}
	p.viewport.SetContent(p.render(a.Text))
	p.viewport.GotoTop()
}

// Answer returns the displayed answer, or nil.
func (p *Panel) Answer() *domain.Answer {
	return p.answer
}

// Clear removes the displayed answer.
func (p *Panel) Clear() {
	p.SetAnswer(nil)
}

// SetDimensions sets the visible area.
func (p *Panel) SetDimensions(width, height int) {
	if height < 1 {
		height = 1
	}
	p.viewport.Width = width
	p.viewport.Height = height
	if p.answer != nil {
		p.viewport.SetContent(p.render(p.answer.Text))
	}
}

// render styles headings and source citations line by line.
func (p *Panel) render(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "## "):
			out = append(out, p.styles.Subheading.Render(strings.TrimPrefix(line, "## ")))
		case strings.HasPrefix(line, "# "):
			out = append(out, p.styles.Heading.Render(strings.TrimPrefix(line, "# ")))
		case strings.HasPrefix(line, "**Source**"), strings.HasPrefix(line, "**From "):
			out = append(out, p.styles.Source.Render(strings.ReplaceAll(line, "**", "")))
		default:
			out = append(out, p.styles.Normal.Width(p.viewport.Width).Render(line))
		}
	}
	return strings.Join(out, "\n")
}
