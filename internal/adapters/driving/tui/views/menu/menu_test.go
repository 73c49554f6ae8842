package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/messages"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/styles"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.items, 4)
	assert.Equal(t, 0, view.selected)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
	assert.Nil(t, view.Init())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Update_Navigate(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	j := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	view.Update(j)
	view.Update(j)
	view.Update(j)
	assert.Equal(t, 3, view.Selected(), "stops at the last item")

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, view.Selected())

	k := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	view.Update(k)
	view.Update(k)
	view.Update(k)
	assert.Equal(t, 0, view.Selected(), "stops at the first item")
}

func TestView_Update_EnterChangesView(t *testing.T) {
	tests := []struct {
		selected int
		want     messages.ViewType
	}{
		{0, messages.ViewAsk},
		{1, messages.ViewRecords},
		{2, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			view := NewView(nil)
			view.selected = tt.selected

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)

			changed, ok := cmd().(messages.ViewChanged)
			require.True(t, ok)
			assert.Equal(t, tt.want, changed.View)
		})
	}
}

func TestView_Update_Quit(t *testing.T) {
	view := NewView(nil)
	view.selected = 3

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, cmd = NewView(nil).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
}

func TestView_View(t *testing.T) {
	view := NewView(nil)
	assert.Contains(t, view.View(), "Initialising")

	view.SetDimensions(80, 24)
	output := view.View()

	assert.Contains(t, output, "finrag")
	assert.Contains(t, output, "Financial Report Q&A")
	assert.Contains(t, output, "Ask a Question")
	assert.Contains(t, output, "Browse Records")
	assert.Contains(t, output, "Quit")
	assert.Contains(t, output, "> ")
}

func TestMenuItem_Properties(t *testing.T) {
	view := NewView(nil)

	assert.Equal(t, messages.ViewAsk, view.items[0].View)
	assert.Equal(t, messages.ViewRecords, view.items[1].View)
	assert.Equal(t, messages.ViewHelp, view.items[2].View)
	assert.Equal(t, "Quit", view.items[3].Label)
	assert.True(t, view.items[3].Quit)
	assert.False(t, view.items[0].Quit)
}

func TestView_Update_DigitJumps(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewRecords, changed.View)
	assert.Equal(t, 1, view.Selected())

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
	assert.Nil(t, cmd, "out of range digits are ignored")
	assert.Equal(t, 1, view.Selected())
}

func TestView_CorpusSummary(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)
	assert.Contains(t, view.View(), "Corpus: loading...")

	view.Update(messages.CorpusLoaded{})
	assert.Contains(t, view.View(), "Corpus: empty")

	view.Update(messages.CorpusLoaded{Stats: domain.CorpusStats{
		Passages: 12,
		Periods:  []string{"Q1FY24", "Q2FY24"},
		Model:    "hashing-384",
	}})
	assert.Contains(t, view.View(), "12 passages across 2 periods (hashing-384)")
}
