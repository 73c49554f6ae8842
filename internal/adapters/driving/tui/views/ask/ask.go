// Package ask provides the question and answer view for the TUI.
package ask

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/components/answer"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/components/input"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/components/status"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/keymap"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/messages"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/styles"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
)

// View is the ask view with question input, answer panel and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	panel     *answer.Panel
	statusbar *status.Bar

	queryService driving.QueryService
	ctx          context.Context

	history []string
	width   int
	height  int
	ready   bool
	err     error
	// focusInput is true while typing and false while reading an answer.
	focusInput bool
}

// NewView creates a new ask view.
func NewView(s *styles.Styles, km *keymap.KeyMap, queryService driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		input:        input.NewQuestionInput(s),
		panel:        answer.NewPanel(s),
		statusbar:    status.NewBar(s, km),
		queryService: queryService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
		focusInput:   true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AskRequested:
		return v, v.ask(msg.Question)

	case messages.AnswerReady:
		v.handleAnswer(msg)
		return v, nil

	case messages.CorpusLoaded:
		v.statusbar.SetMessage(corpusSummary(msg.Stats))
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	} else {
		v.panel, cmd = v.panel.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			question := v.input.Value()
			if question == "" {
				return v, nil
			}
			v.focusInput = false
			v.input.Blur()
			return v, v.ask(question)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	if keymap.Matches(msg.String(), v.keymap.NewQuestion) {
		v.newQuestion()
		return v, v.input.Focus()
	}

	var cmd tea.Cmd
	v.panel, cmd = v.panel.Update(msg)
	return v, cmd
}

// ask returns a command that answers the question through the query service.
func (v *View) ask(question string) tea.Cmd {
	v.statusbar.SetState(status.StateAsking)
	v.history = append(v.history, question)
	return func() tea.Msg {
		if v.queryService == nil {
			return messages.ErrorOccurred{Err: ErrNoQueryService}
		}
		a, err := v.queryService.Ask(v.ctx, question)
		return messages.AnswerReady{Answer: a, Err: err}
	}
}

// handleAnswer shows an answer or its error.
func (v *View) handleAnswer(msg messages.AnswerReady) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	v.err = nil
	v.panel.SetAnswer(msg.Answer)
	v.statusbar.SetState(status.StateAnswered)
	v.statusbar.SetMessage(answerLabel(msg.Answer))
	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	// let the user retype after a failure
	v.focusInput = true
	v.input.Focus()
}

func (v *View) newQuestion() {
	v.focusInput = true
	v.input.SetValue("")
	v.panel.Clear()
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// answerLabel names the intent that answered, or the answer kind.
func answerLabel(a *domain.Answer) string {
	if a == nil {
		return ""
	}
	if a.Intent != "" {
		return a.Intent
	}
	return string(a.Kind)
}

func corpusSummary(stats domain.CorpusStats) string {
	if stats.Passages == 0 {
		return "Corpus empty"
	}
	return pluralise(stats.Passages, "passage") + " from " + pluralise(len(stats.Periods), "period")
}

func pluralise(n int, noun string) string {
	s := noun
	if n != 1 {
		s += "s"
	}
	return fmt.Sprintf("%d %s", n, s)
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("finrag"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.panel.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	// header, input, spacing and status
	v.panel.SetDimensions(width, height-9)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Question returns the text in the input.
func (v *View) Question() string {
	return v.input.Value()
}

// SetQuestion sets the input text.
func (v *View) SetQuestion(q string) {
	v.input.SetValue(q)
}

// Answer returns the displayed answer, or nil.
func (v *View) Answer() *domain.Answer {
	return v.panel.Answer()
}

// History returns the questions asked in this session, oldest first.
func (v *View) History() []string {
	return v.history
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to input mode with no answer.
func (v *View) Reset() {
	v.newQuestion()
	v.input.Focus()
}
