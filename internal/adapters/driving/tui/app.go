package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/keymap"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/messages"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/styles"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/views/ask"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/views/menu"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/views/records"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// askView is the question and answer view.
	askView *ask.View

	// recordsView browses extracted records.
	recordsView *records.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
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
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		askView:     ask.NewView(s, km, ports.Query),
		recordsView: records.NewView(s, km, ports.Records),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.askView.WithContext(ctx)
	a.recordsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("finrag - Financial Report Q&A"),
		a.loadCorpusStats(),
	)
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

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewAsk:
			a.askView, cmd = a.askView.Update(msg)
			a.err = a.askView.Err()
		case messages.ViewRecords:
			a.recordsView, cmd = a.recordsView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewAsk:
			a.askView.Reset()
			return a, tea.Batch(a.askView.Init(), a.loadCorpusStats())
		case messages.ViewRecords:
			return a, a.recordsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.AnswerReady:
		a.askView, cmd = a.askView.Update(msg)
		a.err = a.askView.Err()
		return a, cmd

	case messages.CorpusLoaded:
		a.menuView, _ = a.menuView.Update(msg)
		a.askView, cmd = a.askView.Update(msg)
		return a, cmd

	case messages.PeriodsLoaded, messages.RecordsLoaded:
		a.recordsView, cmd = a.recordsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewAsk {
			a.askView, cmd = a.askView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// cursor blink and other ticks
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
	case messages.ViewRecords:
		a.recordsView, cmd = a.recordsView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// loadCorpusStats returns a command that reads corpus statistics when available.
func (a *App) loadCorpusStats() tea.Cmd {
	if a.ports.Corpus == nil {
		return nil
	}
	return func() tea.Msg {
		return messages.CorpusLoaded{Stats: a.ports.Corpus.Stats(a.ctx)}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewAsk:
		return a.askView.View()
	case messages.ViewRecords:
		return a.recordsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
		return a.menuView.View()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Ask:
  (type)      Enter a question
  enter       Ask
  ↑/↓, j/k    Scroll the answer
  n           New question

Records:
  ←/→, h/l    Previous / next period
  ↑/↓, j/k    Move through records
  r           Reload

Questions the resolver understands directly:
  net profit trend, revenue trend, how has the margin evolved,
  ebitda margin decrease, expense breakdown, international revenue.
Anything else is answered from the report text.

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Answer returns the answer currently displayed, or nil.
func (a *App) Answer() *domain.Answer {
	return a.askView.Answer()
}

// Question returns the text in the ask input.
func (a *App) Question() string {
	return a.askView.Question()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.askView.SetDimensions(width, height)
	a.recordsView.SetDimensions(width, height)
}
