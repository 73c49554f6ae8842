// Package records provides the metric records browser for the TUI.
package records

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/components/list"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/components/status"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/keymap"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/messages"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/styles"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
)

// ErrNoRecordService indicates that no record service was provided.
var ErrNoRecordService = errors.New("record service is required")

// View browses extracted records one period at a time.
type View struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	list          *list.RecordList
	statusbar     *status.Bar
	recordService driving.RecordService
	ctx           context.Context

	periods []string
	current int
	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

// NewView creates a new records view.
func NewView(s *styles.Styles, km *keymap.KeyMap, recordService driving.RecordService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:        s,
		keymap:        km,
		list:          list.NewRecordList(s),
		statusbar:     status.NewBar(s, km),
		recordService: recordService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the available periods.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadPeriods()
}

func (v *View) loadPeriods() tea.Cmd {
	return func() tea.Msg {
		if v.recordService == nil {
			return messages.PeriodsLoaded{Err: ErrNoRecordService}
		}
		periods, err := v.recordService.Periods(v.ctx)
		return messages.PeriodsLoaded{Periods: periods, Err: err}
	}
}

func (v *View) loadRecords(period string) tea.Cmd {
	return func() tea.Msg {
		if v.recordService == nil {
			return messages.RecordsLoaded{Period: period, Err: ErrNoRecordService}
		}
		recs, err := v.recordService.List(v.ctx, period)
		return messages.RecordsLoaded{Period: period, Records: recs, Err: err}
	}
}

// Update handles messages for the records view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.PeriodsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.periods = msg.Periods
		v.current = 0
		if len(v.periods) == 0 {
			v.list.SetRecords("", nil)
			v.statusbar.SetState(status.StateRecords)
			v.statusbar.SetCount(0)
			return v, nil
		}
		v.loading = true
		return v, v.loadRecords(v.periods[0])

	case messages.RecordsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.list.SetRecords(msg.Period, msg.Records)
		v.statusbar.SetState(status.StateRecords)
		v.statusbar.SetCount(len(msg.Records))
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(keyStr, v.keymap.NextPeriod):
		return v, v.switchPeriod(1)
	case keymap.Matches(keyStr, v.keymap.PrevPeriod):
		return v, v.switchPeriod(-1)
	case keyStr == "r":
		v.loading = true
		return v, v.loadPeriods()
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// switchPeriod moves to a neighbouring period, staying put at either end.
func (v *View) switchPeriod(delta int) tea.Cmd {
	next := v.current + delta
	if next < 0 || next >= len(v.periods) {
		return nil
	}
	v.current = next
	v.loading = true
	return v.loadRecords(v.periods[next])
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the records view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Extracted Records"))
	b.WriteString("\n")
	b.WriteString(v.renderPeriods())
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// renderPeriods renders the period tabs with the current one highlighted.
func (v *View) renderPeriods() string {
	if len(v.periods) == 0 {
		return v.styles.Muted.Render("No periods")
	}
	tabs := make([]string, 0, len(v.periods))
	for i, p := range v.periods {
		if i == v.current {
			tabs = append(tabs, v.styles.Selected.Render(" "+p+" "))
		} else {
			tabs = append(tabs, v.styles.Muted.Render(" "+p+" "))
		}
	}
	return strings.Join(tabs, " ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-7)
	v.statusbar.SetWidth(width)
}

// Periods returns the loaded periods.
func (v *View) Periods() []string {
	return v.periods
}

// CurrentPeriod returns the period being shown, or "".
func (v *View) CurrentPeriod() string {
	if len(v.periods) == 0 {
		return ""
	}
	return v.periods[v.current]
}

// RecordCount returns the number of records shown.
func (v *View) RecordCount() int {
	return v.list.Count()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
