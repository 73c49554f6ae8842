// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/tui/styles"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// RecordList displays extracted metric records in a navigable list.
type RecordList struct {
	period   string
	records  []domain.ExtractedMetricRecord
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRecordList creates a new record list component.
func NewRecordList(s *styles.Styles) *RecordList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RecordList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the record list.
func (r *RecordList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *RecordList) Update(msg tea.Msg) (*RecordList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the record list.
func (r *RecordList) View() string {
	if len(r.records) == 0 {
		if r.period == "" {
			return r.styles.Muted.Render("No records. Ingest a report first.")
		}
		return r.styles.Muted.Render(fmt.Sprintf("No records for %s", r.period))
	}

	lines := make([]string, 0, len(r.records)+2)
	header := r.styles.Subheading.Render(fmt.Sprintf("%s (%d)", r.period, len(r.records)))
	lines = append(lines, header, "")

	// one line per record, header takes two
	visible := r.height - 2
	if visible < 1 {
		visible = 1
	}

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.records) {
		end = len(r.records)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderRecord(i, &r.records[i]))
	}

	return strings.Join(lines, "\n")
}

// renderRecord formats one record as name, value with unit, category and page.
func (r *RecordList) renderRecord(index int, rec *domain.ExtractedMetricRecord) string {
	nameWidth := r.width - 40
	if nameWidth < 12 {
		nameWidth = 12
	}
	name := rec.MetricName
	if len(name) > nameWidth {
		name = name[:nameWidth-3] + "..."
	}

	value := domain.FormatValue(rec.Value) + " " + rec.Unit
	meta := fmt.Sprintf("%-10s p.%d", rec.Category, rec.SourcePage)

	if index == r.selected {
		return r.styles.Selected.Render(fmt.Sprintf("> %-*s %14s  %s", nameWidth, name, value, meta))
	}
	return r.styles.Normal.Render(fmt.Sprintf("  %-*s ", nameWidth, name)) +
		r.styles.Value.Render(fmt.Sprintf("%14s", value)) + "  " +
		r.styles.Source.Render(meta)
}

// SetRecords replaces the list contents and resets the selection.
func (r *RecordList) SetRecords(period string, records []domain.ExtractedMetricRecord) {
	r.period = period
	r.records = records
	r.selected = 0
}

// Period returns the period currently shown.
func (r *RecordList) Period() string {
	return r.period
}

// Records returns the current records.
func (r *RecordList) Records() []domain.ExtractedMetricRecord {
	return r.records
}

// Selected returns the index of the selected record.
func (r *RecordList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RecordList) SetSelected(index int) {
	if index >= 0 && index < len(r.records) {
		r.selected = index
	}
}

// SelectedRecord returns the currently selected record, or nil if none.
func (r *RecordList) SelectedRecord() *domain.ExtractedMetricRecord {
	if len(r.records) == 0 || r.selected < 0 || r.selected >= len(r.records) {
		return nil
	}
	return &r.records[r.selected]
}

// MoveUp moves selection up.
func (r *RecordList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *RecordList) MoveDown() {
	if r.selected < len(r.records)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *RecordList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of records.
func (r *RecordList) Count() int {
	return len(r.records)
}

// IsEmpty returns whether the list is empty.
func (r *RecordList) IsEmpty() bool {
	return len(r.records) == 0
}
