// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// AskRequested is a command to answer a question.
type AskRequested struct {
	Question string
}

// AnswerReady carries an answer back to the model.
type AnswerReady struct {
	Answer *domain.Answer
	Err    error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAsk is the question input and answer view.
	ViewAsk
	// ViewRecords browses extracted metric records by period.
	ViewRecords
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAsk:
		return "ask"
	case ViewRecords:
		return "records"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// PeriodsLoaded carries the reporting periods that have records.
type PeriodsLoaded struct {
	Periods []string
	Err     error
}

// RecordsLoaded carries the metric records of one period.
type RecordsLoaded struct {
	Period  string
	Records []domain.ExtractedMetricRecord
	Err     error
}

// CorpusLoaded carries corpus statistics for display.
type CorpusLoaded struct {
	Stats domain.CorpusStats
}
