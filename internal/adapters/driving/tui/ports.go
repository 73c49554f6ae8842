// Package tui provides an interactive terminal user interface for finrag.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Query answers questions. Required.
	Query driving.QueryService

	// Records lists extracted metric records.
	Records driving.RecordService

	// Corpus reports corpus statistics.
	Corpus driving.CorpusService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	query driving.QueryService,
	records driving.RecordService,
	corpus driving.CorpusService,
) *Ports {
	return &Ports{
		Query:   query,
		Records: records,
		Corpus:  corpus,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Records == nil {
		return ErrMissingRecordService
	}
	return nil
}
