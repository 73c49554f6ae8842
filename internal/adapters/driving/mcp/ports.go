package mcp

import (
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions.
	Query driving.QueryService

	// Catalog manages metric definitions.
	Catalog driving.CatalogService

	// Ingest reads report files.
	Ingest driving.IngestService

	// Records lists extracted metrics.
	Records driving.RecordService

	// Corpus reports on the passage corpus.
	Corpus driving.CorpusService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// The remaining ports are optional; their tools report ErrUnavailable.
	return nil
}
