package driving

import (
	"context"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// IngestService ingests report documents.
type IngestService interface {
	// Ingest reads a report, extracts its metrics and adds its passages to the corpus.
	// An empty period defaults to the file name without extension.
	Ingest(ctx context.Context, path, period string) (*domain.IngestResult, error)

	// Supports reports whether a file type can be ingested.
	Supports(path string) bool
}
