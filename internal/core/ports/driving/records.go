package driving

import (
	"context"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// RecordService lists extracted metric records.
type RecordService interface {
	// List returns records for a period, or all records when period is empty.
	List(ctx context.Context, period string) ([]domain.ExtractedMetricRecord, error)

	// Periods returns the distinct reporting periods.
	Periods(ctx context.Context) ([]string, error)
}

// CorpusService inspects and manages the passage corpus.
type CorpusService interface {
	// Stats summarises the corpus.
	Stats(ctx context.Context) domain.CorpusStats

	// Reset empties the corpus.
	Reset(ctx context.Context) error
}
