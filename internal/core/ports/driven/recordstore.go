package driven

import (
	"context"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// RecordStore persists extracted metric records.
type RecordStore interface {
	// ReplacePeriod atomically deletes every record of the period and inserts records.
	// Inserted records have their IDs set.
	ReplacePeriod(ctx context.Context, period string, records []domain.ExtractedMetricRecord) error

	// ListByMetric returns the records of one metric ordered by year, then period.
	ListByMetric(ctx context.Context, metricName string) ([]domain.ExtractedMetricRecord, error)

	// ListByCategory returns the records of a category for one period, ordered by ID.
	ListByCategory(ctx context.Context, period, category string) ([]domain.ExtractedMetricRecord, error)

	// List returns records for a period, or every record when period is empty.
	List(ctx context.Context, period string) ([]domain.ExtractedMetricRecord, error)

	// Periods returns the distinct periods in ascending order.
	Periods(ctx context.Context) ([]string, error)
}
