package services

import (
	"context"
	"fmt"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService lists extracted metric records.
type RecordService struct {
	store driven.RecordStore
}

// NewRecordService creates a new record service.
func NewRecordService(store driven.RecordStore) *RecordService {
	return &RecordService{store: store}
}

// List returns records for a period, or all records when period is empty.
func (s *RecordService) List(ctx context.Context, period string) ([]domain.ExtractedMetricRecord, error) {
	records, err := s.store.List(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Periods returns the distinct reporting periods.
func (s *RecordService) Periods(ctx context.Context) ([]string, error) {
	periods, err := s.store.Periods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return periods, nil
}
