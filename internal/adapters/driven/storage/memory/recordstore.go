package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Records are kept in insertion (ID) order.
type RecordStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []domain.ExtractedMetricRecord
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{nextID: 1}
}

// ReplacePeriod deletes every record of the period and inserts records.
func (s *RecordStore) ReplacePeriod(_ context.Context, period string, records []domain.ExtractedMetricRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0:0]
	for _, r := range s.records {
		if r.Period != period {
			kept = append(kept, r)
		}
	}
	for i := range records {
		records[i].ID = s.nextID
		s.nextID++
		kept = append(kept, records[i])
	}
	s.records = kept
	return nil
}

// ListByMetric returns the records of one metric ordered by year, then period.
func (s *RecordStore) ListByMetric(_ context.Context, metricName string) ([]domain.ExtractedMetricRecord, error) {
	out := s.filter(func(r domain.ExtractedMetricRecord) bool { return r.MetricName == metricName })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Period < out[j].Period
	})
	return out, nil
}

// ListByCategory returns the records of a category for one period.
func (s *RecordStore) ListByCategory(_ context.Context, period, category string) ([]domain.ExtractedMetricRecord, error) {
	return s.filter(func(r domain.ExtractedMetricRecord) bool {
		return r.Period == period && r.Category == category
	}), nil
}

// List returns records for a period, or every record when period is empty.
func (s *RecordStore) List(_ context.Context, period string) ([]domain.ExtractedMetricRecord, error) {
	return s.filter(func(r domain.ExtractedMetricRecord) bool {
		return period == "" || r.Period == period
	}), nil
}

// Periods returns the distinct periods in ascending order.
func (s *RecordStore) Periods(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var periods []string
	for _, r := range s.records {
		if !seen[r.Period] {
			seen[r.Period] = true
			periods = append(periods, r.Period)
		}
	}
	sort.Strings(periods)
	return periods, nil
}

func (s *RecordStore) filter(keep func(domain.ExtractedMetricRecord) bool) []domain.ExtractedMetricRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ExtractedMetricRecord
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
