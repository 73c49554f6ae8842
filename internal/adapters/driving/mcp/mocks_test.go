package mcp

import (
	"context"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer *domain.Answer
	err    error
}

func (m *mockQueryService) Ask(_ context.Context, question string) (*domain.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.answer == nil {
		return &domain.Answer{Query: question, Kind: domain.AnswerNoData}, nil
	}
	return m.answer, nil
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	defs []domain.MetricDefinition
	err  error
}

func (m *mockCatalogService) List(_ context.Context) ([]domain.MetricDefinition, error) {
	return m.defs, m.err
}

func (m *mockCatalogService) Get(_ context.Context, _ int64) (*domain.MetricDefinition, error) {
	return nil, m.err
}

func (m *mockCatalogService) Add(_ context.Context, name, pattern, category string) (*domain.MetricDefinition, error) {
	if m.err != nil {
		return nil, m.err
	}
	def := domain.MetricDefinition{ID: int64(len(m.defs) + 1), Name: name, Pattern: pattern, Category: category}
	m.defs = append(m.defs, def)
	return &def, nil
}

func (m *mockCatalogService) Update(_ context.Context, _ int64, _, _, _ string) (*domain.MetricDefinition, error) {
	return nil, m.err
}

func (m *mockCatalogService) Remove(_ context.Context, _ int64) error {
	return m.err
}

func (m *mockCatalogService) Bootstrap(_ context.Context) (int, error) {
	return 0, m.err
}

func (m *mockCatalogService) Import(_ context.Context, _ []domain.MetricDefinition) (*driving.ImportResult, error) {
	return &driving.ImportResult{}, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result *domain.IngestResult
	err    error
}

func (m *mockIngestService) Ingest(_ context.Context, _, _ string) (*domain.IngestResult, error) {
	return m.result, m.err
}

func (m *mockIngestService) Supports(_ string) bool { return true }

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	records []domain.ExtractedMetricRecord
	periods []string
	err     error
}

func (m *mockRecordService) List(_ context.Context, period string) ([]domain.ExtractedMetricRecord, error) {
	var out []domain.ExtractedMetricRecord
	for _, r := range m.records {
		if period == "" || r.Period == period {
			out = append(out, r)
		}
	}
	return out, m.err
}

func (m *mockRecordService) Periods(_ context.Context) ([]string, error) {
	return m.periods, m.err
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	stats domain.CorpusStats
}

func (m *mockCorpusService) Stats(_ context.Context) domain.CorpusStats { return m.stats }

func (m *mockCorpusService) Reset(_ context.Context) error { return nil }
