package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer", func(t *testing.T) {
		query := &mockQueryService{answer: &domain.Answer{
			Text:      "# EBITDA Margin Decrease\n...",
			Kind:      domain.AnswerStructured,
			Intent:    "ebitda_margin_decrease",
			FollowUps: []string{"why Q2"},
		}}
		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "Why did the EBITDA margin decrease?"})
		require.NoError(t, err)
		assert.Equal(t, "structured", output.Kind)
		assert.Equal(t, "ebitda_margin_decrease", output.Intent)
		assert.Equal(t, []string{"why Q2"}, output.FollowUps)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{err: errors.New("index offline")}})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "x"})
		assert.EqualError(t, err, "index offline")
	})
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("unavailable without ingest service", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		_, _, err = server.handleIngest(ctx, nil, IngestInput{Path: "Q1.pdf"})
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("maps result", func(t *testing.T) {
		ingest := &mockIngestService{result: &domain.IngestResult{
			Period: "Q1FY24",
			Pages:  12,
			Records: []domain.ExtractedMetricRecord{
				{Period: "Q1FY24", MetricName: "PAT", Value: 20.1, Unit: domain.UnitCrore, SourcePage: 4},
			},
			Skipped:       []domain.SkippedMetric{{MetricName: "Broken", Reason: "invalid pattern"}},
			PassagesAdded: 40,
			CorpusSize:    90,
		}}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Ingest: ingest})
		require.NoError(t, err)

		_, output, err := server.handleIngest(ctx, nil, IngestInput{Path: "Q1FY24.pdf"})
		require.NoError(t, err)
		assert.Equal(t, "Q1FY24", output.Period)
		require.Len(t, output.Metrics, 1)
		assert.Equal(t, MetricOutput{Name: "PAT", Value: 20.1, Unit: "Cr.", Page: 4, Period: "Q1FY24"}, output.Metrics[0])
		assert.Equal(t, []SkippedOutput{{Name: "Broken", Reason: "invalid pattern"}}, output.Skipped)
		assert.Equal(t, 90, output.CorpusSize)
	})
}

func TestServer_MetricTools(t *testing.T) {
	ctx := context.Background()
	catalog := &mockCatalogService{}
	server, err := NewServer(&Ports{Query: &mockQueryService{}, Catalog: catalog})
	require.NoError(t, err)

	_, def, err := server.handleAddMetric(ctx, nil, AddMetricInput{
		Name:     "EBITDA Margin",
		Pattern:  `EBITDA Margin\s*(\d+\.\d+)%`,
		Category: "Financial",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), def.ID)
	assert.Equal(t, "%", def.Unit)

	_, list, err := server.handleListMetrics(ctx, nil, ListMetricsInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "EBITDA Margin", list.Metrics[0].Name)

	catalog.err = domain.ErrAlreadyExists
	_, _, err = server.handleAddMetric(ctx, nil, AddMetricInput{Name: "EBITDA Margin", Pattern: `(\d)`})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestServer_MetricTools_Unavailable(t *testing.T) {
	server, err := NewServer(&Ports{Query: &mockQueryService{}})
	require.NoError(t, err)

	_, _, err = server.handleListMetrics(context.Background(), nil, ListMetricsInput{})
	assert.ErrorIs(t, err, ErrUnavailable)
	_, _, err = server.handleAddMetric(context.Background(), nil, AddMetricInput{})
	assert.ErrorIs(t, err, ErrUnavailable)
}
