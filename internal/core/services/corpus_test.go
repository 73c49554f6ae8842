package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/storage/memory"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/vector/flat"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// --- Mock implementations ---

// keywordEmbedder maps text to keyword counts, one dimension per keyword.
// It makes nearest-neighbour order predictable in tests.
type keywordEmbedder struct {
	keywords []string
	calls    int
	err      error
}

func newKeywordEmbedder(keywords ...string) *keywordEmbedder {
	return &keywordEmbedder{keywords: keywords}
}

func (e *keywordEmbedder) vector(text string) []float32 {
	lower := strings.ToLower(text)
	v := make([]float32, len(e.keywords))
	for i, k := range e.keywords {
		v[i] = float32(strings.Count(lower, k))
	}
	return v
}

func (e *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.vector(text), nil
}

func (e *keywordEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.vector(t)
	}
	return out, nil
}

func (e *keywordEmbedder) Dimensions() int { return len(e.keywords) }

func (e *keywordEmbedder) ModelName() string { return "keywords" }

func (e *keywordEmbedder) Ping(_ context.Context) error { return nil }

func (e *keywordEmbedder) Close() error { return nil }

func passage(period string, page int, text string) domain.Passage {
	return domain.Passage{ID: period + "-" + text, Period: period, Page: page, Text: text}
}

func newTestCorpus(t *testing.T, embedder *keywordEmbedder) (*Corpus, *memory.PassageStore) {
	t.Helper()
	store := memory.NewPassageStore()
	c := NewCorpus(store, flat.New(), embedder)
	require.NoError(t, c.Open(context.Background()))
	return c, store
}

// --- Tests ---

func TestCorpus_AppendAndSearch(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCorpus(t, newKeywordEmbedder("revenue", "margin", "expense"))

	size, err := c.Append(ctx, []domain.Passage{
		passage("Q1", 1, "Revenue grew on strong demand"),
		passage("Q1", 2, "Margin fell due to higher expense"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	size, err = c.Append(ctx, []domain.Passage{passage("Q2", 4, "Expense expense control")})
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	got := c.Passages()
	require.Len(t, got, 3)
	for i, p := range got {
		assert.Equal(t, i, p.Position)
		assert.Len(t, p.Embedding, 3)
	}

	stored, err := store.LoadPassages(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	hits, err := c.Search(ctx, "expense expense", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Q2", hits[0].Period)
	assert.Equal(t, 4, hits[0].Page)
}

func TestCorpus_SearchEmpty(t *testing.T) {
	c, _ := newTestCorpus(t, newKeywordEmbedder("revenue"))

	hits, err := c.Search(context.Background(), "revenue", 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCorpus_SearchTiesKeepCorpusOrder(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCorpus(t, newKeywordEmbedder("revenue"))

	_, err := c.Append(ctx, []domain.Passage{
		passage("Q1", 1, "alpha"),
		passage("Q1", 2, "beta"),
		passage("Q1", 3, "gamma"),
	})
	require.NoError(t, err)

	hits, err := c.Search(ctx, "nothing here", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "alpha", hits[0].Text)
	assert.Equal(t, "beta", hits[1].Text)
}

func TestCorpus_PersistFailureLeavesCorpusUnchanged(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCorpus(t, newKeywordEmbedder("revenue", "margin"))

	_, err := c.Append(ctx, []domain.Passage{passage("Q1", 1, "margin")})
	require.NoError(t, err)

	store.FailReplace = errors.New("disk full")
	_, err = c.Append(ctx, []domain.Passage{passage("Q2", 1, "revenue")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, 1, c.Len())
	hits, err := c.Search(ctx, "revenue", 3)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Q1", hits[0].Period)
}

func TestCorpus_EmbeddingFailureLeavesCorpusUnchanged(t *testing.T) {
	ctx := context.Background()
	embedder := newKeywordEmbedder("revenue")
	c, _ := newTestCorpus(t, embedder)

	_, err := c.Append(ctx, []domain.Passage{passage("Q1", 1, "revenue")})
	require.NoError(t, err)

	embedder.err = errors.New("model offline")
	_, err = c.Append(ctx, []domain.Passage{passage("Q2", 1, "revenue")})
	require.Error(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestCorpus_OpenReembedsOnDimensionChange(t *testing.T) {
	ctx := context.Background()
	store := memory.NewPassageStore()
	require.NoError(t, store.ReplacePassages(ctx, []domain.Passage{
		{ID: "a", Text: "revenue", Period: "Q1", Page: 1, Embedding: []float32{1}},
		{ID: "b", Text: "margin", Period: "Q1", Page: 2, Embedding: []float32{0}},
	}))

	embedder := newKeywordEmbedder("revenue", "margin")
	c := NewCorpus(store, flat.New(), embedder)
	require.NoError(t, c.Open(ctx))

	assert.Equal(t, 1, embedder.calls)
	assert.Equal(t, 2, c.Len())

	stored, err := store.LoadPassages(ctx)
	require.NoError(t, err)
	for _, p := range stored {
		assert.Len(t, p.Embedding, 2)
	}
}

func TestCorpus_OpenKeepsMatchingVectors(t *testing.T) {
	ctx := context.Background()
	store := memory.NewPassageStore()
	require.NoError(t, store.ReplacePassages(ctx, []domain.Passage{
		{ID: "a", Text: "revenue", Period: "Q1", Page: 1, Embedding: []float32{1}},
	}))

	embedder := newKeywordEmbedder("revenue")
	c := NewCorpus(store, flat.New(), embedder)
	require.NoError(t, c.Open(ctx))

	assert.Equal(t, 0, embedder.calls)
	assert.Equal(t, 1, c.Len())
}

func TestCorpus_ResetAndStats(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCorpus(t, newKeywordEmbedder("revenue", "margin"))

	_, err := c.Append(ctx, []domain.Passage{
		passage("Q2", 1, "revenue"),
		passage("Q1", 1, "margin"),
		passage("Q2", 2, "margin"),
	})
	require.NoError(t, err)

	stats := c.Stats(ctx)
	assert.Equal(t, 3, stats.Passages)
	assert.Equal(t, []string{"Q1", "Q2"}, stats.Periods)
	assert.Equal(t, 2, stats.Dimensions)
	assert.Equal(t, "keywords", stats.Model)

	require.NoError(t, c.Reset(ctx))
	assert.Equal(t, 0, c.Len())
	stored, err := store.LoadPassages(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCorpus_NoEmbedder(t *testing.T) {
	c := NewCorpus(memory.NewPassageStore(), flat.New(), nil)

	_, err := c.Append(context.Background(), []domain.Passage{passage("Q1", 1, "x")})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}
