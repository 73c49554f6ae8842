package hashing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func l2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return sum
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc := NewEmbeddingService(Config{})
	assert.Equal(t, DefaultDimensions, svc.Dimensions())
	assert.Equal(t, ModelName, svc.ModelName())
	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}

func TestEmbed_DeterministicAndNormalised(t *testing.T) {
	svc := NewEmbeddingService(Config{Dimensions: 64})
	ctx := context.Background()

	a, err := svc.Embed(ctx, "EBITDA margin fell due to higher cloud costs")
	require.NoError(t, err)
	b, err := svc.Embed(ctx, "ebitda MARGIN fell, due to higher cloud costs!")
	require.NoError(t, err)

	require.Len(t, a, 64)
	assert.Equal(t, a, b)

	var norm float64
	for _, v := range a {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestEmbed_EmptyTextIsZero(t *testing.T) {
	svc := NewEmbeddingService(Config{Dimensions: 16})

	v, err := svc.Embed(context.Background(), "  ... ")
	require.NoError(t, err)
	assert.Equal(t, make([]float32, 16), v)
}

func TestEmbed_SharedVocabularyIsCloser(t *testing.T) {
	svc := NewEmbeddingService(Config{})
	ctx := context.Background()

	query, _ := svc.Embed(ctx, "why did the EBITDA margin decrease in Q2")
	related, _ := svc.Embed(ctx, "EBITDA margin decreased in Q2 because of wage hikes")
	unrelated, _ := svc.Embed(ctx, "Global tech funding rebounded to 7.2 USD Bn")

	assert.Less(t, l2(query, related), l2(query, unrelated))
}

func TestEmbedBatch(t *testing.T) {
	svc := NewEmbeddingService(Config{Dimensions: 32})
	ctx := context.Background()

	got, err := svc.EmbedBatch(ctx, []string{"revenue", "profit"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	single, _ := svc.Embed(ctx, "profit")
	assert.Equal(t, single, got[1])
}

func TestEmbedBatch_Cancelled(t *testing.T) {
	svc := NewEmbeddingService(Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.EmbedBatch(ctx, []string{"x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"pat", "98", "70", "cr"}, tokenize("PAT ₹98.70 Cr."))
	assert.Empty(t, tokenize("-- --"))
}
