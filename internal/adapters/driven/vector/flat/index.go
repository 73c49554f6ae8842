// Package flat provides an exact brute-force vector index.
package flat

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index keeps every vector in memory and scans all of them on search.
// Distances are exact squared Euclidean distances.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
}

// New creates an empty index.
func New() *Index {
	return &Index{}
}

// Build replaces the index contents.
func (idx *Index) Build(_ context.Context, vectors [][]float32) error {
	dim := 0
	copied := make([][]float32, len(vectors))
	for i, v := range vectors {
		if i == 0 {
			dim = len(v)
		}
		if len(v) != dim || dim == 0 {
			return fmt.Errorf("vector %d: %w: got %d, want %d", i, domain.ErrDimensionMismatch, len(v), dim)
		}
		copied[i] = append([]float32(nil), v...)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.dimension = dim
	idx.vectors = copied
	return nil
}

// Search scans every vector and returns the k nearest.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.vectors) == 0 || k <= 0 {
		return []driven.VectorHit{}, nil
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("query: %w: got %d, want %d", domain.ErrDimensionMismatch, len(query), idx.dimension)
	}

	hits := make([]driven.VectorHit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = driven.VectorHit{Position: i, Distance: squaredL2(query, v)}
	}
	// Stable sort keeps scan order for equal distances.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Dimension returns the vector size, or 0 when empty.
func (idx *Index) Dimension() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dimension
}

// Close releases resources.
func (idx *Index) Close() error {
	return nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
