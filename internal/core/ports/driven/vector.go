package driven

import "context"

// VectorIndex provides nearest neighbour search over the passage corpus.
// The index is a projection of the corpus: vectors are addressed by their
// position in the collection, and the index is always rebuilt from scratch.
type VectorIndex interface {
	// Build replaces the index contents with the given vectors.
	// Vector i is addressed by position i. All vectors must share one dimension.
	Build(ctx context.Context, vectors [][]float32) error

	// Search finds up to k nearest vectors by squared Euclidean distance.
	// Hits are ordered by ascending distance, ties by ascending position.
	// An empty index returns no hits and no error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed vectors.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Position is the index of the matched passage in the corpus.
	Position int

	// Distance is the squared L2 distance to the query.
	Distance float32
}
