package driving

import (
	"context"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// CatalogService manages the metric catalog.
type CatalogService interface {
	// List returns all metric definitions ordered by ID.
	List(ctx context.Context) ([]domain.MetricDefinition, error)

	// Get retrieves a definition by ID.
	Get(ctx context.Context, id int64) (*domain.MetricDefinition, error)

	// Add creates a definition.
	// Returns domain.ErrAlreadyExists for a duplicate name and domain.ErrInvalidPattern
	// for a pattern that does not compile. The catalog is unchanged on error.
	Add(ctx context.Context, name, pattern, category string) (*domain.MetricDefinition, error)

	// Update overwrites a definition in place.
	Update(ctx context.Context, id int64, name, pattern, category string) (*domain.MetricDefinition, error)

	// Remove deletes a definition.
	Remove(ctx context.Context, id int64) error

	// Bootstrap seeds the built-in definitions when the catalog is empty.
	// Returns the number of definitions added.
	Bootstrap(ctx context.Context) (int, error)

	// Import adds many definitions, skipping names already in the catalog.
	Import(ctx context.Context, defs []domain.MetricDefinition) (*ImportResult, error)
}

// ImportResult reports the outcome of a catalog import.
type ImportResult struct {
	Added   []domain.MetricDefinition
	Skipped []string
}
