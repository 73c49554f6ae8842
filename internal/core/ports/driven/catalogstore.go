package driven

import (
	"context"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// CatalogStore persists metric definitions.
// Names are unique; inserting a duplicate returns domain.ErrAlreadyExists.
type CatalogStore interface {
	// Create inserts a definition and sets its ID.
	Create(ctx context.Context, def *domain.MetricDefinition) error

	// Get retrieves a definition by ID.
	Get(ctx context.Context, id int64) (*domain.MetricDefinition, error)

	// Update overwrites an existing definition.
	Update(ctx context.Context, def *domain.MetricDefinition) error

	// Delete removes a definition.
	Delete(ctx context.Context, id int64) error

	// List returns all definitions ordered by ID.
	List(ctx context.Context) ([]domain.MetricDefinition, error)

	// Count returns the number of definitions.
	Count(ctx context.Context) (int, error)
}
