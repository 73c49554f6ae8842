package driven

import (
	"context"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// PassageStore persists the passage corpus.
// Text and embedding are always stored together.
type PassageStore interface {
	// LoadPassages returns the corpus ordered by position.
	LoadPassages(ctx context.Context) ([]domain.Passage, error)

	// ReplacePassages atomically replaces the whole corpus.
	ReplacePassages(ctx context.Context, passages []domain.Passage) error
}
