package driven

import (
	"context"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// PostProcessor turns page text into passages.
// PostProcessors are chained in a pipeline (e.g., chunking, filtering).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a page and returns passages.
	// If the processor creates passages (e.g., chunker), it receives nil and returns new passages.
	// Otherwise it receives and returns the passages produced so far.
	Process(ctx context.Context, period string, page domain.Page, passages []domain.Passage) ([]domain.Passage, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs every readable page through all processors in order.
	// Returns the passages of all pages in page order.
	Process(ctx context.Context, period string, pages []domain.Page) ([]domain.Passage, error)
}
