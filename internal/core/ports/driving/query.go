package driving

import (
	"context"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// QueryService answers natural-language questions about ingested reports.
type QueryService interface {
	// Ask resolves a question against structured records, falling back to semantic search.
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}
