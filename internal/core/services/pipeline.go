package services

import (
	"context"
	"fmt"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
)

// Pipeline chunks report pages into passages and appends them to the corpus.
type Pipeline struct {
	chunker driven.PostProcessorPipeline
	corpus  *Corpus
}

// NewPipeline creates a new chunk-and-embed pipeline.
func NewPipeline(chunker driven.PostProcessorPipeline, corpus *Corpus) *Pipeline {
	return &Pipeline{chunker: chunker, corpus: corpus}
}

// Run chunks the pages and appends the passages to the corpus.
// Returns the number of passages added and the resulting corpus size.
// When no page is readable it returns domain.ErrDocumentUnreadable and the
// corpus is not touched.
func (p *Pipeline) Run(ctx context.Context, period string, pages []domain.Page) (added, size int, err error) {
	logger.Section("Passage Pipeline")

	readable := 0
	for _, page := range pages {
		if page.Readable() {
			readable++
		}
	}
	if readable == 0 {
		return 0, p.corpus.Len(), domain.ErrDocumentUnreadable
	}

	passages, err := p.chunker.Process(ctx, period, pages)
	if err != nil {
		return 0, p.corpus.Len(), fmt.Errorf("chunk pages: %w", err)
	}
	logger.Debug("Chunked %d readable pages into %d passages", readable, len(passages))

	size, err = p.corpus.Append(ctx, passages)
	if err != nil {
		return 0, p.corpus.Len(), err
	}

	logger.Info("Corpus now holds %d passages (+%d from %s)", size, len(passages), period)
	return len(passages), size, nil
}
