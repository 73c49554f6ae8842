// Package postprocessors provides page-to-passage processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline chains multiple PostProcessors and runs them in order.
// It implements the PostProcessorPipeline interface.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs every readable page through all processors in order.
// For each page the first processor receives nil passages and should create
// them; subsequent processors receive and may modify them.
func (p *Pipeline) Process(ctx context.Context, period string, pages []domain.Page) ([]domain.Passage, error) {
	var all []domain.Passage

	for _, page := range pages {
		if !page.Readable() {
			continue
		}

		var passages []domain.Passage
		for _, processor := range p.processors {
			var err error
			passages, err = processor.Process(ctx, period, page, passages)
			if err != nil {
				return nil, fmt.Errorf("processor %s, page %d: %w", processor.Name(), page.Number, err)
			}
		}
		all = append(all, passages...)
	}

	return all, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
