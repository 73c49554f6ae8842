// Package chunker provides a paragraph chunking processor.
package chunker

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// blankLine matches a paragraph boundary: a newline followed by a line that
// holds nothing but whitespace.
var blankLine = regexp.MustCompile(`\n[ \t\r\f\v]*\n`)

// Processor splits page text into paragraph passages.
// It implements the PostProcessor interface.
type Processor struct {
	minLength int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMinLength drops paragraphs shorter than n characters after trimming.
func WithMinLength(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.minLength = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the page on blank lines. Paragraphs are trimmed and empty
// ones dropped. Input passages are ignored; this processor creates new ones.
func (p *Processor) Process(_ context.Context, period string, page domain.Page, _ []domain.Passage) ([]domain.Passage, error) {
	if !page.Readable() {
		return nil, nil
	}

	parts := Split(page.Text)
	passages := make([]domain.Passage, 0, len(parts))
	for _, text := range parts {
		if len(text) < p.minLength {
			continue
		}
		passages = append(passages, domain.Passage{
			ID:     uuid.New().String(),
			Text:   text,
			Period: period,
			Page:   page.Number,
		})
	}
	return passages, nil
}

// Split returns the trimmed, non-empty paragraphs of text.
func Split(text string) []string {
	var out []string
	for _, part := range blankLine.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
