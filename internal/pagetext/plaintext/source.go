// Package plaintext provides a page source for plain text reports.
// Pages are separated by form feed characters, as written by pdftotext.
package plaintext

import (
	"context"
	"fmt"
	"os"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/pagetext"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Source reads plain text files.
type Source struct{}

// New creates a new plain text page source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "plaintext"
}

// Extensions returns the file extensions this source handles.
func (s *Source) Extensions() []string {
	return []string{".txt", ".text"}
}

// Pages reads the file and splits it on form feeds.
func (s *Source) Pages(ctx context.Context, path string) ([]domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentUnreadable, err)
	}

	pages := pagetext.SplitPages(string(data))
	if err := pagetext.CheckReadable(path, pages); err != nil {
		return nil, err
	}
	return pages, nil
}
