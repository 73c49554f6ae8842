package driven

import (
	"context"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// PageSource reads a report document into page-level plain text.
//
// Implementations mark individual pages Unreadable when only those pages fail.
// When no page can be read they return domain.ErrDocumentUnreadable.
type PageSource interface {
	// Name returns the source name for logging.
	Name() string

	// Extensions returns the file extensions this source handles (e.g. ".pdf").
	Extensions() []string

	// Pages returns the document's pages in ascending page order.
	Pages(ctx context.Context, path string) ([]domain.Page, error)
}

// PageSourceRegistry selects a page source for a file.
type PageSourceRegistry interface {
	// Register adds a page source for its extensions.
	Register(source PageSource)

	// Get returns the page source for the file's extension.
	// Returns domain.ErrUnsupportedType when none is registered.
	Get(path string) (PageSource, error)

	// Extensions lists every registered extension.
	Extensions() []string
}
