package pagetext

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.PageSourceRegistry = (*Registry)(nil)

// Registry maps file extensions to page sources.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]driven.PageSource
}

// NewRegistry creates a registry with the given sources.
// Later sources win when extensions overlap.
func NewRegistry(sources ...driven.PageSource) *Registry {
	r := &Registry{sources: make(map[string]driven.PageSource)}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

// Register adds a page source for its extensions.
func (r *Registry) Register(source driven.PageSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range source.Extensions() {
		r.sources[strings.ToLower(ext)] = source
	}
}

// Get returns the page source for the file's extension.
func (r *Registry) Get(path string) (driven.PageSource, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sources[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, ext)
	}
	return s, nil
}

// Extensions lists every registered extension in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.sources))
	for ext := range r.sources {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// SplitPages splits text on form feeds into 1-based pages.
// A trailing form feed does not start a new page. Pages whose text is blank
// are marked Unreadable.
func SplitPages(text string) []domain.Page {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\f")
	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	pages := make([]domain.Page, len(parts))
	for i, p := range parts {
		pages[i] = domain.Page{
			Number:     i + 1,
			Text:       p,
			Unreadable: strings.TrimSpace(p) == "",
		}
	}
	return pages
}

// CheckReadable returns domain.ErrDocumentUnreadable when no page has text.
func CheckReadable(path string, pages []domain.Page) error {
	for _, p := range pages {
		if p.Readable() {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", path, domain.ErrDocumentUnreadable)
}
