// Package markdown provides a page source for Markdown reports.
// Formatting is stripped and table rows are flattened to space-separated
// cells so metric patterns see "PAT 98.70 Cr." rather than "| PAT | 98.70 Cr. |".
package markdown

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/pagetext"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Source reads Markdown files.
// Pages are separated by form feeds or by a \newpage or \pagebreak line.
type Source struct{}

// New creates a new Markdown page source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "markdown"
}

// Extensions returns the file extensions this source handles.
func (s *Source) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Pages reads the file, splits it into pages and strips formatting from each.
func (s *Source) Pages(ctx context.Context, path string) ([]domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentUnreadable, err)
	}

	text := pageBreak.ReplaceAllString(string(data), "\f")
	pages := pagetext.SplitPages(text)
	for i := range pages {
		pages[i].Text = Strip(pages[i].Text)
		pages[i].Unreadable = strings.TrimSpace(pages[i].Text) == ""
	}

	if err := pagetext.CheckReadable(path, pages); err != nil {
		return nil, err
	}
	return pages, nil
}

var (
	pageBreak     = regexp.MustCompile(`(?m)^[ \t]*\\(?:newpage|pagebreak)[ \t]*\n?`)
	codeBlock     = regexp.MustCompile("(?s)```.*?```")
	inlineCode    = regexp.MustCompile("`([^`]+)`")
	images        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasis      = regexp.MustCompile(`(\*\*|__|\*|_)([^*_\n]+)(\*\*|__|\*|_)`)
	blockquote    = regexp.MustCompile(`(?m)^>\s?`)
	rule          = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarker    = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+\.)[ \t]+`)
	tableDivider  = regexp.MustCompile(`(?m)^[ \t]*\|?[ \t]*:?-{3,}:?[ \t]*(?:\|[ \t]*:?-{3,}:?[ \t]*)*\|?[ \t]*$\n?`)
	tableRow      = regexp.MustCompile(`(?m)^[ \t]*\|(.*)\|[ \t]*$`)
	manyBlanks    = regexp.MustCompile(`\n{3,}`)
	repeatedSpace = regexp.MustCompile(`[ \t]{2,}`)
)

// Strip converts Markdown to plain text, keeping paragraph breaks.
func Strip(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = emphasis.ReplaceAllString(content, "$2")
	content = blockquote.ReplaceAllString(content, "")
	content = tableDivider.ReplaceAllString(content, "")
	content = tableRow.ReplaceAllStringFunc(content, func(row string) string {
		return strings.Join(strings.Fields(strings.ReplaceAll(row, "|", " ")), " ")
	})
	content = rule.ReplaceAllString(content, "")
	content = listMarker.ReplaceAllString(content, "")
	content = repeatedSpace.ReplaceAllString(content, " ")
	content = manyBlanks.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
