// Package docx provides a page source for Word (.docx) reports.
//
// DOCX files carry no rendered pagination, so pages are split on explicit
// page breaks (<w:br w:type="page"/>) and on paragraphs marked
// pageBreakBefore. A document without breaks is a single page. Each
// paragraph, including each table cell paragraph, becomes one line.
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/pagetext"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

const documentPart = "word/document.xml"

// Source reads DOCX files.
type Source struct{}

// New creates a new DOCX page source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "docx"
}

// Extensions returns the file extensions this source handles.
func (s *Source) Extensions() []string {
	return []string{".docx"}
}

// Pages opens the archive and extracts page text from the main document part.
func (s *Source) Pages(ctx context.Context, path string) ([]domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentUnreadable, err)
	}
	defer zr.Close()

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("%s: no %s: %w", path, documentPart, domain.ErrDocumentUnreadable)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentUnreadable, err)
	}
	defer rc.Close()

	texts, err := parseDocument(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, domain.ErrDocumentUnreadable, err)
	}

	pages := make([]domain.Page, len(texts))
	for i, text := range texts {
		pages[i] = domain.Page{
			Number:     i + 1,
			Text:       text,
			Unreadable: strings.TrimSpace(text) == "",
		}
	}

	if err := pagetext.CheckReadable(path, pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// parseDocument walks document.xml and returns the text of each page.
func parseDocument(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		pages  []string
		page   strings.Builder
		line   strings.Builder
		inText bool
	)

	newPage := func() {
		pages = append(pages, strings.TrimSpace(page.String()))
		page.Reset()
	}
	endParagraph := func() {
		if text := strings.TrimSpace(line.String()); text != "" {
			page.WriteString(text)
			page.WriteByte('\n')
		}
		line.Reset()
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				line.WriteByte(' ')
			case "br":
				if attr(t, "type") == "page" {
					endParagraph()
					newPage()
				} else {
					line.WriteByte(' ')
				}
			case "pageBreakBefore":
				if v := attr(t, "val"); (v == "" || v == "1" || v == "true") && page.Len() > 0 {
					newPage()
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				endParagraph()
			}
		case xml.CharData:
			if inText {
				line.Write(t)
			}
		}
	}

	endParagraph()
	if page.Len() > 0 || len(pages) == 0 {
		newPage()
	}
	return pages, nil
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
