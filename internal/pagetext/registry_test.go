package pagetext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

type stubSource struct {
	name string
	exts []string
}

func (s *stubSource) Name() string         { return s.name }
func (s *stubSource) Extensions() []string { return s.exts }
func (s *stubSource) Pages(_ context.Context, _ string) ([]domain.Page, error) {
	return nil, nil
}

func TestRegistry_Get(t *testing.T) {
	pdf := &stubSource{name: "pdf", exts: []string{".pdf"}}
	txt := &stubSource{name: "plaintext", exts: []string{".txt", ".md"}}
	r := NewRegistry(pdf, txt)

	got, err := r.Get("/reports/Q1FY24.PDF")
	require.NoError(t, err)
	assert.Equal(t, "pdf", got.Name())

	got, err = r.Get("notes.md")
	require.NoError(t, err)
	assert.Equal(t, "plaintext", got.Name())

	_, err = r.Get("deck.pptx")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	assert.Equal(t, []string{".md", ".pdf", ".txt"}, r.Extensions())
}

func TestSplitPages(t *testing.T) {
	pages := SplitPages("Revenue 10.0\f\f  \fPAT 2.0\f")
	require.Len(t, pages, 4)

	assert.Equal(t, 1, pages[0].Number)
	assert.True(t, pages[0].Readable())
	assert.True(t, pages[1].Unreadable)
	assert.True(t, pages[2].Unreadable)
	assert.Equal(t, 4, pages[3].Number)
	assert.Equal(t, "PAT 2.0", pages[3].Text)
}

func TestSplitPages_NoFormFeed(t *testing.T) {
	pages := SplitPages("one page\r\nsecond line")
	require.Len(t, pages, 1)
	assert.Equal(t, "one page\nsecond line", pages[0].Text)
}

func TestCheckReadable(t *testing.T) {
	assert.NoError(t, CheckReadable("a.pdf", []domain.Page{{Number: 1, Text: "x"}}))
	assert.ErrorIs(t, CheckReadable("a.pdf", []domain.Page{{Number: 1, Unreadable: true}}), domain.ErrDocumentUnreadable)
	assert.ErrorIs(t, CheckReadable("a.pdf", nil), domain.ErrDocumentUnreadable)
}
