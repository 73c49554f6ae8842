package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/postprocessors/chunker"
)

// upperProcessor upper-cases passage text so ordering can be observed.
type upperProcessor struct {
	err error
}

func (u *upperProcessor) Name() string { return "upper" }

func (u *upperProcessor) Process(_ context.Context, _ string, _ domain.Page, passages []domain.Passage) ([]domain.Passage, error) {
	if u.err != nil {
		return nil, u.err
	}
	for i := range passages {
		passages[i].Text = strings.ToUpper(passages[i].Text)
	}
	return passages, nil
}

func TestPipeline_Empty(t *testing.T) {
	p := NewPipeline()
	if p.Len() != 0 {
		t.Errorf("expected 0 processors, got %d", p.Len())
	}

	passages, err := p.Process(context.Background(), "Q1", []domain.Page{{Number: 1, Text: "x"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if passages != nil {
		t.Errorf("expected nil passages from empty pipeline, got %v", passages)
	}
}

func TestPipeline_ChainsProcessorsPerPage(t *testing.T) {
	p := NewPipeline(chunker.New())
	p.Add(&upperProcessor{})

	pages := []domain.Page{
		{Number: 1, Text: "revenue\n\nprofit"},
		{Number: 2, Unreadable: true},
		{Number: 3, Text: "margin"},
	}

	passages, err := p.Process(context.Background(), "Q3FY24", pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		text string
		page int
	}{{"REVENUE", 1}, {"PROFIT", 1}, {"MARGIN", 3}}
	if len(passages) != len(want) {
		t.Fatalf("expected %d passages, got %d", len(want), len(passages))
	}
	for i, w := range want {
		if passages[i].Text != w.text || passages[i].Page != w.page {
			t.Errorf("passage %d: expected %q on page %d, got %q on page %d",
				i, w.text, w.page, passages[i].Text, passages[i].Page)
		}
	}
}

func TestPipeline_ProcessorError(t *testing.T) {
	p := NewPipeline(chunker.New(), &upperProcessor{err: errors.New("boom")})

	_, err := p.Process(context.Background(), "Q1", []domain.Page{{Number: 2, Text: "x"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "processor upper, page 2") {
		t.Errorf("unexpected error: %v", err)
	}
}
