package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driving.QueryService = (*Resolver)(nil)

// DefaultTopK is the number of passages returned by semantic search.
const DefaultTopK = 3

// Metric names the structured intents read.
const (
	metricPAT           = "PAT"
	metricEBITDAMargin  = "EBITDA Margin"
	metricRevenue       = "Revenue from Operations"
	metricIntlRevenue   = "International Revenue Share"
	possibleReasonTitle = "\n\n## Possible Reason\n"
)

// Intent is a structured question type. Match receives the lowercased query.
// Handle returns nil when there is nothing to report, which sends the
// query to semantic search.
type Intent struct {
	Name   string
	Match  func(query string) bool
	Handle func(ctx context.Context) (*IntentResult, error)
}

// IntentResult is the rendered output of a structured intent.
type IntentResult struct {
	Text      string
	FollowUps []string
}

// Resolver answers questions with structured intents first and semantic
// search over the corpus second.
type Resolver struct {
	records driven.RecordStore
	corpus  *Corpus
	topK    int
	intents []Intent
}

// ResolverOption configures the resolver.
type ResolverOption func(*Resolver)

// WithTopK sets the number of passages returned by semantic search.
func WithTopK(k int) ResolverOption {
	return func(r *Resolver) {
		if k > 0 {
			r.topK = k
		}
	}
}

// NewResolver creates a resolver with the built-in intents.
func NewResolver(records driven.RecordStore, corpus *Corpus, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		records: records,
		corpus:  corpus,
		topK:    DefaultTopK,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.intents = r.defaultIntents()
	return r
}

// Intents returns the intent names in dispatch order.
func (r *Resolver) Intents() []string {
	names := make([]string, len(r.intents))
	for i, in := range r.intents {
		names[i] = in.Name
	}
	return names
}

func (r *Resolver) defaultIntents() []Intent {
	return []Intent{
		{
			Name:   "net_profit_trend",
			Match:  containsAll("trend", "net profit"),
			Handle: r.seriesHandler(metricPAT, "# Net Profit (PAT) Trend\n", " "),
		},
		{
			Name:   "ebitda_margin_evolution",
			Match:  containsAll("margin", "evolved"),
			Handle: r.seriesHandler(metricEBITDAMargin, "# EBITDA Margin Evolution\n", ""),
		},
		{
			Name:   "ebitda_margin_decrease",
			Match:  containsAll("ebitda margin decrease"),
			Handle: r.marginDecrease,
		},
		{
			Name:   "revenue_trend",
			Match:  containsAll("revenue trend"),
			Handle: r.seriesHandler(metricRevenue, "# Revenue Trend\n", " "),
		},
		{
			Name:   "expense_breakdown",
			Match:  containsAll("expense breakdown"),
			Handle: r.expenseBreakdown,
		},
		{
			Name:   "international_revenue",
			Match:  containsAll("international revenue"),
			Handle: r.seriesHandler(metricIntlRevenue, "# International Revenue Share\n", ""),
		},
	}
}

func containsAll(terms ...string) func(string) bool {
	return func(q string) bool {
		for _, t := range terms {
			if !strings.Contains(q, t) {
				return false
			}
		}
		return true
	}
}

// Ask resolves a question. Only the first matching intent runs; when it has
// nothing to report the question goes to semantic search.
func (r *Resolver) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	logger.Section("Query Resolution")
	logger.Debug("Question: %q", question)

	lower := strings.ToLower(question)
	for _, in := range r.intents {
		if !in.Match(lower) {
			continue
		}
		logger.Debug("Matched intent %s", in.Name)

		res, err := in.Handle(ctx)
		if err != nil {
			return nil, fmt.Errorf("intent %s: %w", in.Name, err)
		}
		if res == nil {
			logger.Debug("Intent %s has no data, falling back to semantic search", in.Name)
			break
		}

		text := res.Text
		for _, q := range res.FollowUps {
			logger.Debug("Follow-up query: %q", q)
			reason, _, err := r.semantic(ctx, q)
			if err != nil {
				return nil, fmt.Errorf("follow-up %q: %w", q, err)
			}
			text += possibleReasonTitle + reason
		}
		return &domain.Answer{
			Query:     question,
			Intent:    in.Name,
			Kind:      domain.AnswerStructured,
			Text:      text,
			FollowUps: res.FollowUps,
		}, nil
	}

	text, kind, err := r.semantic(ctx, question)
	if err != nil {
		return nil, err
	}
	return &domain.Answer{Query: question, Kind: kind, Text: text}, nil
}

// semantic renders the nearest passages for a query.
func (r *Resolver) semantic(ctx context.Context, query string) (string, domain.AnswerKind, error) {
	if r.corpus == nil || r.corpus.Len() == 0 {
		return "# No Data Available\nNo data available to query. Please upload a PDF first.", domain.AnswerNoData, nil
	}

	passages, err := r.corpus.Search(ctx, query, r.topK)
	if err != nil {
		return "", "", fmt.Errorf("semantic search: %w", err)
	}
	if len(passages) == 0 {
		return "# No Relevant Information\nNo relevant information found.", domain.AnswerNoRelevant, nil
	}

	blocks := make([]string, len(passages))
	for i, p := range passages {
		blocks[i] = fmt.Sprintf("**From %s (Page %d)**:\n%s", p.Period, p.Page, p.Text)
	}
	return "# Relevant Information\n" + strings.Join(blocks, "\n\n"), domain.AnswerSemantic, nil
}

// seriesHandler renders one metric's records in chronological order.
// sep goes between value and unit.
func (r *Resolver) seriesHandler(metric, title, sep string) func(context.Context) (*IntentResult, error) {
	return func(ctx context.Context) (*IntentResult, error) {
		series, err := r.records.ListByMetric(ctx, metric)
		if err != nil {
			return nil, err
		}
		if len(series) == 0 {
			return nil, nil
		}

		var b strings.Builder
		b.WriteString(title)
		for _, rec := range series {
			fmt.Fprintf(&b, "- %s: %s%s%s (Source: Page %d)\n",
				rec.Period, domain.FormatValue(rec.Value), sep, rec.Unit, rec.SourcePage)
		}
		return &IntentResult{Text: b.String()}, nil
	}
}

// marginDecrease compares the two latest EBITDA margin records.
func (r *Resolver) marginDecrease(ctx context.Context) (*IntentResult, error) {
	series, err := r.records.ListByMetric(ctx, metricEBITDAMargin)
	if err != nil {
		return nil, err
	}
	if len(series) < 2 {
		return nil, nil
	}

	prev, last := series[len(series)-2], series[len(series)-1]
	if last.Value >= prev.Value {
		return nil, nil
	}

	text := fmt.Sprintf("# EBITDA Margin Decrease\nEBITDA Margin decreased from %s%s in %s to %s%s in %s.\n**Source**: Pages %d and %d",
		domain.FormatValue(prev.Value), prev.Unit, prev.Period,
		domain.FormatValue(last.Value), last.Unit, last.Period,
		prev.SourcePage, last.SourcePage)
	return &IntentResult{Text: text, FollowUps: []string{"why " + last.Period}}, nil
}

// expenseBreakdown lists Expense records of the latest period.
// The latest period is the lexicographically greatest period label.
func (r *Resolver) expenseBreakdown(ctx context.Context) (*IntentResult, error) {
	periods, err := r.records.Periods(ctx)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, nil
	}

	latest := periods[len(periods)-1]
	rows, err := r.records.ListByCategory(ctx, latest, domain.CategoryExpense)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var b strings.Builder
	b.WriteString("# Expense Breakdown (Latest Quarter)\n")
	for _, rec := range rows {
		fmt.Fprintf(&b, "- %s: %s %s (Source: Page %d)\n",
			rec.MetricName, domain.FormatValue(rec.Value), rec.Unit, rec.SourcePage)
	}
	return &IntentResult{Text: b.String()}, nil
}
