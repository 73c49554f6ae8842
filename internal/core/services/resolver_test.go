package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/storage/memory"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

func record(period, metric, category, unit string, value float64, page int) domain.ExtractedMetricRecord {
	return domain.ExtractedMetricRecord{
		Period:     period,
		MetricName: metric,
		Category:   category,
		Unit:       unit,
		Value:      value,
		SourcePage: page,
		Year:       domain.YearFromPeriod(period),
	}
}

func seed(t *testing.T, store *memory.RecordStore, records ...domain.ExtractedMetricRecord) {
	t.Helper()
	byPeriod := make(map[string][]domain.ExtractedMetricRecord)
	var order []string
	for _, r := range records {
		if _, ok := byPeriod[r.Period]; !ok {
			order = append(order, r.Period)
		}
		byPeriod[r.Period] = append(byPeriod[r.Period], r)
	}
	for _, p := range order {
		require.NoError(t, store.ReplacePeriod(context.Background(), p, byPeriod[p]))
	}
}

func newTestResolver(t *testing.T, passages ...domain.Passage) (*Resolver, *memory.RecordStore) {
	t.Helper()
	c, _ := newTestCorpus(t, newKeywordEmbedder("revenue", "margin", "wage"))
	if len(passages) > 0 {
		_, err := c.Append(context.Background(), passages)
		require.NoError(t, err)
	}
	store := memory.NewRecordStore()
	return NewResolver(store, c), store
}

func TestResolver_Intents(t *testing.T) {
	r, _ := newTestResolver(t)
	assert.Equal(t, []string{
		"net_profit_trend",
		"ebitda_margin_evolution",
		"ebitda_margin_decrease",
		"revenue_trend",
		"expense_breakdown",
		"international_revenue",
	}, r.Intents())
}

func TestResolver_NetProfitTrend(t *testing.T) {
	r, store := newTestResolver(t)
	seed(t, store,
		record("Q1FY24", "PAT", domain.CategoryFinancial, domain.UnitCrore, 10, 4),
		record("Q4FY23", "PAT", domain.CategoryFinancial, domain.UnitCrore, 8.5, 3),
	)

	ans, err := r.Ask(context.Background(), "What is the Net Profit trend?")
	require.NoError(t, err)
	assert.Equal(t, "net_profit_trend", ans.Intent)
	assert.Equal(t, domain.AnswerStructured, ans.Kind)
	assert.Equal(t,
		"# Net Profit (PAT) Trend\n"+
			"- Q4FY23: 8.5 Cr. (Source: Page 3)\n"+
			"- Q1FY24: 10.0 Cr. (Source: Page 4)\n",
		ans.Text)
}

func TestResolver_RevenueTrend(t *testing.T) {
	r, store := newTestResolver(t)
	seed(t, store, record("Q1", "Revenue from Operations", domain.CategoryFinancial, domain.UnitCrore, 120.5, 1))

	ans, err := r.Ask(context.Background(), "show the revenue trend")
	require.NoError(t, err)
	assert.Equal(t, "# Revenue Trend\n- Q1: 120.5 Cr. (Source: Page 1)\n", ans.Text)
}

func TestResolver_MarginEvolution(t *testing.T) {
	r, store := newTestResolver(t)
	seed(t, store,
		record("Q1", "EBITDA Margin", domain.CategoryFinancial, domain.UnitPercent, 10, 5),
		record("Q2", "EBITDA Margin", domain.CategoryFinancial, domain.UnitPercent, 9.5, 6),
	)

	ans, err := r.Ask(context.Background(), "How has the EBITDA margin evolved?")
	require.NoError(t, err)
	assert.Equal(t,
		"# EBITDA Margin Evolution\n- Q1: 10.0% (Source: Page 5)\n- Q2: 9.5% (Source: Page 6)\n",
		ans.Text)
}

func TestResolver_InternationalRevenue(t *testing.T) {
	r, store := newTestResolver(t)
	seed(t, store, record("Q1", "International Revenue Share", domain.CategoryOperational, domain.UnitPercent, 45, 2))

	ans, err := r.Ask(context.Background(), "International revenue share?")
	require.NoError(t, err)
	assert.Equal(t, "international_revenue", ans.Intent)
	assert.Equal(t, "# International Revenue Share\n- Q1: 45.0% (Source: Page 2)\n", ans.Text)
}

func TestResolver_MarginDecreaseWithReason(t *testing.T) {
	r, store := newTestResolver(t, passage("Q2", 7, "wage hikes hit margin"))
	seed(t, store,
		record("Q1", "EBITDA Margin", domain.CategoryFinancial, domain.UnitPercent, 10, 5),
		record("Q2", "EBITDA Margin", domain.CategoryFinancial, domain.UnitPercent, 9.5, 6),
	)

	ans, err := r.Ask(context.Background(), "Why did the EBITDA margin decrease?")
	require.NoError(t, err)
	assert.Equal(t, "ebitda_margin_decrease", ans.Intent)
	assert.Equal(t, []string{"why Q2"}, ans.FollowUps)
	assert.Equal(t,
		"# EBITDA Margin Decrease\n"+
			"EBITDA Margin decreased from 10.0% in Q1 to 9.5% in Q2.\n"+
			"**Source**: Pages 5 and 6"+
			"\n\n## Possible Reason\n"+
			"# Relevant Information\n**From Q2 (Page 7)**:\nwage hikes hit margin",
		ans.Text)
}

func TestResolver_MarginIncreaseFallsThrough(t *testing.T) {
	r, store := newTestResolver(t)
	seed(t, store,
		record("Q1", "EBITDA Margin", domain.CategoryFinancial, domain.UnitPercent, 9, 5),
		record("Q2", "EBITDA Margin", domain.CategoryFinancial, domain.UnitPercent, 9.5, 6),
	)

	ans, err := r.Ask(context.Background(), "ebitda margin decrease")
	require.NoError(t, err)
	assert.Empty(t, ans.Intent)
	assert.Equal(t, domain.AnswerNoData, ans.Kind)
	assert.Equal(t, "# No Data Available\nNo data available to query. Please upload a PDF first.", ans.Text)
}

func TestResolver_ExpenseBreakdownUsesLatestPeriod(t *testing.T) {
	r, store := newTestResolver(t)
	seed(t, store,
		record("Q2FY24", "Other Expenses", domain.CategoryExpense, domain.UnitCrore, 3, 9),
		record("Q2FY24", "Rent for Building", domain.CategoryExpense, domain.UnitCrore, 1.25, 9),
		record("Q2FY24", "PAT", domain.CategoryFinancial, domain.UnitCrore, 20, 2),
		record("Q1FY24", "Other Expenses", domain.CategoryExpense, domain.UnitCrore, 2, 8),
	)

	ans, err := r.Ask(context.Background(), "Give me the expense breakdown")
	require.NoError(t, err)
	assert.Equal(t,
		"# Expense Breakdown (Latest Quarter)\n"+
			"- Other Expenses: 3.0 Cr. (Source: Page 9)\n"+
			"- Rent for Building: 1.25 Cr. (Source: Page 9)\n",
		ans.Text)
}

func TestResolver_ExpenseBreakdownPicksGreatestPeriodString(t *testing.T) {
	r, store := newTestResolver(t)
	seed(t, store,
		record("Q4FY23", "Other Expenses", domain.CategoryExpense, domain.UnitCrore, 4, 9),
		record("Q1FY24", "Other Expenses", domain.CategoryExpense, domain.UnitCrore, 1, 2),
		record("Q1FY24", "Rent for Building", domain.CategoryExpense, domain.UnitCrore, 0.5, 2),
	)

	// Q4FY23 sorts after Q1FY24 as a string although FY24 is the later year.
	ans, err := r.Ask(context.Background(), "expense breakdown please")
	require.NoError(t, err)
	assert.Equal(t, "expense_breakdown", ans.Intent)
	assert.Equal(t,
		"# Expense Breakdown (Latest Quarter)\n"+
			"- Other Expenses: 4.0 Cr. (Source: Page 9)\n",
		ans.Text)
}

func TestResolver_OnlyFirstMatchingIntentRuns(t *testing.T) {
	r, store := newTestResolver(t)
	seed(t, store, record("Q1", "Revenue from Operations", domain.CategoryFinancial, domain.UnitCrore, 1, 1))

	ans, err := r.Ask(context.Background(), "net profit trend and revenue trend")
	require.NoError(t, err)
	assert.Empty(t, ans.Intent)
	assert.Equal(t, domain.AnswerNoData, ans.Kind)
}

func TestResolver_Semantic(t *testing.T) {
	r, _ := newTestResolver(t,
		passage("Q1", 1, "revenue revenue rose"),
		passage("Q1", 2, "margin held"),
		passage("Q2", 3, "revenue dipped"),
	)
	r.topK = 2

	ans, err := r.Ask(context.Background(), "tell me about revenue revenue")
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerSemantic, ans.Kind)
	assert.Equal(t,
		"# Relevant Information\n"+
			"**From Q1 (Page 1)**:\nrevenue revenue rose\n\n"+
			"**From Q2 (Page 3)**:\nrevenue dipped",
		ans.Text)
}

func TestResolver_WithTopK(t *testing.T) {
	r := NewResolver(memory.NewRecordStore(), nil, WithTopK(5), WithTopK(0))
	assert.Equal(t, 5, r.topK)

	ans, err := r.Ask(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerNoData, ans.Kind)
}
