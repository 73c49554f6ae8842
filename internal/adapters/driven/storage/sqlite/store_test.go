package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)

	v, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.CatalogStore().Create(ctx, &domain.MetricDefinition{Name: "PAT", Pattern: `PAT (\d+)`}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.CatalogStore().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// ==================== Catalog Store Tests ====================

func TestCatalogStore_CRUD(t *testing.T) {
	store := setupTestStore(t)
	cs := store.CatalogStore()
	ctx := context.Background()

	pat := &domain.MetricDefinition{Name: "PAT", Pattern: `PAT\s*(\d+\.\d+)`, Category: domain.CategoryFinancial}
	require.NoError(t, cs.Create(ctx, pat))
	assert.Equal(t, int64(1), pat.ID)

	rev := &domain.MetricDefinition{Name: "Revenue", Pattern: `Revenue\s*(\d+\.\d+)`}
	require.NoError(t, cs.Create(ctx, rev))

	got, err := cs.Get(ctx, pat.ID)
	require.NoError(t, err)
	assert.Equal(t, *pat, *got)

	rev.Pattern = `Revenue from Operations\s*(\d+\.\d+)`
	require.NoError(t, cs.Update(ctx, rev))

	defs, err := cs.List(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "PAT", defs[0].Name)
	assert.Equal(t, rev.Pattern, defs[1].Pattern)

	require.NoError(t, cs.Delete(ctx, pat.ID))
	_, err = cs.Get(ctx, pat.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err := cs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCatalogStore_Errors(t *testing.T) {
	store := setupTestStore(t)
	cs := store.CatalogStore()
	ctx := context.Background()

	require.NoError(t, cs.Create(ctx, &domain.MetricDefinition{Name: "PAT", Pattern: `(\d)`}))
	other := &domain.MetricDefinition{Name: "EBITDA", Pattern: `(\d)`}
	require.NoError(t, cs.Create(ctx, other))

	err := cs.Create(ctx, &domain.MetricDefinition{Name: "PAT", Pattern: `x(\d)`})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	other.Name = "PAT"
	assert.ErrorIs(t, cs.Update(ctx, other), domain.ErrAlreadyExists)

	assert.ErrorIs(t, cs.Update(ctx, &domain.MetricDefinition{ID: 42, Name: "X", Pattern: `(\d)`}), domain.ErrNotFound)
	assert.ErrorIs(t, cs.Delete(ctx, 42), domain.ErrNotFound)
}

// ==================== Record Store Tests ====================

func rec(period, metric, category string, value float64) domain.ExtractedMetricRecord {
	return domain.ExtractedMetricRecord{
		Period:     period,
		MetricName: metric,
		Category:   category,
		Value:      value,
		Unit:       domain.UnitCrore,
		Year:       domain.YearFromPeriod(period),
		SourcePage: 1,
	}
}

func TestRecordStore_ReplacePeriod(t *testing.T) {
	store := setupTestStore(t)
	rs := store.RecordStore()
	ctx := context.Background()

	first := []domain.ExtractedMetricRecord{rec("Q1FY24", "PAT", "Financial", 1), rec("Q1FY24", "EBITDA", "Financial", 2)}
	require.NoError(t, rs.ReplacePeriod(ctx, "Q1FY24", first))
	assert.NotZero(t, first[0].ID)
	assert.NotEqual(t, first[0].ID, first[1].ID)

	require.NoError(t, rs.ReplacePeriod(ctx, "Q2FY24", []domain.ExtractedMetricRecord{rec("Q2FY24", "PAT", "Financial", 3)}))
	require.NoError(t, rs.ReplacePeriod(ctx, "Q1FY24", []domain.ExtractedMetricRecord{rec("Q1FY24", "PAT", "Financial", 1.5)}))

	q1, err := rs.List(ctx, "Q1FY24")
	require.NoError(t, err)
	require.Len(t, q1, 1)
	assert.Equal(t, 1.5, q1[0].Value)
	assert.Equal(t, 2024, q1[0].Year)

	all, err := rs.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRecordStore_Queries(t *testing.T) {
	store := setupTestStore(t)
	rs := store.RecordStore()
	ctx := context.Background()

	require.NoError(t, rs.ReplacePeriod(ctx, "Q1FY24", []domain.ExtractedMetricRecord{
		rec("Q1FY24", "PAT", domain.CategoryFinancial, 10),
		rec("Q1FY24", "Rent for Building", domain.CategoryExpense, 1),
		rec("Q1FY24", "Other Expenses", domain.CategoryExpense, 2),
	}))
	require.NoError(t, rs.ReplacePeriod(ctx, "Q4FY23", []domain.ExtractedMetricRecord{
		rec("Q4FY23", "PAT", domain.CategoryFinancial, 8),
	}))

	series, err := rs.ListByMetric(ctx, "PAT")
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "Q4FY23", series[0].Period)
	assert.Equal(t, "Q1FY24", series[1].Period)

	expenses, err := rs.ListByCategory(ctx, "Q1FY24", domain.CategoryExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "Rent for Building", expenses[0].MetricName)
	assert.Equal(t, "Other Expenses", expenses[1].MetricName)

	periods, err := rs.Periods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1FY24", "Q4FY23"}, periods)
}

// ==================== Passage Store Tests ====================

func TestPassageStore_ReplaceAndLoad(t *testing.T) {
	store := setupTestStore(t)
	ps := store.PassageStore()
	ctx := context.Background()

	empty, err := ps.LoadPassages(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	passages := []domain.Passage{
		{ID: "a", Position: 0, Period: "Q1", Page: 1, Text: "Revenue grew", Embedding: []float32{0.5, -1.25, 3}},
		{ID: "b", Position: 1, Period: "Q1", Page: 2, Text: "Margins fell", Embedding: []float32{1, 0, 0}},
	}
	require.NoError(t, ps.ReplacePassages(ctx, passages))

	got, err := ps.LoadPassages(ctx)
	require.NoError(t, err)
	assert.Equal(t, passages, got)

	require.NoError(t, ps.ReplacePassages(ctx, passages[1:2]))
	got, err = ps.LoadPassages(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

// ==================== Helper Function Tests ====================

func TestFloat32Conversion(t *testing.T) {
	original := []float32{1.5, -2.25, 0, 3.14159}
	assert.Equal(t, original, bytesToFloat32Slice(float32SliceToBytes(original)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
