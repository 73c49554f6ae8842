package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Metric categories used by the built-in catalog.
// Categories are free-form; these are the ones the resolver knows about.
const (
	CategoryFinancial   = "Financial"
	CategoryExpense     = "Expense"
	CategoryOperational = "Operational"
	CategoryMarket      = "Market"
)

// Units attached to extracted records.
const (
	UnitCrore   = "Cr."
	UnitPercent = "%"
	UnitUSDBn   = "USD Bn."
)

// DefaultFiscalYear is assigned to periods that carry no FYNN marker.
const DefaultFiscalYear = 2023

// MetricDefinition is a named extraction rule in the metric catalog.
type MetricDefinition struct {
	// ID is the store-assigned identifier.
	ID int64

	// Name is the unique metric name (e.g. "EBITDA Margin").
	Name string

	// Pattern is a regular expression whose first capture group is the value.
	// A second group, when present, captures the unit token.
	Pattern string

	// Category groups metrics for reporting (Financial, Expense, ...).
	Category string
}

// Unit returns the unit for records extracted by this definition.
func (d MetricDefinition) Unit() string {
	return UnitForPattern(d.Pattern)
}

// ExtractedMetricRecord is one numeric fact found in a report.
type ExtractedMetricRecord struct {
	// ID is the store-assigned identifier.
	ID int64

	// Period is the reporting period label (e.g. "Q3FY24").
	Period string

	// MetricName matches the MetricDefinition that produced the record.
	MetricName string

	// Value is the parsed numeric value.
	Value float64

	// Unit is derived from the definition's pattern, never from the captured text.
	Unit string

	// Year is the fiscal year derived from Period.
	Year int

	// SourcePage is the 1-based page the value was found on.
	SourcePage int

	// Category is copied from the definition.
	Category string
}

// SkippedMetric records a definition the extractor could not apply.
type SkippedMetric struct {
	MetricName string
	Reason     string
}

var fiscalYearPattern = regexp.MustCompile(`FY(\d{2})`)

// YearFromPeriod derives the fiscal year from a period label.
// "Q1FY24" yields 2024; labels without an FYNN marker yield DefaultFiscalYear.
func YearFromPeriod(period string) int {
	m := fiscalYearPattern.FindStringSubmatch(period)
	if m == nil {
		return DefaultFiscalYear
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultFiscalYear
	}
	return 2000 + n
}

// UnitForPattern decides the unit from the matching rule itself.
// Escapes are ignored so `Cr\.` and `Cr.` are the same token.
func UnitForPattern(pattern string) string {
	plain := strings.ReplaceAll(pattern, `\`, "")
	switch {
	case strings.Contains(plain, UnitCrore):
		return UnitCrore
	case strings.Contains(plain, UnitPercent):
		return UnitPercent
	default:
		return UnitUSDBn
	}
}

// FormatValue renders a metric value as the shortest decimal that round-trips,
// always keeping at least one fractional digit (10 -> "10.0", 9.5 -> "9.5").
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

const crorePattern = `\s*₹?(\d+\.\d+)\s*(Cr\.|INR Cr\.)`

// DefaultMetricDefinitions returns the built-in catalog seeded into an empty store.
func DefaultMetricDefinitions() []MetricDefinition {
	financial := func(name string) MetricDefinition {
		return MetricDefinition{Name: name, Pattern: regexp.QuoteMeta(name) + crorePattern, Category: CategoryFinancial}
	}
	expense := func(name string) MetricDefinition {
		return MetricDefinition{Name: name, Pattern: regexp.QuoteMeta(name) + crorePattern, Category: CategoryExpense}
	}

	return []MetricDefinition{
		financial("Revenue from Operations"),
		financial("Total Income"),
		financial("EBITDA"),
		financial("PAT"),
		financial("Free Cash Flow"),
		financial("Cash & Cash Equivalents"),
		{Name: "EBITDA Margin", Pattern: `EBITDA Margin\s*(\d+\.\d+)%`, Category: CategoryFinancial},
		{Name: "PAT Margin", Pattern: `PAT Margin\s*(\d+\.\d+)%`, Category: CategoryFinancial},
		expense("Employee Benefit Expenses"),
		expense("Salaries, Wages & Bonus"),
		expense("Employee Stock Option Expense"),
		expense("Depreciation Expense"),
		expense("Other Expenses"),
		expense("Cloud Hosting Charges"),
		expense("Rent for Building"),
		{Name: "International Revenue Share", Pattern: `International Revenue\s*~\s*(\d+\.\d+)%`, Category: CategoryOperational},
		{Name: "Global Tech Funding", Pattern: `Global Tech Funding.*?(\d+\.\d+)\s*(USD Bn\.)`, Category: CategoryMarket},
		{Name: "India Tech Funding", Pattern: `India Tech Funding.*?(\d+\.\d+)\s*(USD Bn\.)`, Category: CategoryMarket},
	}
}
