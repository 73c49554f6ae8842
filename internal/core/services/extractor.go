package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
)

// ExtractionReport is the outcome of one extraction run.
type ExtractionReport struct {
	Records []domain.ExtractedMetricRecord
	Skipped []domain.SkippedMetric
}

// Extractor turns page text into metric records using the catalog's patterns.
type Extractor struct {
	records driven.RecordStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewExtractor creates a new extractor writing to the given record store.
func NewExtractor(records driven.RecordStore) *Extractor {
	return &Extractor{
		records: records,
		locks:   make(map[string]*sync.Mutex),
	}
}

// periodLock returns the lock serialising writes for one period.
func (e *Extractor) periodLock(period string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[period]
	if !ok {
		l = &sync.Mutex{}
		e.locks[period] = l
	}
	return l
}

// Extract applies every definition to the pages and replaces the period's records.
//
// Definitions are applied in catalog order; for each one the first page (in
// ascending page order) whose text matches wins. Definitions that cannot be
// applied are reported in the Skipped list and never abort the run.
func (e *Extractor) Extract(
	ctx context.Context, period string, pages []domain.Page, defs []domain.MetricDefinition,
) (*ExtractionReport, error) {
	logger.Section("Metric Extraction")
	logger.Debug("Period: %q, pages: %d, definitions: %d", period, len(pages), len(defs))

	ordered := make([]domain.Page, len(pages))
	copy(ordered, pages)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	year := domain.YearFromPeriod(period)
	report := &ExtractionReport{Records: []domain.ExtractedMetricRecord{}}

	for _, def := range defs {
		rec, skip := extractOne(def, ordered)
		if skip != "" {
			logger.Warn("Skipping metric %q: %s", def.Name, skip)
			report.Skipped = append(report.Skipped, domain.SkippedMetric{MetricName: def.Name, Reason: skip})
			continue
		}
		if rec == nil {
			logger.Debug("No match for %q", def.Name)
			continue
		}
		rec.Period = period
		rec.Year = year
		report.Records = append(report.Records, *rec)
	}

	lock := e.periodLock(period)
	lock.Lock()
	defer lock.Unlock()

	if err := e.records.ReplacePeriod(ctx, period, report.Records); err != nil {
		return nil, fmt.Errorf("store records for %s: %w", period, err)
	}

	logger.Info("Extracted %d metrics for %s (%d skipped)", len(report.Records), period, len(report.Skipped))
	return report, nil
}

// extractOne finds the first page matching def. It returns a skip reason when
// the definition itself is unusable or the matched value is not numeric.
func extractOne(def domain.MetricDefinition, pages []domain.Page) (*domain.ExtractedMetricRecord, string) {
	re, err := compilePattern(def.Pattern)
	if err != nil {
		return nil, fmt.Sprintf("invalid pattern: %v", err)
	}
	if re.NumSubexp() < 1 {
		return nil, "pattern has no capture group"
	}

	for _, page := range pages {
		if !page.Readable() {
			continue
		}
		m := re.FindStringSubmatch(page.Text)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Sprintf("non-numeric value %q on page %d", m[1], page.Number)
		}
		return &domain.ExtractedMetricRecord{
			MetricName: def.Name,
			Value:      value,
			Unit:       def.Unit(),
			SourcePage: page.Number,
			Category:   def.Category,
		}, ""
	}
	return nil, ""
}
