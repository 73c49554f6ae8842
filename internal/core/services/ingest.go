package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService reads a report once and feeds it to the extractor and the
// passage pipeline.
type IngestService struct {
	sources   driven.PageSourceRegistry
	catalog   driven.CatalogStore
	extractor *Extractor
	pipeline  *Pipeline

	// mu serialises ingestion; one report is processed at a time.
	mu sync.Mutex
}

// NewIngestService creates a new ingestion service.
func NewIngestService(
	sources driven.PageSourceRegistry,
	catalog driven.CatalogStore,
	extractor *Extractor,
	pipeline *Pipeline,
) *IngestService {
	return &IngestService{
		sources:   sources,
		catalog:   catalog,
		extractor: extractor,
		pipeline:  pipeline,
	}
}

// Supports reports whether a page source is registered for the file's extension.
func (s *IngestService) Supports(path string) bool {
	_, err := s.sources.Get(path)
	return err == nil
}

// PeriodFromPath derives the default period label from a report's file name.
func PeriodFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Ingest reads the report and runs extraction and chunking concurrently.
// If the document has no readable page nothing is written.
func (s *IngestService) Ingest(ctx context.Context, path, period string) (*domain.IngestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Section("Ingest")

	period = strings.TrimSpace(period)
	if period == "" {
		period = PeriodFromPath(path)
	}
	logger.Debug("File: %s, period: %q", path, period)

	source, err := s.sources.Get(path)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", path, err)
	}

	pages, err := source.Pages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", path, err)
	}
	if !anyReadable(pages) {
		return nil, fmt.Errorf("ingest %s: %w", path, domain.ErrDocumentUnreadable)
	}
	logger.Debug("Read %d pages with %s", len(pages), source.Name())

	defs, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	result := &domain.IngestResult{Path: path, Period: period, Pages: len(pages)}

	var wg sync.WaitGroup
	var extractErr, pipelineErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		report, err := s.extractor.Extract(ctx, period, pages, defs)
		if err != nil {
			extractErr = fmt.Errorf("extract metrics: %w", err)
			return
		}
		result.Records = report.Records
		result.Skipped = report.Skipped
	}()
	go func() {
		defer wg.Done()
		added, size, err := s.pipeline.Run(ctx, period, pages)
		if err != nil {
			pipelineErr = fmt.Errorf("index passages: %w", err)
			return
		}
		result.PassagesAdded = added
		result.CorpusSize = size
	}()
	wg.Wait()

	if err := errors.Join(extractErr, pipelineErr); err != nil {
		logger.Warn("Ingest of %s incomplete: %v", path, err)
		return result, err
	}

	logger.Info("Ingested %s as %s: %d records, %d passages", path, period, len(result.Records), result.PassagesAdded)
	return result, nil
}

func anyReadable(pages []domain.Page) bool {
	for _, p := range pages {
		if p.Readable() {
			return true
		}
	}
	return false
}
