package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService manages metric definitions.
type CatalogService struct {
	store driven.CatalogStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store driven.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// List returns all metric definitions ordered by ID.
func (s *CatalogService) List(ctx context.Context) ([]domain.MetricDefinition, error) {
	defs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return defs, nil
}

// Get retrieves a definition by ID.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.MetricDefinition, error) {
	return s.store.Get(ctx, id)
}

// Add validates and creates a definition.
func (s *CatalogService) Add(ctx context.Context, name, pattern, category string) (*domain.MetricDefinition, error) {
	def, err := newDefinition(0, name, pattern, category)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, def); err != nil {
		return nil, fmt.Errorf("add metric %q: %w", def.Name, err)
	}
	logger.Debug("Added metric %q (id=%d, unit=%s)", def.Name, def.ID, def.Unit())
	return def, nil
}

// Update overwrites a definition in place.
func (s *CatalogService) Update(ctx context.Context, id int64, name, pattern, category string) (*domain.MetricDefinition, error) {
	def, err := newDefinition(id, name, pattern, category)
	if err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, def); err != nil {
		return nil, fmt.Errorf("update metric %d: %w", id, err)
	}
	return def, nil
}

// Remove deletes a definition.
func (s *CatalogService) Remove(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove metric %d: %w", id, err)
	}
	return nil
}

// Bootstrap seeds the built-in definitions when the catalog is empty.
// A catalog that already has definitions is left untouched.
func (s *CatalogService) Bootstrap(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count metrics: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	added := 0
	for _, d := range domain.DefaultMetricDefinitions() {
		def := d
		if err := s.store.Create(ctx, &def); err != nil {
			return added, fmt.Errorf("seed metric %q: %w", def.Name, err)
		}
		added++
	}
	logger.Info("Seeded %d default metrics", added)
	return added, nil
}

// Import adds many definitions. Names already in the catalog are skipped and
// reported; any other failure stops the import.
func (s *CatalogService) Import(ctx context.Context, defs []domain.MetricDefinition) (*driving.ImportResult, error) {
	result := &driving.ImportResult{}
	for _, d := range defs {
		def, err := s.Add(ctx, d.Name, d.Pattern, d.Category)
		if errors.Is(err, domain.ErrAlreadyExists) {
			logger.Warn("Skipping duplicate metric %q", d.Name)
			result.Skipped = append(result.Skipped, d.Name)
			continue
		}
		if err != nil {
			return result, err
		}
		result.Added = append(result.Added, *def)
	}
	return result, nil
}

func newDefinition(id int64, name, pattern, category string) (*domain.MetricDefinition, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return nil, fmt.Errorf("%w: metric name is required", domain.ErrInvalidInput)
	}
	if pattern == "" {
		return nil, fmt.Errorf("%w: pattern is required", domain.ErrInvalidInput)
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("%w: pattern needs a capture group for the value", domain.ErrInvalidPattern)
	}
	return &domain.MetricDefinition{ID: id, Name: name, Pattern: pattern, Category: category}, nil
}

// compilePattern compiles a metric pattern for case-insensitive matching.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}
