package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	mu     sync.RWMutex
	nextID int64
	defs   map[int64]domain.MetricDefinition
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		nextID: 1,
		defs:   make(map[int64]domain.MetricDefinition),
	}
}

// nameTaken reports whether another definition already uses name.
// Caller must hold the lock.
func (s *CatalogStore) nameTaken(name string, except int64) bool {
	for id, d := range s.defs {
		if id != except && d.Name == name {
			return true
		}
	}
	return false
}

// Create inserts a definition and sets its ID.
func (s *CatalogStore) Create(_ context.Context, def *domain.MetricDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(def.Name, 0) {
		return domain.ErrAlreadyExists
	}
	def.ID = s.nextID
	s.nextID++
	s.defs[def.ID] = *def
	return nil
}

// Get retrieves a definition by ID.
func (s *CatalogStore) Get(_ context.Context, id int64) (*domain.MetricDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.defs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

// Update overwrites an existing definition.
func (s *CatalogStore) Update(_ context.Context, def *domain.MetricDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.defs[def.ID]; !ok {
		return domain.ErrNotFound
	}
	if s.nameTaken(def.Name, def.ID) {
		return domain.ErrAlreadyExists
	}
	s.defs[def.ID] = *def
	return nil
}

// Delete removes a definition.
func (s *CatalogStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.defs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.defs, id)
	return nil
}

// List returns all definitions ordered by ID.
func (s *CatalogStore) List(_ context.Context) ([]domain.MetricDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	defs := make([]domain.MetricDefinition, 0, len(s.defs))
	for _, d := range s.defs {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}

// Count returns the number of definitions.
func (s *CatalogStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.defs), nil
}
