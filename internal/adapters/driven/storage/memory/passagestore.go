package memory

import (
	"context"
	"sync"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
)

// Ensure PassageStore implements the interface.
var _ driven.PassageStore = (*PassageStore)(nil)

// PassageStore is an in-memory implementation of driven.PassageStore.
type PassageStore struct {
	mu       sync.RWMutex
	passages []domain.Passage

	// FailReplace makes ReplacePassages return this error. Used by tests.
	FailReplace error
}

// NewPassageStore creates a new in-memory passage store.
func NewPassageStore() *PassageStore {
	return &PassageStore{}
}

// LoadPassages returns a copy of the corpus ordered by position.
func (s *PassageStore) LoadPassages(_ context.Context) ([]domain.Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Passage, len(s.passages))
	copy(out, s.passages)
	return out, nil
}

// ReplacePassages replaces the whole corpus.
func (s *PassageStore) ReplacePassages(_ context.Context, passages []domain.Passage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReplace != nil {
		return s.FailReplace
	}
	s.passages = make([]domain.Passage, len(passages))
	copy(s.passages, passages)
	return nil
}
