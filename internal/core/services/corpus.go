package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driving"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
)

// Ensure Corpus implements the interface.
var _ driving.CorpusService = (*Corpus)(nil)

// embedBatchSize bounds the number of texts sent per EmbedBatch call.
const embedBatchSize = 64

// Corpus is the ordered passage collection behind semantic search.
//
// Position i of the collection holds both the passage text and its vector,
// and the vector index is rebuilt from the collection on every change.
// Readers never observe an index built from a different collection.
type Corpus struct {
	store    driven.PassageStore
	index    driven.VectorIndex
	embedder driven.EmbeddingService

	// writeMu serialises Append, Reset and Open.
	writeMu sync.Mutex

	// mu guards passages and the index/passages pairing.
	mu       sync.RWMutex
	passages []domain.Passage
}

// NewCorpus creates an empty corpus. Call Open to load persisted passages.
func NewCorpus(store driven.PassageStore, index driven.VectorIndex, embedder driven.EmbeddingService) *Corpus {
	return &Corpus{
		store:    store,
		index:    index,
		embedder: embedder,
	}
}

// Open loads the persisted corpus and builds the index.
// Passages whose vectors do not match the active embedding model are re-embedded.
func (c *Corpus) Open(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	logger.Section("Corpus Load")

	passages, err := c.store.LoadPassages(ctx)
	if err != nil {
		return fmt.Errorf("load passages: %w", err)
	}
	logger.Debug("Loaded %d passages", len(passages))

	if len(passages) == 0 {
		return nil
	}

	if c.needsReembed(passages) {
		logger.Warn("Stored vectors do not match %s (%d dims), re-embedding %d passages",
			c.embedder.ModelName(), c.embedder.Dimensions(), len(passages))
		return c.commit(ctx, passages)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.index.Build(ctx, vectorsOf(passages)); err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	c.passages = passages
	return nil
}

func (c *Corpus) needsReembed(passages []domain.Passage) bool {
	dims := c.embedder.Dimensions()
	for _, p := range passages {
		if len(p.Embedding) != dims {
			return true
		}
	}
	return false
}

// Len returns the number of passages.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.passages)
}

// Passages returns a copy of the collection.
func (c *Corpus) Passages() []domain.Passage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Passage, len(c.passages))
	copy(out, c.passages)
	return out
}

// Append adds passages to the end of the collection, re-embeds the whole
// collection and rebuilds the index. On error the corpus is unchanged.
// Returns the new corpus size.
func (c *Corpus) Append(ctx context.Context, added []domain.Passage) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	next := c.Passages()
	next = append(next, added...)
	if err := c.commit(ctx, next); err != nil {
		return 0, err
	}
	return len(next), nil
}

// Reset empties the corpus.
func (c *Corpus) Reset(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.commit(ctx, nil)
}

// commit embeds passages, rebuilds the index, persists and swaps.
// Caller must hold writeMu.
func (c *Corpus) commit(ctx context.Context, passages []domain.Passage) error {
	for i := range passages {
		passages[i].Position = i
	}

	if err := c.embedAll(ctx, passages); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.index.Build(ctx, vectorsOf(passages)); err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	if err := c.store.ReplacePassages(ctx, passages); err != nil {
		if rerr := c.index.Build(ctx, vectorsOf(c.passages)); rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore index: %w", rerr))
		}
		return fmt.Errorf("persist passages: %w", err)
	}
	c.passages = passages
	logger.Debug("Corpus committed: %d passages", len(passages))
	return nil
}

// embedAll replaces every passage's embedding with a fresh one.
func (c *Corpus) embedAll(ctx context.Context, passages []domain.Passage) error {
	if len(passages) == 0 {
		return nil
	}
	if c.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	dims := c.embedder.Dimensions()
	for start := 0; start < len(passages); start += embedBatchSize {
		end := min(start+embedBatchSize, len(passages))

		texts := make([]string, 0, end-start)
		for _, p := range passages[start:end] {
			texts = append(texts, p.Text)
		}

		vectors, err := c.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed passages: %w", err)
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("embed passages: got %d vectors for %d texts", len(vectors), len(texts))
		}
		for i, v := range vectors {
			if len(v) != dims {
				return fmt.Errorf("embed passages: %w: got %d, want %d", domain.ErrDimensionMismatch, len(v), dims)
			}
			passages[start+i].Embedding = v
		}
	}
	return nil
}

// Search returns up to k passages nearest to the query, nearest first.
// An empty corpus returns no passages and no error.
func (c *Corpus) Search(ctx context.Context, query string, k int) ([]domain.Passage, error) {
	if c.Len() == 0 {
		return nil, nil
	}
	if c.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	vec, err := c.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	hits, err := c.index.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	out := make([]domain.Passage, 0, len(hits))
	for _, h := range hits {
		if h.Position < 0 || h.Position >= len(c.passages) {
			logger.Warn("Vector hit at position %d outside corpus of %d", h.Position, len(c.passages))
			continue
		}
		out = append(out, c.passages[h.Position])
	}
	return out, nil
}

// Stats summarises the corpus.
func (c *Corpus) Stats(_ context.Context) domain.CorpusStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := domain.CorpusStats{Passages: len(c.passages)}
	if c.embedder != nil {
		stats.Dimensions = c.embedder.Dimensions()
		stats.Model = c.embedder.ModelName()
	}

	seen := make(map[string]bool)
	for _, p := range c.passages {
		if !seen[p.Period] {
			seen[p.Period] = true
			stats.Periods = append(stats.Periods, p.Period)
		}
	}
	sort.Strings(stats.Periods)
	return stats
}

func vectorsOf(passages []domain.Passage) [][]float32 {
	vectors := make([][]float32, len(passages))
	for i, p := range passages {
		vectors[i] = p.Embedding
	}
	return vectors
}
