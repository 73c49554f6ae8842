// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// EmbeddingService turns report passages and questions into vectors.
// The corpus records the model and dimension it was built with and refuses
// to mix vectors from a different embedder.
//
// Implementations:
//   - hashing: local feature hashing, no network
//   - ollama: nomic-embed-text, all-minilm
//   - openai: text-embedding-3-small
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds texts in order. The result has one vector per text.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536, 3072).
	// Every vector in the corpus must have this size.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping checks the backend is reachable before a corpus is opened.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
