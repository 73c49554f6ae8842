package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// Returned when a metric definition is added under a name already in the catalog.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPattern indicates a metric pattern that is not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid metric pattern")

	// ErrUnsupportedType indicates a document type no page source can read.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrDocumentUnreadable indicates text extraction failed for the whole document.
	// Ingestion aborts without writing records or passages.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Semantic search and passage indexing are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrDimensionMismatch indicates vectors of different sizes were mixed.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
