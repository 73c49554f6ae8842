// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PageSource: Reads a report document into page-level plain text
//   - PageSourceRegistry: Selects a page source by file extension
//   - CatalogStore: Metric definition persistence
//   - RecordStore: Extracted metric record persistence
//   - PassageStore: Passage corpus persistence (text and vectors together)
//   - PostProcessorPipeline: Splits pages into passages
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, semantic search is disabled.
//   - VectorIndex: Nearest neighbour search over the corpus. Without it, semantic search is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or page source package
package driven
