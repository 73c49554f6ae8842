// Package domain defines the core business entities for finrag.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - MetricDefinition: A named extraction rule in the metric catalog
//   - ExtractedMetricRecord: A typed, page-attributed numeric fact
//   - Page: One page of plain text from a report document
//   - Passage: A paragraph of report text paired with its embedding
//   - Answer: The rendered response to a natural-language question
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
