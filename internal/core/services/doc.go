// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The ingestion path runs the structured extractor and the passage
// pipeline side by side; the query path is handled by the Resolver,
// which tries structured intents before falling back to the corpus.
package services
