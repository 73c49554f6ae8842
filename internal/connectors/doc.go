// Package connectors provides the sources reports arrive from.
//
// The filesystem connector watches a local folder so new quarterly reports
// are ingested as soon as they are saved.
package connectors
