// Package mcp provides an MCP (Model Context Protocol) server adapter for finrag.
// It lets AI assistants ask questions about ingested reports and manage the
// metric catalog.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")

// ErrUnavailable is returned by tools whose backing service was not provided.
var ErrUnavailable = errors.New("mcp: service not available")
