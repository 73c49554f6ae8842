package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for finrag resources.
	uriScheme = "finrag://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "periods",
		Name:        "periods",
		Description: "Reporting periods with extracted metrics",
		MIMEType:    "application/json",
	}, s.handlePeriodsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpus",
		Name:        "corpus",
		Description: "Passage corpus statistics",
		MIMEType:    "application/json",
	}, s.handleCorpusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "records/{period}",
		Name:        "period-records",
		Description: "Metrics extracted for one reporting period",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)
}

// handlePeriodsResource returns the list of periods.
func (s *Server) handlePeriodsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Records == nil {
		return jsonResult(req.Params.URI, []string{})
	}

	periods, err := s.ports.Records.Periods(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}
	if periods == nil {
		periods = []string{}
	}
	return jsonResult(req.Params.URI, periods)
}

// handleCorpusResource returns corpus statistics.
func (s *Server) handleCorpusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Corpus == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats := s.ports.Corpus.Stats(ctx)

	type corpusInfo struct {
		Passages   int      `json:"passages"`
		Periods    []string `json:"periods"`
		Dimensions int      `json:"dimensions"`
		Model      string   `json:"model"`
	}
	return jsonResult(req.Params.URI, corpusInfo{
		Passages:   stats.Passages,
		Periods:    stats.Periods,
		Dimensions: stats.Dimensions,
		Model:      stats.Model,
	})
}

// handleRecordsResource returns the records of one period.
func (s *Server) handleRecordsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Records == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract period from URI: finrag://records/{period}
	period := extractPeriod(req.Params.URI)
	if period == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.Records.List(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	if len(records) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	metrics := make([]MetricOutput, len(records))
	for i, r := range records {
		metrics[i] = metricOutput(r)
	}
	return jsonResult(req.Params.URI, metrics)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPeriod extracts the period from a URI like finrag://records/{period}.
func extractPeriod(uri string) string {
	const prefix = uriScheme + "records/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	period := strings.TrimPrefix(uri, prefix)
	if strings.Contains(period, "/") {
		return ""
	}
	return period
}
