package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"a question about the ingested financial reports"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer    string   `json:"answer"`
	Kind      string   `json:"kind"`
	Intent    string   `json:"intent,omitempty"`
	FollowUps []string `json:"follow_ups,omitempty"`
}

// IngestInput is the input schema for the ingest_report tool.
type IngestInput struct {
	Path   string `json:"path" jsonschema:"path to a PDF or text report on the local machine"`
	Period string `json:"period,omitempty" jsonschema:"period label such as Q3FY24 (default: file name)"`
}

// IngestOutput is the output schema for the ingest_report tool.
type IngestOutput struct {
	Period        string          `json:"period"`
	Pages         int             `json:"pages"`
	Metrics       []MetricOutput  `json:"metrics"`
	Skipped       []SkippedOutput `json:"skipped,omitempty"`
	PassagesAdded int             `json:"passages_added"`
	CorpusSize    int             `json:"corpus_size"`
}

// MetricOutput is one extracted metric value.
type MetricOutput struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Page   int     `json:"page"`
	Period string  `json:"period"`
}

// SkippedOutput is a metric definition that could not be applied.
type SkippedOutput struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ListMetricsInput is the (empty) input schema for the list_metrics tool.
type ListMetricsInput struct{}

// ListMetricsOutput is the output schema for the list_metrics tool.
type ListMetricsOutput struct {
	Metrics []DefinitionOutput `json:"metrics"`
	Count   int                `json:"count"`
}

// DefinitionOutput is one metric definition.
type DefinitionOutput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

// AddMetricInput is the input schema for the add_metric tool.
type AddMetricInput struct {
	Name     string `json:"name" jsonschema:"unique metric name"`
	Pattern  string `json:"pattern" jsonschema:"regular expression whose first capture group is the numeric value"`
	Category string `json:"category,omitempty" jsonschema:"category such as Financial or Expense"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question about ingested financial reports",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_report",
		Description: "Ingest a quarterly report: extract metrics and index its passages",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_metrics",
		Description: "List the metric catalog used for extraction",
	}, s.handleListMetrics)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_metric",
		Description: "Add a metric definition to the catalog",
	}, s.handleAddMetric)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	ans, err := s.ports.Query.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:    ans.Text,
		Kind:      string(ans.Kind),
		Intent:    ans.Intent,
		FollowUps: ans.FollowUps,
	}, nil
}

// handleIngest handles the ingest_report tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Ingest == nil {
		return nil, IngestOutput{}, fmt.Errorf("ingest: %w", ErrUnavailable)
	}

	res, err := s.ports.Ingest.Ingest(ctx, input.Path, input.Period)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	output := IngestOutput{
		Period:        res.Period,
		Pages:         res.Pages,
		Metrics:       make([]MetricOutput, len(res.Records)),
		PassagesAdded: res.PassagesAdded,
		CorpusSize:    res.CorpusSize,
	}
	for i, r := range res.Records {
		output.Metrics[i] = metricOutput(r)
	}
	for _, sk := range res.Skipped {
		output.Skipped = append(output.Skipped, SkippedOutput{Name: sk.MetricName, Reason: sk.Reason})
	}

	return nil, output, nil
}

// handleListMetrics handles the list_metrics tool invocation.
func (s *Server) handleListMetrics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListMetricsInput,
) (*mcp.CallToolResult, ListMetricsOutput, error) {
	if s.ports.Catalog == nil {
		return nil, ListMetricsOutput{}, fmt.Errorf("list metrics: %w", ErrUnavailable)
	}

	defs, err := s.ports.Catalog.List(ctx)
	if err != nil {
		return nil, ListMetricsOutput{}, err
	}

	output := ListMetricsOutput{
		Metrics: make([]DefinitionOutput, len(defs)),
		Count:   len(defs),
	}
	for i, d := range defs {
		output.Metrics[i] = definitionOutput(d)
	}
	return nil, output, nil
}

// handleAddMetric handles the add_metric tool invocation.
func (s *Server) handleAddMetric(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddMetricInput,
) (*mcp.CallToolResult, DefinitionOutput, error) {
	if s.ports.Catalog == nil {
		return nil, DefinitionOutput{}, fmt.Errorf("add metric: %w", ErrUnavailable)
	}

	def, err := s.ports.Catalog.Add(ctx, input.Name, input.Pattern, input.Category)
	if err != nil {
		return nil, DefinitionOutput{}, err
	}
	return nil, definitionOutput(*def), nil
}

func metricOutput(r domain.ExtractedMetricRecord) MetricOutput {
	return MetricOutput{Name: r.MetricName, Value: r.Value, Unit: r.Unit, Page: r.SourcePage, Period: r.Period}
}

func definitionOutput(d domain.MetricDefinition) DefinitionOutput {
	return DefinitionOutput{ID: d.ID, Name: d.Name, Pattern: d.Pattern, Category: d.Category, Unit: d.Unit()}
}
