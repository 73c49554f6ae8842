package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can ask
questions, ingest reports and browse extracted records.

By default the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead, for the MCP Inspector
or remote access.

Examples:
  # Stdio mode (default)
  finrag mcp serve

  # HTTP mode
  finrag mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "finrag": {
        "command": "/path/to/finrag",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(mcpPorts())
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

func mcpPorts() *mcp.Ports {
	return &mcp.Ports{
		Query:   queryService,
		Catalog: catalogService,
		Ingest:  ingestService,
		Records: recordService,
		Corpus:  corpusService,
	}
}
