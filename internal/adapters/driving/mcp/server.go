package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server exposes the query, ingest and catalog services as MCP tools and
// the extracted records as MCP resources.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a server over ports. Only the query service is required.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(&mcp.Implementation{Name: "finrag", Version: Version}, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("MCP: serving over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the HTTP routes: the streamable MCP endpoint at / and
// /healthz reporting the corpus size.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.health)
	mux.Handle("/", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil))
	return mux
}

type healthOutput struct {
	Status   string   `json:"status"`
	Version  string   `json:"version"`
	Passages int      `json:"passages"`
	Periods  []string `json:"periods"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	out := healthOutput{Status: "ok", Version: Version, Periods: []string{}}
	if s.ports.Corpus != nil {
		stats := s.ports.Corpus.Stats(r.Context())
		out.Passages = stats.Passages
		if stats.Periods != nil {
			out.Periods = stats.Periods
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// RunHTTP serves Handler on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("MCP: shutdown: %v", err)
		}
	}()

	logger.Debug("MCP: serving HTTP on %s", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
