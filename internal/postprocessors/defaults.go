package postprocessors

import (
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/postprocessors/chunker"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
}

// DefaultPipeline builds the standard page-to-passage pipeline.
// cfg holds the chunker settings (see buildChunker).
func DefaultPipeline(cfg map[string]any) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)

	c, err := r.Build("chunker", cfg)
	if err != nil {
		return nil, err
	}
	return NewPipeline(c), nil
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - min_length (int): Minimum paragraph length in characters (default: 0)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if n := getIntFromConfig(cfg, "min_length"); n > 0 {
		opts = append(opts, chunker.WithMinLength(n))
	}

	return chunker.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
