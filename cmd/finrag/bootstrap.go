package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/config/file"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/embedding/hashing"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/embedding/ollama"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/embedding/openai"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/storage/sqlite"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/vector/flat"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/vector/qdrant"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driving/cli"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/connectors/filesystem"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/services"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/pagetext"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/pagetext/docx"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/pagetext/markdown"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/pagetext/pdf"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/pagetext/plaintext"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/postprocessors"
)

// Configuration keys read at startup.
const (
	keyEmbeddingProvider = "embedding.provider"
	keyEmbeddingModel    = "embedding.model"
	keyEmbeddingBaseURL  = "embedding.base_url"
	keyEmbeddingAPIKey   = "embedding.api_key"
	keyEmbeddingDims     = "embedding.dimensions"
	keyEmbeddingTimeout  = "embedding.timeout_seconds"
	keyEmbeddingRPS      = "embedding.requests_per_second"
	keyVectorBackend     = "vector.backend"
	keyQdrantHost        = "vector.qdrant.host"
	keyQdrantPort        = "vector.qdrant.port"
	keyQdrantCollection  = "vector.qdrant.collection"
	keyTopK              = "query.top_k"
	keyMinLength         = "chunker.min_length"
	keyWatchSettle       = "watch.settle_seconds"
)

const defaultTopK = 3

var errUnknownBackend = errors.New("unknown backend")

// closer collects cleanup functions and runs them in reverse order.
type closer []func()

func (c closer) close() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// bootstrap wires stores, adapters and services from configuration.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	cfg, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	var cleanup closer
	fail := func(err error) (*cli.Services, func(), error) {
		cleanup.close()
		return nil, nil, err
	}

	store, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		return fail(fmt.Errorf("opening store: %w", err))
	}
	cleanup = append(cleanup, func() { _ = store.Close() })
	logger.Debug("Store: %s", store.Path())

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fail(err)
	}
	cleanup = append(cleanup, func() { _ = embedder.Close() })
	if err := embedder.Ping(ctx); err != nil {
		return fail(fmt.Errorf("embedding backend %s: %w", embedder.ModelName(), err))
	}

	index, closeIndex, err := newVectorIndex(cfg)
	if err != nil {
		return fail(err)
	}
	if closeIndex != nil {
		cleanup = append(cleanup, closeIndex)
	}

	catalog := services.NewCatalogService(store.CatalogStore())
	if _, err := catalog.Bootstrap(ctx); err != nil {
		return fail(err)
	}

	corpus := services.NewCorpus(store.PassageStore(), index, embedder)
	if err := corpus.Open(ctx); err != nil {
		return fail(fmt.Errorf("opening corpus: %w", err))
	}

	chunks, err := postprocessors.DefaultPipeline(map[string]any{"min_length": cfg.GetInt(keyMinLength)})
	if err != nil {
		return fail(err)
	}

	registry := pagetext.NewRegistry(pdf.New(), plaintext.New(), markdown.New(), docx.New())
	ingest := services.NewIngestService(
		registry,
		store.CatalogStore(),
		services.NewExtractor(store.RecordStore()),
		services.NewPipeline(chunks, corpus),
	)

	topK := cfg.GetInt(keyTopK)
	if topK <= 0 {
		topK = defaultTopK
	}

	return &cli.Services{
		Catalog: catalog,
		Ingest:  ingest,
		Query:   services.NewResolver(store.RecordStore(), corpus, services.WithTopK(topK)),
		Records: services.NewRecordService(store.RecordStore()),
		Corpus:  corpus,
		Config:  cfg,
		NewWatcher: func(root string) driven.ReportWatcher {
			return filesystem.New(root, registry.Extensions())
		},
		SettleDelay: time.Duration(cfg.GetInt(keyWatchSettle)) * time.Second,
	}, cleanup.close, nil
}

// newEmbedder selects the embedding provider. Hashing is the default and
// needs no network access.
func newEmbedder(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	timeout := time.Duration(cfg.GetInt(keyEmbeddingTimeout)) * time.Second

	switch provider := strings.ToLower(cfg.GetString(keyEmbeddingProvider)); provider {
	case "", "hashing":
		return hashing.NewEmbeddingService(hashing.Config{Dimensions: cfg.GetInt(keyEmbeddingDims)}), nil
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.GetString(keyEmbeddingBaseURL),
			Model:      cfg.GetString(keyEmbeddingModel),
			Timeout:    timeout,
			Dimensions: cfg.GetInt(keyEmbeddingDims),
		}), nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			apiKey = cfg.GetString(keyEmbeddingAPIKey)
		}
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:            apiKey,
			BaseURL:           cfg.GetString(keyEmbeddingBaseURL),
			Model:             cfg.GetString(keyEmbeddingModel),
			Timeout:           timeout,
			Dimensions:        cfg.GetInt(keyEmbeddingDims),
			RequestsPerSecond: cfg.GetFloat(keyEmbeddingRPS),
		})
		if err != nil {
			return nil, fmt.Errorf("embedding provider openai: %w", err)
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("embedding provider %q: %w", provider, errUnknownBackend)
	}
}

// newVectorIndex selects the vector index backend. The returned close
// function is nil for in-process indexes.
func newVectorIndex(cfg driven.ConfigStore) (driven.VectorIndex, func(), error) {
	switch backend := strings.ToLower(cfg.GetString(keyVectorBackend)); backend {
	case "", "flat":
		return flat.New(), nil, nil
	case "qdrant":
		idx, err := qdrant.New(qdrant.Config{
			Host:       cfg.GetString(keyQdrantHost),
			Port:       cfg.GetInt(keyQdrantPort),
			Collection: cfg.GetString(keyQdrantCollection),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("vector backend qdrant: %w", err)
		}
		return idx, func() { _ = idx.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("vector backend %q: %w", backend, errUnknownBackend)
	}
}
