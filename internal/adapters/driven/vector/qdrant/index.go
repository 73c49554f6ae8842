// Package qdrant provides a vector index backed by a Qdrant collection.
package qdrant

import (
	"context"
	"fmt"
	"sort"
	"sync"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default connection settings.
const (
	DefaultHost       = "localhost"
	DefaultPort       = 6334
	DefaultCollection = "finrag_passages"

	upsertBatchSize = 256
)

// Config holds configuration for the Qdrant index.
type Config struct {
	Host       string
	Port       int
	Collection string
}

// Index stores passage vectors as Qdrant points keyed by corpus position.
// The collection uses Euclid distance; Build drops and recreates it.
type Index struct {
	conn        *grpc.ClientConn
	collections pb.CollectionsClient
	points      pb.PointsClient
	collection  string

	mu        sync.RWMutex
	size      int
	dimension int
}

// New connects to Qdrant over gRPC.
func New(cfg Config) (*Index, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("%w: qdrant connect %s: %v", domain.ErrVectorIndexUnavailable, addr, err)
	}

	idx := NewWithClients(pb.NewCollectionsClient(conn), pb.NewPointsClient(conn), cfg.Collection)
	idx.conn = conn
	return idx, nil
}

// NewWithClients creates an index over existing gRPC clients.
func NewWithClients(collections pb.CollectionsClient, points pb.PointsClient, collection string) *Index {
	return &Index{
		collections: collections,
		points:      points,
		collection:  collection,
	}
}

// Build drops the collection and uploads vectors as points 0..n-1.
func (idx *Index) Build(ctx context.Context, vectors [][]float32) error {
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != dim || dim == 0 {
			return fmt.Errorf("vector %d: %w: got %d, want %d", i, domain.ErrDimensionMismatch, len(v), dim)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, err := idx.collections.Delete(ctx, &pb.DeleteCollection{CollectionName: idx.collection}); err != nil {
		return fmt.Errorf("qdrant delete collection: %w", err)
	}
	idx.size, idx.dimension = 0, 0

	if len(vectors) == 0 {
		return nil
	}

	_, err := idx.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: idx.collection,
		VectorsConfig: &pb.VectorsConfig{Config: &pb.VectorsConfig_Params{
			Params: &pb.VectorParams{Size: uint64(dim), Distance: pb.Distance_Euclid},
		}},
	})
	if err != nil {
		return fmt.Errorf("qdrant create collection: %w", err)
	}

	wait := true
	for start := 0; start < len(vectors); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(vectors))
		points := make([]*pb.PointStruct, 0, end-start)
		for i := start; i < end; i++ {
			points = append(points, &pb.PointStruct{
				Id:      &pb.PointId{PointIdOptions: &pb.PointId_Num{Num: uint64(i)}},
				Vectors: &pb.Vectors{VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: vectors[i]}}},
			})
		}
		if _, err := idx.points.Upsert(ctx, &pb.UpsertPoints{
			CollectionName: idx.collection,
			Wait:           &wait,
			Points:         points,
		}); err != nil {
			return fmt.Errorf("qdrant upsert: %w", err)
		}
	}

	idx.size, idx.dimension = len(vectors), dim
	logger.Debug("Qdrant collection %s rebuilt with %d points", idx.collection, len(vectors))
	return nil
}

// Search returns the k nearest points. Qdrant reports Euclidean distance;
// it is squared here so both index backends agree.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.size == 0 || k <= 0 {
		return []driven.VectorHit{}, nil
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("query: %w: got %d, want %d", domain.ErrDimensionMismatch, len(query), idx.dimension)
	}

	resp, err := idx.points.Search(ctx, &pb.SearchPoints{
		CollectionName: idx.collection,
		Vector:         query,
		Limit:          uint64(k),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search: %w", err)
	}

	hits := make([]driven.VectorHit, 0, len(resp.GetResult()))
	for _, pt := range resp.GetResult() {
		hits = append(hits, driven.VectorHit{
			Position: int(pt.GetId().GetNum()),
			Distance: pt.GetScore() * pt.GetScore(),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Position < hits[j].Position
	})
	return hits, nil
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.size
}

// Close closes the gRPC connection when the index owns it.
func (idx *Index) Close() error {
	if idx.conn == nil {
		return nil
	}
	return idx.conn.Close()
}
