// Package knowledge manages the travel knowledge base: chunked guide text
// with vector embeddings in PostgreSQL + pgvector.
//
// The Store persists chunk records and performs cosine-similarity search;
// the Retriever projects search results down to ranked passage texts for
// prompt assembly. Both are safe for concurrent use.
//
// Document flow:
//
//	guide text + metadata
//	     |
//	     v
//	ingest.Ingestor (chunk + embed)
//	     |
//	     v
//	Store.Upsert (travel_chunks table)
//	     |
//	     | (when planning)
//	     v
//	Retriever.Retrieve (query embedding + vector search)
//	     |
//	     v
//	ranked passages for the generation prompt
package knowledge

import (
	"context"
	"time"
)

// VectorDimension is the embedding dimension stored in the travel_chunks
// table. All stored vectors and all query vectors must have this dimension;
// a mismatched record would be unsearchable.
const VectorDimension int32 = 768

// Embedder converts text to a fixed-dimension vector. Document text and
// query text go through the same contract so cosine similarity between the
// two is meaningful.
//
// Implementations do not retry or batch; callers needing throughput
// wrap the interface (see ingest.RateLimitedEmbedder).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Metadata tags a stored chunk. A typed struct instead of an open map
// catches malformed filters at compile time rather than query time.
type Metadata struct {
	Type        string `json:"type,omitempty"`
	Destination string `json:"destination,omitempty"`
	Country     string `json:"country,omitempty"`
	Category    string `json:"category,omitempty"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	Source      string `json:"source,omitempty"`
	GeneratedBy string `json:"generated_by,omitempty"`
}

// Chunk is one stored knowledge record. Chunks are immutable once written;
// re-ingestion adds new chunks rather than replacing old ones.
type Chunk struct {
	ID        string
	Text      string
	Embedding []float32
	Metadata  Metadata
	CreatedAt time.Time
}

// Result is a single search hit with its cosine-similarity score.
type Result struct {
	Text     string
	Metadata Metadata
	Score    float64
}

// SearchOption configures search behavior using functional options.
type SearchOption func(*searchConfig)

type searchConfig struct {
	topK        int
	destination string
}

// WithTopK sets the maximum number of results to return. Default is 5.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		c.topK = k
	}
}

// WithDestination restricts search to chunks whose metadata destination
// matches city (case-insensitive exact match).
func WithDestination(city string) SearchOption {
	return func(c *searchConfig) {
		c.destination = city
	}
}

func buildSearchConfig(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{topK: 5}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
