package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wandergenie/wandergenie/internal/knowledge"
)

// Upserter persists embedded chunks. *knowledge.Store satisfies it.
type Upserter interface {
	Upsert(ctx context.Context, chunks []knowledge.Chunk) (int, error)
}

// Ingestor runs the full document pipeline: chunk the text, embed each
// chunk, and bulk-upsert the results. One Ingestor serves all documents;
// it holds no per-document state.
type Ingestor struct {
	embedder knowledge.Embedder
	store    Upserter
	size     int
	overlap  int
	logger   *slog.Logger
}

// NewIngestor builds an Ingestor with the given chunking parameters.
func NewIngestor(embedder knowledge.Embedder, store Upserter, size, overlap int, logger *slog.Logger) (*Ingestor, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("overlap must be in [0, size), got %d with size %d", overlap, size)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{embedder: embedder, store: store, size: size, overlap: overlap, logger: logger}, nil
}

// Ingest chunks, embeds, and stores a document. Every stored chunk
// carries the document metadata plus its position (ChunkIndex,
// TotalChunks). Returns the number of chunks stored.
//
// Embedding is sequential: documents are small (a city guide yields a
// handful of chunks) and the embedding API is the bottleneck either way.
// A mid-document embedding failure aborts the whole ingest; upsert is
// idempotent, so re-running after a partial failure is safe.
func (in *Ingestor) Ingest(ctx context.Context, text string, meta knowledge.Metadata) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("document text is empty")
	}

	parts, err := Chunk(text, in.size, in.overlap)
	if err != nil {
		return 0, fmt.Errorf("chunking document: %w", err)
	}

	now := time.Now().UTC()
	chunks := make([]knowledge.Chunk, 0, len(parts))
	for i, part := range parts {
		vec, err := in.embedder.Embed(ctx, part)
		if err != nil {
			return 0, fmt.Errorf("embedding chunk %d/%d: %w", i+1, len(parts), err)
		}

		m := meta
		m.ChunkIndex = i
		m.TotalChunks = len(parts)

		chunks = append(chunks, knowledge.Chunk{
			ID:        uuid.New().String(),
			Text:      part,
			Embedding: vec,
			Metadata:  m,
			CreatedAt: now,
		})
	}

	n, err := in.store.Upsert(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("storing chunks: %w", err)
	}

	in.logger.Info("document ingested",
		"destination", meta.Destination,
		"chunks", n)
	return n, nil
}
