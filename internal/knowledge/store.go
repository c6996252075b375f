package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// ErrSearch indicates the vector search query itself failed. Zero results
// is a normal empty-slice outcome, never ErrSearch.
var ErrSearch = errors.New("vector search failed")

// EmbedTimeout bounds a single embedding call.
const EmbedTimeout = 15 * time.Second

// SearchTimeout bounds a vector search query to keep a slow index from
// blocking the request pipeline.
const SearchTimeout = 10 * time.Second

// MaxTopK caps the number of results a single search may request. With
// the 10x oversample this keeps ef_search within pgvector's 1000 limit.
const MaxTopK = 100

// oversampleFactor sizes the HNSW candidate pool relative to top-k,
// trading recall for latency against the approximate index.
const oversampleFactor = 10

// Store manages travel knowledge chunks backed by PostgreSQL + pgvector.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	pool     *pgxpool.Pool
	embedder Embedder
	logger   *slog.Logger
}

// NewStore creates a knowledge Store.
func NewStore(pool *pgxpool.Pool, embedder Embedder, logger *slog.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, embedder: embedder, logger: logger}, nil
}

// Upsert stores the given chunks and returns the number written.
// Chunks are written in one batch; a dimension mismatch on any chunk
// rejects the whole call before anything is sent to the database.
func (s *Store) Upsert(ctx context.Context, chunks []Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, c := range chunks {
		if len(c.Embedding) != int(VectorDimension) {
			return 0, fmt.Errorf("chunk %q: embedding has %d dimensions, want %d",
				c.ID, len(c.Embedding), VectorDimension)
		}
		metadataJSON, err := json.Marshal(c.Metadata)
		if err != nil {
			return 0, fmt.Errorf("marshaling metadata for chunk %q: %w", c.ID, err)
		}
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		batch.Queue(
			`INSERT INTO travel_chunks (id, text, embedding, metadata, created_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE
			 SET text = EXCLUDED.text, embedding = EXCLUDED.embedding, metadata = EXCLUDED.metadata`,
			c.ID, c.Text, pgvector.NewVector(c.Embedding), metadataJSON, createdAt,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			s.logger.Debug("closing batch results", "error", err)
		}
	}()

	for range chunks {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("inserting chunk batch: %w", err)
		}
	}

	s.logger.Debug("upserted chunks", "count", len(chunks))
	return len(chunks), nil
}

// Search embeds the query and returns the most similar chunks ordered by
// descending cosine similarity. The HNSW candidate pool is widened to
// roughly 10x the requested k before truncation.
//
// Example:
//
//	results, err := store.Search(ctx, "Tokyo cultural attractions",
//	    knowledge.WithTopK(5), knowledge.WithDestination("Tokyo"))
func (s *Store) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)
	if cfg.topK <= 0 {
		cfg.topK = 5
	}
	if cfg.topK > MaxTopK {
		cfg.topK = MaxTopK
	}

	embedCtx, cancel := context.WithTimeout(ctx, EmbedTimeout)
	defer cancel()

	vec, err := s.embedder.Embed(embedCtx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	queryCtx, cancelQuery := context.WithTimeout(ctx, SearchTimeout)
	defer cancelQuery()

	rows, err := s.searchRows(queryCtx, pgvector.NewVector(vec), cfg)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: query timeout: %v", ErrSearch, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}
	return rows, nil
}

// searchRows runs the similarity query inside a transaction so that the
// ef_search widening applies only to this statement.
func (s *Store) searchRows(ctx context.Context, vec pgvector.Vector, cfg *searchConfig) (_ []Result, retErr error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning search transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.logger.Debug("search transaction rollback", "error", rbErr)
		}
	}()

	// SET LOCAL cannot take bind parameters; cfg.topK is clamped to
	// [1, MaxTopK] above so the interpolation is a bounded integer.
	efSearch := cfg.topK * oversampleFactor
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL hnsw.ef_search = %d", efSearch)); err != nil {
		return nil, fmt.Errorf("widening candidate pool: %w", err)
	}

	var rows pgx.Rows
	if cfg.destination != "" {
		rows, err = tx.Query(ctx,
			`SELECT text, metadata, 1 - (embedding <=> $1) AS score
			 FROM travel_chunks
			 WHERE lower(metadata->>'destination') = lower($2)
			 ORDER BY embedding <=> $1
			 LIMIT $3`,
			vec, cfg.destination, cfg.topK,
		)
	} else {
		rows, err = tx.Query(ctx,
			`SELECT text, metadata, 1 - (embedding <=> $1) AS score
			 FROM travel_chunks
			 ORDER BY embedding <=> $1
			 LIMIT $2`,
			vec, cfg.topK,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}

	results, err := s.scanResults(rows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing search transaction: %w", err)
	}
	return results, nil
}

func (s *Store) scanResults(rows pgx.Rows) ([]Result, error) {
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			text         string
			metadataJSON []byte
			score        float64
		)
		if err := rows.Scan(&text, &metadataJSON, &score); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}

		var metadata Metadata
		if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
			s.logger.Warn("failed to parse chunk metadata", "error", err)
		}

		results = append(results, Result{Text: text, Metadata: metadata, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading search rows: %w", err)
	}
	return results, nil
}

// CountByDestination returns the number of stored chunks whose metadata
// destination matches city, case-insensitively. Used as the existence
// check before auto-ingestion.
func (s *Store) CountByDestination(ctx context.Context, city string) (int, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return 0, nil
	}

	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM travel_chunks
		 WHERE lower(metadata->>'destination') = lower($1)`,
		city,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting chunks for %q: %w", city, err)
	}
	return int(count), nil
}

// Count returns the total number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM travel_chunks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return int(count), nil
}
