package knowledge

import (
	"context"
	"fmt"
	"log/slog"
)

// Retriever wraps a Store and returns just the ranked passage texts,
// which is what prompt assembly consumes.
type Retriever struct {
	store  *Store
	logger *slog.Logger
}

// NewRetriever creates a Retriever over the given store.
func NewRetriever(store *Store, logger *slog.Logger) (*Retriever, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{store: store, logger: logger}, nil
}

// Retrieve embeds the query, searches the store, and returns passage
// texts in descending similarity order. destination, when non-empty,
// pre-filters to that city's chunks.
//
// Zero hits returns an empty slice and a nil error: absent context is a
// normal condition, not a failure.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int, destination string) ([]string, error) {
	opts := []SearchOption{WithTopK(k)}
	if destination != "" {
		opts = append(opts, WithDestination(destination))
	}

	results, err := r.store.Search(ctx, query, opts...)
	if err != nil {
		return nil, err
	}

	passages := make([]string, 0, len(results))
	for _, res := range results {
		passages = append(passages, res.Text)
	}

	r.logger.Debug("retrieved passages", "query_length", len(query), "hits", len(passages))
	return passages, nil
}
