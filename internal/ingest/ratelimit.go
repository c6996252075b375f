package ingest

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/wandergenie/wandergenie/internal/knowledge"
)

// RateLimitedEmbedder throttles an embedder with a token bucket so bulk
// ingestion stays under the embedding API's request quota. Wait blocks
// until a token is available or the context is cancelled.
type RateLimitedEmbedder struct {
	inner   knowledge.Embedder
	limiter *rate.Limiter
}

// NewRateLimitedEmbedder wraps inner with a limit of rps requests per
// second and a burst of burst.
func NewRateLimitedEmbedder(inner knowledge.Embedder, rps float64, burst int) (*RateLimitedEmbedder, error) {
	if inner == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if rps <= 0 {
		return nil, fmt.Errorf("rps must be positive, got %v", rps)
	}
	if burst < 1 {
		return nil, fmt.Errorf("burst must be at least 1, got %d", burst)
	}
	return &RateLimitedEmbedder{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// Embed waits for rate-limit clearance, then delegates to the wrapped
// embedder.
func (r *RateLimitedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return r.inner.Embed(ctx, text)
}
