package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"google.golang.org/genai"
)

// Embedder produces fixed-dimension text embeddings via a Genkit embedder
// (gemini-embedding-001 in production). It truncates nothing: callers are
// responsible for chunking text to a sensible size before embedding.
type Embedder struct {
	embedder  ai.Embedder
	dimension int32
}

// NewEmbedder wraps a Genkit embedder. dimension is the output
// dimensionality requested from the model and enforced on every response.
func NewEmbedder(embedder ai.Embedder, dimension int32) (*Embedder, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dimension)
	}
	return &Embedder{embedder: embedder, dimension: dimension}, nil
}

// Embed returns the embedding vector for text. Blank input is rejected
// before hitting the API; a response with the wrong dimensionality is an
// error rather than a silently corrupted vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty input text", ErrEmbedding)
	}

	dim := e.dimension
	resp, err := e.embedder.Embed(ctx, &ai.EmbedRequest{
		Input:   []*ai.Document{ai.DocumentFromText(text, nil)},
		Options: &genai.EmbedContentConfig{OutputDimensionality: &dim},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", ErrEmbedding)
	}

	vec := resp.Embeddings[0].Embedding
	if len(vec) != int(e.dimension) {
		return nil, fmt.Errorf("%w: expected %d dimensions, got %d", ErrEmbedding, e.dimension, len(vec))
	}
	return vec, nil
}
