package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
)

// mockEmbedder is a simple mock implementation of ai.Embedder for testing.
type mockEmbedder struct {
	dim int
	err error
}

func (m *mockEmbedder) Name() string { return "mock-embedder" }

func (m *mockEmbedder) Register(_ api.Registry) {}

func (m *mockEmbedder) Embed(_ context.Context, req *ai.EmbedRequest) (*ai.EmbedResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	embeddings := make([]*ai.Embedding, len(req.Input))
	for i := range req.Input {
		vec := make([]float32, m.dim)
		for j := range vec {
			vec[j] = float32(j)
		}
		embeddings[i] = &ai.Embedding{Embedding: vec}
	}
	return &ai.EmbedResponse{Embeddings: embeddings}, nil
}

func TestNewEmbedder(t *testing.T) {
	if _, err := NewEmbedder(nil, 768); err == nil {
		t.Error("expected error for nil embedder")
	}
	if _, err := NewEmbedder(&mockEmbedder{dim: 768}, 0); err == nil {
		t.Error("expected error for zero dimension")
	}
	if _, err := NewEmbedder(&mockEmbedder{dim: 768}, 768); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEmbed(t *testing.T) {
	ctx := context.Background()

	e, err := NewEmbedder(&mockEmbedder{dim: 768}, 768)
	if err != nil {
		t.Fatalf("NewEmbedder: %v", err)
	}

	vec, err := e.Embed(ctx, "Tokyo travel guide")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 768 {
		t.Errorf("expected 768 dimensions, got %d", len(vec))
	}
}

func TestEmbedEmptyInput(t *testing.T) {
	e, err := NewEmbedder(&mockEmbedder{dim: 768}, 768)
	if err != nil {
		t.Fatalf("NewEmbedder: %v", err)
	}

	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := e.Embed(context.Background(), input); !errors.Is(err, ErrEmbedding) {
			t.Errorf("input %q: expected ErrEmbedding, got %v", input, err)
		}
	}
}

func TestEmbedDimensionMismatch(t *testing.T) {
	e, err := NewEmbedder(&mockEmbedder{dim: 3}, 768)
	if err != nil {
		t.Fatalf("NewEmbedder: %v", err)
	}

	_, err = e.Embed(context.Background(), "some text")
	if !errors.Is(err, ErrEmbedding) {
		t.Errorf("expected ErrEmbedding for dimension mismatch, got %v", err)
	}
}

func TestEmbedServiceError(t *testing.T) {
	e, err := NewEmbedder(&mockEmbedder{err: errors.New("quota exhausted")}, 768)
	if err != nil {
		t.Fatalf("NewEmbedder: %v", err)
	}

	_, err = e.Embed(context.Background(), "some text")
	if !errors.Is(err, ErrEmbedding) {
		t.Errorf("expected ErrEmbedding, got %v", err)
	}
}
