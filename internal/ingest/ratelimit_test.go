package ingest

import (
	"context"
	"testing"
	"time"
)

func TestNewRateLimitedEmbedder(t *testing.T) {
	if _, err := NewRateLimitedEmbedder(nil, 1, 1); err == nil {
		t.Error("expected error for nil embedder")
	}
	if _, err := NewRateLimitedEmbedder(&fakeEmbedder{}, 0, 1); err == nil {
		t.Error("expected error for zero rps")
	}
	if _, err := NewRateLimitedEmbedder(&fakeEmbedder{}, 1, 0); err == nil {
		t.Error("expected error for zero burst")
	}
}

func TestRateLimitedEmbedDelegates(t *testing.T) {
	inner := &fakeEmbedder{}
	rl, err := NewRateLimitedEmbedder(inner, 100, 10)
	if err != nil {
		t.Fatalf("NewRateLimitedEmbedder: %v", err)
	}

	vec, err := rl.Embed(context.Background(), "Kyoto temples")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) == 0 {
		t.Error("expected a vector from the inner embedder")
	}
	if inner.calls != 1 {
		t.Errorf("inner embedder called %d times, want 1", inner.calls)
	}
}

func TestRateLimitedEmbedContextCancelled(t *testing.T) {
	// Burst 1 at a tiny rate: the second call must block, and a
	// cancelled context must release it with an error.
	rl, err := NewRateLimitedEmbedder(&fakeEmbedder{}, 0.001, 1)
	if err != nil {
		t.Fatalf("NewRateLimitedEmbedder: %v", err)
	}

	if _, err := rl.Embed(context.Background(), "first"); err != nil {
		t.Fatalf("first Embed failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := rl.Embed(ctx, "second"); err == nil {
		t.Fatal("expected error when context expires while waiting")
	}
}
