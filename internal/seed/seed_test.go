package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wandergenie/wandergenie/internal/knowledge"
	"github.com/wandergenie/wandergenie/internal/log"
)

type fakeIngestor struct {
	metas  []knowledge.Metadata
	failOn string
}

func (f *fakeIngestor) Ingest(_ context.Context, text string, meta knowledge.Metadata) (int, error) {
	if text == "" {
		return 0, errors.New("empty text")
	}
	if f.failOn == meta.Destination {
		return 0, errors.New("ingest failed")
	}
	f.metas = append(f.metas, meta)
	return 2, nil
}

func TestSeed(t *testing.T) {
	ing := &fakeIngestor{}
	total, err := Seed(context.Background(), ing, log.NewNop())
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if total != 6 {
		t.Errorf("expected 6 chunks, got %d", total)
	}

	wantCities := []string{"Tokyo", "Paris", "New York City"}
	if len(ing.metas) != len(wantCities) {
		t.Fatalf("expected %d documents, got %d", len(wantCities), len(ing.metas))
	}
	for i, m := range ing.metas {
		if m.Destination != wantCities[i] {
			t.Errorf("document %d destination %q, want %q", i, m.Destination, wantCities[i])
		}
		if m.Type != "city_guide" || m.Category != "overview" || m.Source != "seed" {
			t.Errorf("document %d mistagged: %+v", i, m)
		}
	}
}

func TestSeedStopsOnFailure(t *testing.T) {
	ing := &fakeIngestor{failOn: "Paris"}
	total, err := Seed(context.Background(), ing, log.NewNop())
	if err == nil {
		t.Fatal("expected error when an ingest fails")
	}
	if total != 2 {
		t.Errorf("expected 2 chunks before the failure, got %d", total)
	}
}

func TestSeedNilIngestor(t *testing.T) {
	if _, err := Seed(context.Background(), nil, log.NewNop()); err == nil {
		t.Fatal("expected error for nil ingestor")
	}
}

func TestDestinations(t *testing.T) {
	got := Destinations()
	if len(got) != 3 {
		t.Fatalf("expected 3 destinations, got %d", len(got))
	}
}

func TestPopular(t *testing.T) {
	got := Popular()
	if len(got) == 0 {
		t.Fatal("expected a non-empty popular list")
	}
	seen := make(map[string]bool, len(got))
	for _, dest := range got {
		if !strings.Contains(dest, ", ") {
			t.Errorf("destination %q is not in City, Country form", dest)
		}
		if seen[dest] {
			t.Errorf("duplicate destination %q", dest)
		}
		seen[dest] = true
	}

	// Callers may sort or filter their copy.
	got[0] = "mutated"
	if Popular()[0] == "mutated" {
		t.Error("Popular returned a shared slice")
	}
}
