package planner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/wandergenie/wandergenie/internal/knowledge"
	"github.com/wandergenie/wandergenie/internal/log"
)

// fakeGenerator returns a canned guide and counts calls.
type fakeGenerator struct {
	calls atomic.Int64
	delay chan struct{} // when non-nil, Complete blocks until closed
	err   error
	text  string
}

func (f *fakeGenerator) Complete(_ context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	if f.delay != nil {
		<-f.delay
	}
	if f.err != nil {
		return "", f.err
	}
	if f.text != "" {
		return f.text, nil
	}
	return "A comprehensive guide. Attractions cost money. Transit exists.", nil
}

// fakeIngestor records ingested documents and marks the destination as
// present in the paired counter.
type fakeIngestor struct {
	mu      sync.Mutex
	docs    []knowledge.Metadata
	counter *fakeCounter
	err     error
}

func (f *fakeIngestor) Ingest(_ context.Context, text string, meta knowledge.Metadata) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	f.docs = append(f.docs, meta)
	f.mu.Unlock()
	if f.counter != nil {
		f.counter.set(meta.Destination, 3)
	}
	return 3, nil
}

// fakeCounter is an in-memory CountByDestination.
type fakeCounter struct {
	mu     sync.Mutex
	calls  atomic.Int64
	counts map[string]int
	err    error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: make(map[string]int)}
}

func (f *fakeCounter) set(city string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[strings.ToLower(city)] = n
}

func (f *fakeCounter) CountByDestination(_ context.Context, city string) (int, error) {
	f.calls.Add(1)
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[strings.ToLower(city)], nil
}

func newTestBootstrapper(t *testing.T, gen *fakeGenerator) (*Bootstrapper, *fakeIngestor, *fakeCounter) {
	t.Helper()
	counter := newFakeCounter()
	ing := &fakeIngestor{counter: counter}
	b, err := NewBootstrapper(gen, ing, counter, log.NewNop())
	if err != nil {
		t.Fatalf("NewBootstrapper: %v", err)
	}
	return b, ing, counter
}

func TestEnsureDestinationSkipsKnown(t *testing.T) {
	gen := &fakeGenerator{}
	b, _, counter := newTestBootstrapper(t, gen)
	counter.set("Tokyo", 12)

	if err := b.EnsureDestination(context.Background(), "Tokyo, Japan"); err != nil {
		t.Fatalf("EnsureDestination: %v", err)
	}
	if gen.calls.Load() != 0 {
		t.Errorf("generator called %d times for a known destination", gen.calls.Load())
	}
}

func TestEnsureDestinationBootstrapsUnknown(t *testing.T) {
	gen := &fakeGenerator{}
	b, ing, _ := newTestBootstrapper(t, gen)

	if err := b.EnsureDestination(context.Background(), "Lisbon, Portugal"); err != nil {
		t.Fatalf("EnsureDestination: %v", err)
	}
	if gen.calls.Load() != 1 {
		t.Fatalf("generator called %d times, want 1", gen.calls.Load())
	}

	ing.mu.Lock()
	defer ing.mu.Unlock()
	if len(ing.docs) != 1 {
		t.Fatalf("expected 1 ingested document, got %d", len(ing.docs))
	}
	meta := ing.docs[0]
	if meta.Destination != "Lisbon" || meta.Country != "Portugal" {
		t.Errorf("destination split wrong: %+v", meta)
	}
	if meta.Type != "city_guide" || meta.Category != "overview" || meta.GeneratedBy != "auto" {
		t.Errorf("auto-generated guide mistagged: %+v", meta)
	}
}

func TestEnsureDestinationCountryDefaults(t *testing.T) {
	gen := &fakeGenerator{}
	b, ing, _ := newTestBootstrapper(t, gen)

	if err := b.EnsureDestination(context.Background(), "Reykjavik"); err != nil {
		t.Fatalf("EnsureDestination: %v", err)
	}
	ing.mu.Lock()
	defer ing.mu.Unlock()
	if ing.docs[0].Country != "Unknown" {
		t.Errorf("country should default to Unknown, got %q", ing.docs[0].Country)
	}
}

func TestEnsureDestinationConcurrentSingleflight(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := &fakeGenerator{delay: make(chan struct{})}
	b, _, counter := newTestBootstrapper(t, gen)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Mixed casing and suffixes: all the same city key.
			dests := []string{"Tokyo, Japan", "tokyo", "TOKYO, Japan"}
			errs[i] = b.EnsureDestination(context.Background(), dests[i%len(dests)])
		}(i)
	}

	// Hold the generator until every worker has passed the existence
	// check, so all of them join the same in-flight generation.
	for counter.calls.Load() < workers {
		time.Sleep(time.Millisecond)
	}
	close(gen.delay)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("worker %d: %v", i, err)
		}
	}
	if got := gen.calls.Load(); got != 1 {
		t.Errorf("generator called %d times under concurrent requests, want 1", got)
	}
}

func TestEnsureDestinationGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	b, _, _ := newTestBootstrapper(t, gen)

	if err := b.EnsureDestination(context.Background(), "Oslo, Norway"); err == nil {
		t.Fatal("expected error when guide generation fails")
	}
}

func TestEnsureDestinationEmptyCity(t *testing.T) {
	b, _, _ := newTestBootstrapper(t, &fakeGenerator{})
	if err := b.EnsureDestination(context.Background(), "  , Japan"); err == nil {
		t.Fatal("expected error for empty city")
	}
}

func TestSplitDestination(t *testing.T) {
	tests := []struct {
		in         string
		city, ctry string
	}{
		{"Tokyo, Japan", "Tokyo", "Japan"},
		{"Tokyo", "Tokyo", "Unknown"},
		{" Paris ,  France ", "Paris", "France"},
		{"Rio de Janeiro, Brazil, South America", "Rio de Janeiro", "Brazil, South America"},
		{"Berlin,", "Berlin", "Unknown"},
	}
	for _, tt := range tests {
		city, ctry := splitDestination(tt.in)
		if city != tt.city || ctry != tt.ctry {
			t.Errorf("splitDestination(%q) = (%q, %q), want (%q, %q)",
				tt.in, city, ctry, tt.city, tt.ctry)
		}
	}
}
