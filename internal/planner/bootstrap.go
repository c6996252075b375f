package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wandergenie/wandergenie/internal/knowledge"
)

// Readiness polling after an auto-ingest. The index is usually queryable
// immediately after the upsert commits, so the first poll almost always
// succeeds; the backoff covers replica lag and index build time.
const (
	readinessAttempts = 5
	readinessBaseWait = 100 * time.Millisecond
)

// Bootstrapper generates and ingests a travel guide for destinations
// that have no stored knowledge. Concurrent requests for the same city
// are collapsed into a single generation via singleflight; requests for
// different cities proceed independently.
type Bootstrapper struct {
	generator Generator
	ingestor  Ingestor
	counter   DestinationCounter
	logger    *slog.Logger

	group singleflight.Group
}

// NewBootstrapper wires the guide-generation path.
func NewBootstrapper(generator Generator, ingestor Ingestor, counter DestinationCounter, logger *slog.Logger) (*Bootstrapper, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if ingestor == nil {
		return nil, fmt.Errorf("ingestor is required")
	}
	if counter == nil {
		return nil, fmt.Errorf("counter is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bootstrapper{generator: generator, ingestor: ingestor, counter: counter, logger: logger}, nil
}

// EnsureDestination makes sure knowledge exists for destination,
// generating and ingesting a guide when it does not. It returns nil when
// knowledge is already present or was successfully ingested.
//
// The singleflight key is the lowercased city, so "Tokyo, Japan" and
// "tokyo" share one in-flight generation.
func (b *Bootstrapper) EnsureDestination(ctx context.Context, destination string) error {
	city, country := splitDestination(destination)
	if city == "" {
		return fmt.Errorf("destination is empty")
	}

	count, err := b.counter.CountByDestination(ctx, city)
	if err != nil {
		return fmt.Errorf("checking destination %q: %w", city, err)
	}
	if count > 0 {
		return nil
	}

	key := strings.ToLower(city)
	_, err, shared := b.group.Do(key, func() (any, error) {
		return nil, b.generateAndIngest(ctx, city, country)
	})
	if err != nil {
		return fmt.Errorf("bootstrapping %q: %w", city, err)
	}
	if shared {
		b.logger.Debug("bootstrap shared with concurrent request", "city", city)
	}
	return nil
}

func (b *Bootstrapper) generateAndIngest(ctx context.Context, city, country string) error {
	b.logger.Info("auto-generating destination guide", "city", city, "country", country)

	guide, err := b.generator.Complete(ctx, BuildGuidePrompt(city, country))
	if err != nil {
		return fmt.Errorf("generating guide: %w", err)
	}

	n, err := b.ingestor.Ingest(ctx, guide, knowledge.Metadata{
		Type:        "city_guide",
		Destination: city,
		Country:     country,
		Category:    "overview",
		Source:      "gemini",
		GeneratedBy: "auto",
	})
	if err != nil {
		return fmt.Errorf("ingesting guide: %w", err)
	}

	if err := b.awaitReadiness(ctx, city); err != nil {
		return err
	}

	b.logger.Info("destination guide ingested", "city", city, "chunks", n)
	return nil
}

// awaitReadiness polls until the ingested chunks are visible to search,
// backing off exponentially between attempts.
func (b *Bootstrapper) awaitReadiness(ctx context.Context, city string) error {
	wait := readinessBaseWait
	for attempt := 1; attempt <= readinessAttempts; attempt++ {
		count, err := b.counter.CountByDestination(ctx, city)
		if err == nil && count > 0 {
			return nil
		}

		if attempt == readinessAttempts {
			return fmt.Errorf("ingested chunks for %q not visible after %d attempts", city, attempt)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return nil
}

// splitDestination separates "City, Country" on the first comma. Country
// defaults to "Unknown" when absent.
func splitDestination(destination string) (city, country string) {
	city, country, found := strings.Cut(destination, ",")
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	if !found || country == "" {
		country = "Unknown"
	}
	return city, country
}
