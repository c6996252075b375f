// Package planner orchestrates the itinerary pipeline: make sure the
// destination has indexed knowledge, retrieve context, build the prompt,
// call the model, and parse the response into a structured itinerary.
//
// Steps run strictly in order within a request; the only cross-request
// coordination is the per-city singleflight in the Bootstrapper.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wandergenie/wandergenie/internal/knowledge"
)

// contextSeparator joins retrieved passages in the prompt.
const contextSeparator = "\n\n---\n\n"

// Generator produces a completion for a prompt. *gemini.Generator
// satisfies it.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Retriever returns the top-k passages for a query, optionally filtered
// to one destination. *knowledge.Retriever satisfies it.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int, destination string) ([]string, error)
}

// Ingestor stores a document as embedded chunks. *ingest.Ingestor
// satisfies it.
type Ingestor interface {
	Ingest(ctx context.Context, text string, meta knowledge.Metadata) (int, error)
}

// DestinationCounter reports how many chunks exist for a city.
// *knowledge.Store satisfies it.
type DestinationCounter interface {
	CountByDestination(ctx context.Context, city string) (int, error)
}

// Planner is the pipeline entry point. One Planner serves all requests
// concurrently.
type Planner struct {
	bootstrapper *Bootstrapper
	retriever    Retriever
	generator    Generator
	topK         int
	logger       *slog.Logger
}

// NewPlanner wires the orchestrator. topK is the number of passages
// retrieved per request.
func NewPlanner(bootstrapper *Bootstrapper, retriever Retriever, generator Generator, topK int, logger *slog.Logger) (*Planner, error) {
	if bootstrapper == nil {
		return nil, fmt.Errorf("bootstrapper is required")
	}
	if retriever == nil {
		return nil, fmt.Errorf("retriever is required")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if topK < 1 {
		return nil, fmt.Errorf("topK must be at least 1, got %d", topK)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		bootstrapper: bootstrapper,
		retriever:    retriever,
		generator:    generator,
		topK:         topK,
		logger:       logger,
	}, nil
}

// Plan generates an itinerary for req. A failed auto-ingest is logged
// and the pipeline continues with whatever context retrieval finds;
// retrieval and generation failures fail the request. The returned
// itinerary is always well-formed — an unparseable model response yields
// the deterministic fallback with Degraded set.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (Itinerary, error) {
	if err := req.Validate(); err != nil {
		return Itinerary{}, fmt.Errorf("invalid request: %w", err)
	}

	if err := p.bootstrapper.EnsureDestination(ctx, req.Destination); err != nil {
		p.logger.Warn("destination bootstrap failed, continuing without it",
			"destination", req.Destination,
			"error", err)
	}

	query := fmt.Sprintf("%s %s travel guide attractions hotels transport budget",
		req.Destination, req.TravelStyle)
	passages, err := p.retriever.Retrieve(ctx, query, p.topK, "")
	if err != nil {
		return Itinerary{}, fmt.Errorf("retrieving context: %w", err)
	}

	contextText := NoContextSentinel
	if len(passages) > 0 {
		contextText = strings.Join(passages, contextSeparator)
	}

	prompt := BuildPrompt(req, contextText)
	raw, err := p.generator.Complete(ctx, prompt)
	if err != nil {
		return Itinerary{}, fmt.Errorf("generating itinerary: %w", err)
	}

	it := ParseItinerary(raw, req)
	if it.Degraded {
		p.logger.Warn("model response unparseable, returning fallback itinerary",
			"destination", req.Destination)
	}

	p.logger.Info("itinerary generated",
		"destination", req.Destination,
		"days", req.Days,
		"passages", len(passages),
		"degraded", it.Degraded)
	return it, nil
}
