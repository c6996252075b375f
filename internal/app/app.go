// Package app assembles the pipeline: configuration, logging, database
// pool, Genkit, and the planner with all of its collaborators. Commands
// construct one App and use whichever component they need.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wandergenie/wandergenie/internal/config"
	"github.com/wandergenie/wandergenie/internal/gemini"
	"github.com/wandergenie/wandergenie/internal/ingest"
	"github.com/wandergenie/wandergenie/internal/knowledge"
	"github.com/wandergenie/wandergenie/internal/log"
	"github.com/wandergenie/wandergenie/internal/planner"
)

// Embedding requests per second during bulk ingestion. Free-tier Gemini
// embedding quota is comfortably above this.
const (
	embedRPS   = 5
	embedBurst = 5
)

// App holds the wired pipeline and owns its resources.
type App struct {
	Config       *config.Config
	Logger       *slog.Logger
	Pool         *pgxpool.Pool
	Store        *knowledge.Store
	Ingestor     *ingest.Ingestor
	Bootstrapper *planner.Bootstrapper
	Planner      *planner.Planner

	cleanups []func()
}

// New loads configuration and wires the full pipeline. Migrations run
// before the pool opens; a failure at any stage releases everything
// acquired so far.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig wires the pipeline from an already validated config.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), JSON: cfg.LogJSON})

	app := &App{Config: cfg, Logger: logger}
	ok := false
	defer func() {
		if !ok {
			app.Close()
		}
	}()

	pool, err := providePool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app.Pool = pool
	app.cleanups = append(app.cleanups, pool.Close)

	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	if g == nil {
		return nil, errors.New("initializing genkit with gemini provider")
	}

	embedder, err := gemini.NewEmbedder(
		googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel),
		int32(cfg.EmbeddingDim),
	)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	limited, err := ingest.NewRateLimitedEmbedder(embedder, embedRPS, embedBurst)
	if err != nil {
		return nil, fmt.Errorf("creating rate-limited embedder: %w", err)
	}

	store, err := knowledge.NewStore(pool, embedder, logger)
	if err != nil {
		return nil, fmt.Errorf("creating knowledge store: %w", err)
	}
	app.Store = store

	retriever, err := knowledge.NewRetriever(store, logger)
	if err != nil {
		return nil, fmt.Errorf("creating retriever: %w", err)
	}

	ingestor, err := ingest.NewIngestor(limited, store, cfg.ChunkSize, cfg.ChunkOverlap, logger)
	if err != nil {
		return nil, fmt.Errorf("creating ingestor: %w", err)
	}
	app.Ingestor = ingestor

	generator, err := gemini.NewGenerator(g, gemini.GeneratorConfig{
		Model:       cfg.GenerationModel,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}

	bootstrapper, err := planner.NewBootstrapper(generator, ingestor, store, logger)
	if err != nil {
		return nil, fmt.Errorf("creating bootstrapper: %w", err)
	}
	app.Bootstrapper = bootstrapper

	p, err := planner.NewPlanner(bootstrapper, retriever, generator, cfg.TopK, logger)
	if err != nil {
		return nil, fmt.Errorf("creating planner: %w", err)
	}
	app.Planner = p

	ok = true
	return app, nil
}

// Close releases resources in reverse acquisition order. Safe to call
// more than once.
func (a *App) Close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}
