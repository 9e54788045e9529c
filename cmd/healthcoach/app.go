package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/erandawijewantha/personalized-health-coach/internal/config"
	"github.com/erandawijewantha/personalized-health-coach/internal/database"
	"github.com/erandawijewantha/personalized-health-coach/internal/embedding"
	"github.com/erandawijewantha/personalized-health-coach/internal/knowledge"
	"github.com/erandawijewantha/personalized-health-coach/internal/llm"
	"github.com/erandawijewantha/personalized-health-coach/internal/llm/providers"
	"github.com/erandawijewantha/personalized-health-coach/internal/observability"
	"github.com/erandawijewantha/personalized-health-coach/internal/ontology"
	"github.com/erandawijewantha/personalized-health-coach/internal/ranker"
	"github.com/erandawijewantha/personalized-health-coach/internal/workflow"
)

// app holds the fully wired service components.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	db         *database.DB
	controller *workflow.Controller
	monitor    *observability.HealthMonitor

	logs        *database.LogDAO
	profiles    *database.ProfileDAO
	suggestions *database.SuggestionDAO
}

// buildApp loads configuration and wires every component of the
// pipeline: database, embedder, knowledge store, LLM client, ranker,
// and the workflow controller.
func buildApp(ctx context.Context, configPath string) (*app, error) {
	loader := config.NewLoader(config.NewValidator())
	cfg, err := loader.LoadWithDefaults(configPath)
	if err != nil {
		return nil, err
	}

	logger := observability.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	db, err := database.OpenWithConfig(database.Config{
		Path:         cfg.Database.Path,
		MaxOpenConns: cfg.Database.MaxConnections,
		MaxIdleConns: cfg.Database.MaxConnections / 2,
		BusyTimeout:  cfg.Database.Timeout,
	})
	if err != nil {
		return nil, err
	}

	embedder, err := embedding.NewFromConfig(cfg.Embedder)
	if err != nil {
		db.Close()
		return nil, err
	}

	store, err := knowledge.NewHealthStore(ctx, embedder)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Extra corpus sources are best effort: a bad source degrades to
	// the built-in passages.
	if len(cfg.Knowledge.Sources) > 0 {
		ingester := knowledge.NewIngester(store, logger)
		for _, source := range cfg.Knowledge.Sources {
			if _, err := ingester.Ingest(ctx, source); err != nil {
				logger.Error("failed to ingest knowledge source", "source", source, "error", err)
			}
		}
	}

	provider, err := providers.NewFromConfig(cfg.LLM)
	if err != nil {
		db.Close()
		return nil, err
	}
	client := llm.NewClient(provider, llm.WithLogger(logger))

	candidateRanker := ranker.New(embedder,
		ranker.WithThreshold(cfg.Ranker.SimilarityThreshold),
		ranker.WithDiversityCutoff(cfg.Ranker.DiversityCutoff),
		ranker.WithLogger(logger),
	)

	controller := workflow.NewController(
		workflow.NewAnalyzer(client, logger),
		workflow.NewRetriever(client, store, ontology.NewHealthGraph(), logger,
			workflow.WithTopK(cfg.Knowledge.TopK)),
		workflow.NewRecommender(client, candidateRanker, logger),
		workflow.WithLogger(logger),
	)

	monitor := observability.NewHealthMonitor(logger)
	monitor.Register("database", db)
	monitor.Register("embedder", embedder)
	monitor.Register("knowledge", store)
	monitor.Register("llm", client)

	return &app{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		controller:  controller,
		monitor:     monitor,
		logs:        database.NewLogDAO(db),
		profiles:    database.NewProfileDAO(db),
		suggestions: database.NewSuggestionDAO(db),
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}
}
