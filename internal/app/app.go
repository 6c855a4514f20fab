// Package app assembles the worker from configuration and runs it until
// the context is cancelled.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"habernexus/internal/classify"
	"habernexus/internal/config"
	"habernexus/internal/infrastructure/assets"
	"habernexus/internal/infrastructure/feed"
	"habernexus/internal/infrastructure/imaging"
	"habernexus/internal/infrastructure/llm"
	"habernexus/internal/infrastructure/scheduler"
	"habernexus/internal/infrastructure/storage"
	"habernexus/internal/ports"
	"habernexus/internal/usecase"
)

// Application owns the wired component graph.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
}

// New builds an application from loaded configuration.
func New(cfg config.Config, logger *slog.Logger) *Application {
	return &Application{cfg: cfg, logger: logger}
}

// Run connects the store, prepares the catalog, starts the scheduler and
// blocks until ctx is cancelled. Startup failures are returned; the caller
// decides the exit code.
func (a *Application) Run(ctx context.Context) error {
	db, err := a.connectDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}
	if err := repo.Seed(ctx); err != nil {
		return err
	}

	catalog := classify.NewCatalog(repo)
	if err := catalog.Refresh(ctx); err != nil {
		return fmt.Errorf("load directory catalog: %w", err)
	}

	var images ports.ImageProcessor
	if a.cfg.Assets.Bucket != "" {
		store, err := assets.NewS3Store(ctx, a.cfg.Assets)
		if err != nil {
			return fmt.Errorf("init asset store: %w", err)
		}
		processor, err := imaging.NewProcessor(nil, store, a.logger.With("component", "imaging"))
		if err != nil {
			return fmt.Errorf("init image processor: %w", err)
		}
		images = processor
	} else {
		a.logger.Warn("asset bucket not configured, articles will publish without images")
	}

	if a.cfg.Gemini.APIKey == "" {
		a.logger.Warn("gemini api key not configured, generation will fail until it is set")
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:       feed.NewFetcher(nil, a.logger.With("component", "feed")),
		Repository:   repo,
		Catalog:      catalog,
		Generator:    llm.NewGeminiClient(a.cfg.Gemini),
		Images:       images,
		Feeds:        a.cfg.Feeds,
		ItemsPerFeed: a.cfg.Scheduler.ItemsPerFeed,
		ItemDelay:    a.cfg.Scheduler.PauseBetweenItems(),
		Logger:       a.logger.With("component", "pipeline"),
	})

	driver := scheduler.NewIntervalScheduler(a.cfg.Scheduler.CycleInterval())
	sched := usecase.NewScheduler(driver, pipeline)

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("worker started",
		"feeds", len(a.cfg.Feeds),
		"interval", a.cfg.Scheduler.CycleInterval().String())

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		a.logger.Error("scheduler stop", "error", err)
	}
	a.logger.Info("worker stopped")
	return nil
}

func (a *Application) connectDatabase(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", a.cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
