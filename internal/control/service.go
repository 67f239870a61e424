// Package control wires the application together: storage, cache, the
// model backend, the batch coordinator and the health server.
package control

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resuforge/rewriter/internal/core/config"
	"github.com/resuforge/rewriter/internal/core/domain"
	"github.com/resuforge/rewriter/internal/core/worker"
	"github.com/resuforge/rewriter/internal/document"
	"github.com/resuforge/rewriter/internal/health"
	"github.com/resuforge/rewriter/internal/infra/llm"
	redisclient "github.com/resuforge/rewriter/internal/infra/redis"
	"github.com/resuforge/rewriter/internal/infra/storage"
	"github.com/resuforge/rewriter/internal/infra/storage/memory"
	"github.com/resuforge/rewriter/internal/infra/storage/postgres"
	"github.com/resuforge/rewriter/migrations"
	"github.com/resuforge/rewriter/internal/rewrite/batch"
	"github.com/resuforge/rewriter/internal/rewrite/fallback"
	"github.com/resuforge/rewriter/internal/rewrite/invoker"
	"github.com/resuforge/rewriter/internal/rewrite/keywords"
)

// Service is the main application struct managing the rewrite pipeline
// lifecycle.
type Service struct {
	cfg          *config.AppConfig
	coordinator  *batch.Coordinator
	transformer  llm.Transformer
	repo         storage.BatchRepository
	db           *postgres.DB
	cache        *redisclient.Cache
	pruner       *worker.Pruner
	healthServer *health.Server
	log          *slog.Logger
}

// NewService creates a Service with all dependencies initialized.
func NewService(cfg *config.AppConfig, log *slog.Logger) (*Service, error) {
	if log == nil {
		log = slog.Default()
	}

	// 1. Storage
	var repo storage.BatchRepository
	var db *postgres.DB
	if cfg.Database.URL != "" {
		var err error
		db, err = postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}
		if err := migrations.Up(context.Background(), db.DB); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}
		repo = postgres.NewBatchRepo(db)
		log.Info("using PostgreSQL batch history")
	} else {
		repo = memory.NewBatchRepo()
		log.Info("using in-memory batch history")
	}

	// 2. Rewrite cache (optional; the service works without it)
	var cache *redisclient.Cache
	if cfg.Redis.URL != "" {
		var err error
		cache, err = redisclient.NewCache(cfg.Redis, log)
		if err != nil {
			log.Warn("failed to connect to redis, cache disabled", "error", err)
		}
	}

	// 3. Model backend and rewrite pipeline
	transformer := llm.NewOllamaProvider(cfg.Transform.URL, cfg.Transform.Model, cfg.Transform.AttemptBudget)

	inv := invoker.New(transformer, invoker.Config{
		AttemptBudget: cfg.Transform.AttemptBudget,
		RetryCount:    cfg.Transform.RetryCount,
		RetryDelay:    cfg.Transform.RetryDelay,
	}, log)

	var batchCache batch.Cache
	if cache != nil {
		batchCache = cache
	}
	coordinator := batch.NewCoordinator(inv, fallback.New(inv, log), batchCache, batch.Config{
		Workers:  cfg.Batch.Workers,
		FailFast: cfg.Batch.FailFast,
	}, log)

	// 4. Health monitoring. The transformer is non-critical: rewrites
	// degrade to local strategies when it is down.
	monitor := health.NewMonitor(
		health.Component{Name: "transformer", Check: transformer.Health},
	)
	if db != nil {
		monitor.Register(health.Component{Name: "database", Check: db.Health, Critical: true})
	}
	if cache != nil {
		monitor.Register(health.Component{Name: "cache", Check: cache.Health})
	}
	healthServer := health.NewServer(monitor, cfg.Server.Port)

	// 5. History retention
	var pruner *worker.Pruner
	if cfg.Batch.HistoryRetention > 0 {
		pruner = worker.NewPruner(cfg.Batch.HistoryRetention, repo, log)
	}

	return &Service{
		cfg:          cfg,
		coordinator:  coordinator,
		transformer:  transformer,
		repo:         repo,
		db:           db,
		cache:        cache,
		pruner:       pruner,
		healthServer: healthServer,
		log:          log,
	}, nil
}

// Start starts the background components.
func (s *Service) Start(ctx context.Context) error {
	go func() {
		if err := s.healthServer.Start(); err != nil {
			s.log.Error("health server failed", "error", err)
		}
	}()

	if s.db != nil {
		s.db.StartMetricsCollector(ctx)
	}

	if s.pruner != nil {
		go s.pruner.Start(ctx)
	}

	return nil
}

// Stop shuts down the service.
func (s *Service) Stop(ctx context.Context) error {
	s.log.Info("stopping service")

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.log.Warn("failed to close redis", "error", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.Warn("failed to close database", "error", err)
		}
	}

	return s.healthServer.Stop(ctx)
}

// ProcessBatch rewrites a batch of bullet lines and persists the run.
// Persistence failures are logged, not returned; the rewrite results
// are already in hand and the caller gets them regardless.
func (s *Service) ProcessBatch(
	ctx context.Context,
	bullets []string,
	kws []string,
	constraints []domain.Constraint,
	style domain.Style,
) (*domain.BatchRun, []document.Replacement, error) {
	if style == "" {
		style = domain.ParseStyle(s.cfg.Transform.Style)
	}
	kws = keywords.Normalize(kws)

	results, summary, err := s.coordinator.ProcessBatch(ctx, bullets, kws, constraints, style)
	if err != nil {
		return nil, nil, err
	}

	run := &domain.BatchRun{
		ID:        uuid.NewString(),
		Style:     style,
		Summary:   summary,
		Items:     make([]domain.BatchItemRecord, 0, len(results)),
		CreatedAt: time.Now().UTC(),
	}
	for _, r := range results {
		run.Items = append(run.Items, domain.BatchItemRecord{
			Index:        r.Index,
			OriginalText: bullets[r.Index],
			FinalText:    r.FinalText,
			Strategy:     r.Strategy,
			UsedFallback: r.UsedFallback,
			Validated:    r.Validated,
		})
	}

	if err := s.repo.SaveRun(ctx, run); err != nil {
		s.log.Warn("failed to persist batch run", "run_id", run.ID, "error", err)
	}

	return run, document.FromResults(bullets, results), nil
}

// GetRun retrieves a stored batch run.
func (s *Service) GetRun(ctx context.Context, id string) (*domain.BatchRun, error) {
	return s.repo.GetRun(ctx, id)
}

// ListRuns retrieves recent batch runs.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]*domain.BatchRun, error) {
	return s.repo.ListRuns(ctx, limit)
}
