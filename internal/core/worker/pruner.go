package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/resuforge/rewriter/internal/infra/storage"
)

// Pruner deletes old batch runs based on retention policy.
type Pruner struct {
	retention time.Duration
	repo      storage.BatchRepository
	log       *slog.Logger
}

// NewPruner creates a new Pruner worker.
func NewPruner(retention time.Duration, repo storage.BatchRepository, log *slog.Logger) *Pruner {
	if log == nil {
		log = slog.Default()
	}
	return &Pruner{retention: retention, repo: repo, log: log}
}

// Start runs the pruner loop until ctx is cancelled.
func (p *Pruner) Start(ctx context.Context) {
	if p.retention <= 0 {
		return // Retention disabled
	}

	// Check interval: 10% of retention period, bounded to [1m, 1h]
	interval := min(p.retention/10, 1*time.Hour)
	interval = max(interval, 1*time.Minute)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial prune
	p.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *Pruner) prune(ctx context.Context) {
	cutoff := time.Now().Add(-p.retention)

	n, err := p.repo.DeleteRunsOlderThan(ctx, cutoff)
	if err != nil {
		p.log.Error("failed to prune batch runs", "error", err)
		return
	}
	if n > 0 {
		p.log.Info("pruned batch runs", "deleted", n, "cutoff", cutoff)
	}
}
