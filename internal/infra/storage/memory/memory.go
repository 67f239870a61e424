// Package memory provides an in-memory BatchRepository for development
// and tests. Runs vanish on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/resuforge/rewriter/internal/core/domain"
	"github.com/resuforge/rewriter/internal/infra/storage"
)

type BatchRepo struct {
	runs map[string]*domain.BatchRun
	mu   sync.RWMutex
}

func NewBatchRepo() *BatchRepo {
	return &BatchRepo{runs: make(map[string]*domain.BatchRun)}
}

func (r *BatchRepo) SaveRun(ctx context.Context, run *domain.BatchRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *run
	cp.Items = append([]domain.BatchItemRecord(nil), run.Items...)
	r.runs[run.ID] = &cp
	return nil
}

func (r *BatchRepo) GetRun(ctx context.Context, id string) (*domain.BatchRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, storage.ErrRunNotFound
	}
	cp := *run
	cp.Items = append([]domain.BatchItemRecord(nil), run.Items...)
	return &cp, nil
}

func (r *BatchRepo) ListRuns(ctx context.Context, limit int) ([]*domain.BatchRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	runs := make([]*domain.BatchRun, 0, len(r.runs))
	for _, run := range r.runs {
		cp := *run
		cp.Items = nil
		runs = append(runs, &cp)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (r *BatchRepo) DeleteRunsOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, run := range r.runs {
		if run.CreatedAt.Before(cutoff) {
			delete(r.runs, id)
			deleted++
		}
	}
	return deleted, nil
}
