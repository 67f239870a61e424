package worker

import (
	"context"
	"testing"
	"time"

	"github.com/resuforge/rewriter/internal/core/domain"
	"github.com/resuforge/rewriter/internal/infra/storage/memory"
)

func TestPruner_RemovesExpiredRuns(t *testing.T) {
	repo := memory.NewBatchRepo()
	ctx := context.Background()

	repo.SaveRun(ctx, &domain.BatchRun{ID: "old", CreatedAt: time.Now().Add(-2 * time.Hour)})
	repo.SaveRun(ctx, &domain.BatchRun{ID: "fresh", CreatedAt: time.Now()})

	p := NewPruner(time.Hour, repo, nil)
	p.prune(ctx)

	runs, err := repo.ListRuns(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != "fresh" {
		t.Errorf("runs after prune = %v", runs)
	}
}

func TestPruner_DisabledRetentionReturnsImmediately(t *testing.T) {
	p := NewPruner(0, memory.NewBatchRepo(), nil)

	done := make(chan struct{})
	go func() {
		p.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return with retention disabled")
	}
}
