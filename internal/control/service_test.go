package control

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/resuforge/rewriter/internal/core/config"
	"github.com/resuforge/rewriter/internal/core/domain"
	"github.com/resuforge/rewriter/internal/infra/llm"
	"github.com/resuforge/rewriter/internal/infra/storage/memory"
	"github.com/resuforge/rewriter/internal/rewrite/batch"
	"github.com/resuforge/rewriter/internal/rewrite/fallback"
	"github.com/resuforge/rewriter/internal/rewrite/invoker"
)

// newStubService wires a Service around an in-process transformer so
// tests never touch a real model backend.
func newStubService(t *testing.T, tr llm.Transformer) *Service {
	t.Helper()
	cfg := config.Default()
	inv := invoker.New(tr, invoker.Config{
		AttemptBudget: 50 * time.Millisecond,
		RetryCount:    1,
		RetryDelay:    time.Millisecond,
	}, nil)
	return &Service{
		cfg: cfg,
		coordinator: batch.NewCoordinator(inv, fallback.New(inv, nil), nil, batch.Config{
			Workers: cfg.Batch.Workers,
		}, nil),
		transformer: tr,
		repo:        memory.NewBatchRepo(),
		log:         slog.Default(),
	}
}

func TestService_ProcessBatchPersistsRun(t *testing.T) {
	tr := llm.TransformFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return "polished " + req.Text, nil
	})
	s := newStubService(t, tr)
	ctx := context.Background()

	bullets := []string{"wrote code", "fixed bugs"}
	run, reps, err := s.ProcessBatch(ctx, bullets, []string{"Go"}, nil, "")
	if err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}

	if run.ID == "" {
		t.Error("run has no ID")
	}
	if run.Style != domain.StyleSafe {
		t.Errorf("style = %q, want default safe", run.Style)
	}
	if len(run.Items) != 2 || run.Items[0].OriginalText != "wrote code" {
		t.Errorf("items = %+v", run.Items)
	}
	if len(reps) != 2 || reps[0].Final != "polished wrote code" {
		t.Errorf("replacements = %+v", reps)
	}

	stored, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if stored.Summary.SuccessfulPrimary != 2 {
		t.Errorf("stored summary = %+v", stored.Summary)
	}

	runs, err := s.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != run.ID {
		t.Errorf("runs = %v", runs)
	}
}

func TestService_Lifecycle(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 0 // random port

	s, err := NewService(cfg, slog.Default())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Let the server goroutine spin up before shutting down.
	time.Sleep(100 * time.Millisecond)

	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}
