package storage

import (
	"context"
	"errors"
	"time"

	"github.com/resuforge/rewriter/internal/core/domain"
)

var (
	// ErrRunNotFound is returned when a batch run doesn't exist
	ErrRunNotFound = errors.New("batch run not found")
)

// BatchRepository stores completed batch runs for history and audit.
type BatchRepository interface {
	// SaveRun persists a completed run with its per-item records
	SaveRun(ctx context.Context, run *domain.BatchRun) error

	// GetRun retrieves a run with its items
	GetRun(ctx context.Context, id string) (*domain.BatchRun, error)

	// ListRuns retrieves the most recent runs, newest first, without items
	ListRuns(ctx context.Context, limit int) ([]*domain.BatchRun, error)

	// DeleteRunsOlderThan removes runs created before the cutoff and
	// returns the number deleted
	DeleteRunsOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
