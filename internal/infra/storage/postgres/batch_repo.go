package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/resuforge/rewriter/internal/core/domain"
	"github.com/resuforge/rewriter/internal/infra/storage"
)

// BatchRepo implements storage.BatchRepository using PostgreSQL.
type BatchRepo struct {
	db *DB
}

// NewBatchRepo creates a new PostgreSQL batch repository.
func NewBatchRepo(db *DB) *BatchRepo {
	return &BatchRepo{db: db}
}

type runRow struct {
	ID                string    `db:"id"`
	Style             string    `db:"style"`
	Total             int       `db:"total"`
	SuccessfulPrimary int       `db:"successful_primary"`
	UsedFallback      int       `db:"used_fallback"`
	FailedAll         int       `db:"failed_all"`
	SuccessRate       float64   `db:"success_rate"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r *runRow) toDomain() *domain.BatchRun {
	return &domain.BatchRun{
		ID:    r.ID,
		Style: domain.Style(r.Style),
		Summary: domain.BatchSummary{
			Total:             r.Total,
			SuccessfulPrimary: r.SuccessfulPrimary,
			UsedFallback:      r.UsedFallback,
			FailedAll:         r.FailedAll,
			SuccessRate:       r.SuccessRate,
		},
		CreatedAt: r.CreatedAt,
	}
}

// SaveRun persists a run and its items in one transaction.
func (r *BatchRepo) SaveRun(ctx context.Context, run *domain.BatchRun) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	runQuery := `
		INSERT INTO batch_runs (id, style, total, successful_primary, used_fallback, failed_all, success_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, runQuery,
		run.ID,
		string(run.Style),
		run.Summary.Total,
		run.Summary.SuccessfulPrimary,
		run.Summary.UsedFallback,
		run.Summary.FailedAll,
		run.Summary.SuccessRate,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save batch run: %w", err)
	}

	itemQuery := `
		INSERT INTO batch_items (run_id, item_index, original_text, final_text, strategy, used_fallback, validated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	stmt, err := tx.PrepareContext(ctx, itemQuery)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range run.Items {
		_, err := stmt.ExecContext(ctx,
			run.ID,
			it.Index,
			it.OriginalText,
			it.FinalText,
			string(it.Strategy),
			it.UsedFallback,
			it.Validated,
		)
		if err != nil {
			return fmt.Errorf("failed to save batch item: %w", err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run with its items.
func (r *BatchRepo) GetRun(ctx context.Context, id string) (*domain.BatchRun, error) {
	runQuery := `
		SELECT id, style, total, successful_primary, used_fallback, failed_all, success_rate, created_at
		FROM batch_runs
		WHERE id = $1
	`

	var row runRow
	err := r.db.GetContext(ctx, &row, runQuery, id)
	if err == sql.ErrNoRows {
		return nil, storage.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch run: %w", err)
	}

	itemQuery := `
		SELECT item_index, original_text, final_text, strategy, used_fallback, validated
		FROM batch_items
		WHERE run_id = $1
		ORDER BY item_index
	`

	var items []domain.BatchItemRecord
	if err := r.db.SelectContext(ctx, &items, itemQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get batch items: %w", err)
	}

	run := row.toDomain()
	run.Items = items
	return run, nil
}

// ListRuns retrieves the most recent runs, newest first.
func (r *BatchRepo) ListRuns(ctx context.Context, limit int) ([]*domain.BatchRun, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, style, total, successful_primary, used_fallback, failed_all, success_rate, created_at
		FROM batch_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list batch runs: %w", err)
	}

	runs := make([]*domain.BatchRun, 0, len(rows))
	for i := range rows {
		runs = append(runs, rows[i].toDomain())
	}
	return runs, nil
}

// DeleteRunsOlderThan removes runs created before the cutoff. Items go
// with them via ON DELETE CASCADE.
func (r *BatchRepo) DeleteRunsOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	query := `DELETE FROM batch_runs WHERE created_at < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete batch runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
