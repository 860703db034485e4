package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/hoops-edge/internal/database"
	"github.com/yourusername/hoops-edge/internal/models"
)

// PostgresReportRunRepository implements ReportRunRepository for PostgreSQL
type PostgresReportRunRepository struct {
	db *database.DB
}

// NewPostgresReportRunRepository creates a new report run repository
func NewPostgresReportRunRepository(db *database.DB) ReportRunRepository {
	return &PostgresReportRunRepository{db: db}
}

// Save records a report run
func (r *PostgresReportRunRepository) Save(ctx context.Context, run models.ReportRun) error {
	_, err := r.db.GetPool().Exec(ctx, `
		INSERT INTO report_runs (run_id, prop_date, prop_type, row_count, failure_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		run.RunID, run.PropDate, run.PropType, run.Rows, run.Failures, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save report run: %w", err)
	}
	return nil
}

// Latest retrieves the most recent runs, newest first
func (r *PostgresReportRunRepository) Latest(ctx context.Context, limit int) ([]models.ReportRun, error) {
	rows, err := r.db.GetPool().Query(ctx, `
		SELECT run_id, prop_date, prop_type, row_count, failure_count, created_at
		FROM report_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query report runs: %w", err)
	}
	runs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ReportRun])
	if err != nil {
		return nil, fmt.Errorf("failed to scan report runs: %w", err)
	}
	return runs, nil
}
