package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ncc-parade-api/internal/models"
)

// ParadeReportRepository persists per-category parade reports.
type ParadeReportRepository struct {
	db *sqlx.DB
}

// NewParadeReportRepository constructs the repository.
func NewParadeReportRepository(db *sqlx.DB) *ParadeReportRepository {
	return &ParadeReportRepository{db: db}
}

const reportColumns = `id, parade_id, category, report_text, parade_type, updated_by, updated_at`

// Upsert inserts or replaces the single report for (parade, category).
func (r *ParadeReportRepository) Upsert(ctx context.Context, report *models.ParadeReport) (*models.ParadeReport, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	report.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(`INSERT INTO parade_reports (%s)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (parade_id, category)
DO UPDATE SET report_text = EXCLUDED.report_text, parade_type = EXCLUDED.parade_type,
	updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
RETURNING %s`, reportColumns, reportColumns)

	var stored models.ParadeReport
	err := r.db.GetContext(ctx, &stored, query,
		report.ID, report.ParadeID, report.Category, report.ReportText,
		report.ParadeType, report.UpdatedBy, report.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert parade report: %w", err)
	}
	return &stored, nil
}

// Get returns the report for (parade, category) or sql.ErrNoRows.
func (r *ParadeReportRepository) Get(ctx context.Context, paradeID, category string) (*models.ParadeReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM parade_reports WHERE parade_id = $1 AND category = $2`, reportColumns)
	var report models.ParadeReport
	if err := r.db.GetContext(ctx, &report, query, paradeID, category); err != nil {
		return nil, err
	}
	return &report, nil
}

// ListByParade returns every submitted report for a parade.
func (r *ParadeReportRepository) ListByParade(ctx context.Context, paradeID string) ([]models.ParadeReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM parade_reports WHERE parade_id = $1 ORDER BY category ASC`, reportColumns)
	var reports []models.ParadeReport
	if err := r.db.SelectContext(ctx, &reports, query, paradeID); err != nil {
		return nil, fmt.Errorf("list parade reports: %w", err)
	}
	return reports, nil
}
