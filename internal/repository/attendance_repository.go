package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ncc-parade-api/internal/models"
)

// AttendanceRepository persists attendance records. All writes go through the
// atomic write_attendance_batch procedure; this repository never inserts rows
// one by one.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// WriteBatch executes the atomic server-side batch write and returns the
// expected/written counts. Verifying the counts is the caller's duty; this
// method makes no assumption about partial application on mismatch.
func (r *AttendanceRepository) WriteBatch(ctx context.Context, actorID, paradeID string, records []models.AttendanceInput) (*models.BatchResult, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal attendance batch: %w", err)
	}

	var result models.BatchResult
	err = r.db.GetContext(ctx, &result,
		`SELECT expected, written FROM write_attendance_batch($1, $2, $3::jsonb)`,
		actorID, paradeID, payload)
	if err != nil {
		return nil, fmt.Errorf("write attendance batch: %w", err)
	}
	return &result, nil
}

// ListByParade returns persisted records for a parade, optionally scoped by
// the cadet's category/division or by status.
func (r *AttendanceRepository) ListByParade(ctx context.Context, paradeID string, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	where := []string{"a.parade_id = $1"}
	args := []interface{}{paradeID}

	if filter.Category != "" {
		where = append(where, fmt.Sprintf("c.category = $%d", len(args)+1))
		args = append(args, filter.Category)
	}
	if filter.Division != "" {
		where = append(where, fmt.Sprintf("c.division = $%d", len(args)+1))
		args = append(args, filter.Division)
	}
	if filter.Status != nil && filter.Status.Valid() {
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}

	query := fmt.Sprintf(`SELECT a.id, a.parade_id, a.cadet_id, a.status, a.reason, a.created_at, a.updated_at
FROM attendance a
JOIN cadets c ON c.id = a.cadet_id
WHERE %s
ORDER BY c.enrollment_no ASC`, strings.Join(where, " AND "))

	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}
