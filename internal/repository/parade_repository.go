package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/ncc-parade-api/internal/models"
)

// Sentinel errors surfaced by parade persistence. Services translate these
// into the domain error taxonomy.
var (
	// ErrOpenParadeExists is raised when the partial unique index over open
	// parades rejects an insert. The index is the authoritative guard for the
	// single-open-parade invariant; the pre-insert check in the service is
	// only a fast path.
	ErrOpenParadeExists = errors.New("an open parade already exists")
	// ErrAttendancePending and ErrParadeNotReady mirror the named failures of
	// the close_parade server procedure.
	ErrAttendancePending = errors.New("attendance_pending")
	ErrParadeNotReady    = errors.New("parade_not_ready")
)

const uniqueViolation = "23505"

// ParadeRepository handles persistence for parades.
type ParadeRepository struct {
	db *sqlx.DB
}

// NewParadeRepository constructs the repository.
func NewParadeRepository(db *sqlx.DB) *ParadeRepository {
	return &ParadeRepository{db: db}
}

const paradeColumns = `id, parade_date, session, categories, parade_type_map, status, ano_remarks, created_by, created_at, updated_at`

// Create inserts a new parade in the active state.
func (r *ParadeRepository) Create(ctx context.Context, parade *models.Parade) (*models.Parade, error) {
	now := time.Now().UTC()
	if parade.ID == "" {
		parade.ID = uuid.NewString()
	}
	parade.Status = models.ParadeStatusActive
	parade.CreatedAt = now
	parade.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO parades (%s)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING %s`, paradeColumns, paradeColumns)

	var stored models.Parade
	err := r.db.GetContext(ctx, &stored, query,
		parade.ID, parade.ParadeDate, parade.Session, parade.Categories,
		parade.ParadeTypeMap, parade.Status, parade.AnoRemarks,
		parade.CreatedBy, parade.CreatedAt, parade.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrOpenParadeExists
		}
		return nil, fmt.Errorf("create parade: %w", err)
	}
	return &stored, nil
}

// FindByID fetches a single parade.
func (r *ParadeRepository) FindByID(ctx context.Context, id string) (*models.Parade, error) {
	query := fmt.Sprintf(`SELECT %s FROM parades WHERE id = $1`, paradeColumns)
	var parade models.Parade
	if err := r.db.GetContext(ctx, &parade, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find parade %s: %w", id, err)
	}
	return &parade, nil
}

// FindOpen returns the single parade with status active or
// attendance_submitted, or sql.ErrNoRows when none is open.
func (r *ParadeRepository) FindOpen(ctx context.Context) (*models.Parade, error) {
	query := fmt.Sprintf(`SELECT %s FROM parades
WHERE status IN ($1, $2)
ORDER BY created_at DESC
LIMIT 1`, paradeColumns)
	var parade models.Parade
	err := r.db.GetContext(ctx, &parade, query,
		models.ParadeStatusActive, models.ParadeStatusAttendanceSubmitted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find open parade: %w", err)
	}
	return &parade, nil
}

// LastCompletedTypeMap returns the parade_type_map of the most recently
// completed parade, used to prefill the next creation form.
func (r *ParadeRepository) LastCompletedTypeMap(ctx context.Context) (models.ParadeTypeMap, error) {
	query := `SELECT parade_type_map FROM parades
WHERE status = $1
ORDER BY created_at DESC
LIMIT 1`
	var typeMap models.ParadeTypeMap
	err := r.db.GetContext(ctx, &typeMap, query, models.ParadeStatusCompleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("last completed parade type map: %w", err)
	}
	return typeMap, nil
}

// UpdateRemarks writes the reviewing officer's remarks. The status guard in
// the WHERE clause keeps completed parades immutable even if a caller skips
// the service check.
func (r *ParadeRepository) UpdateRemarks(ctx context.Context, id, remarks string) error {
	query := `UPDATE parades SET ano_remarks = $1, updated_at = $2
WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, remarks, time.Now().UTC(), id, models.ParadeStatusAttendanceSubmitted)
	if err != nil {
		return fmt.Errorf("update parade remarks: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update parade remarks: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Close invokes the atomic close_parade server procedure. Preconditions are
// evaluated server-side; the named failures are mapped to sentinels.
func (r *ParadeRepository) Close(ctx context.Context, actorID, paradeID string) error {
	if _, err := r.db.ExecContext(ctx, `SELECT close_parade($1, $2)`, actorID, paradeID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch {
			case strings.Contains(pqErr.Message, "attendance_pending"):
				return ErrAttendancePending
			case strings.Contains(pqErr.Message, "parade_not_ready"):
				return ErrParadeNotReady
			}
		}
		return fmt.Errorf("close parade %s: %w", paradeID, err)
	}
	return nil
}
