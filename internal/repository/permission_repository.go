package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ncc-parade-api/internal/models"
)

// PermissionRepository persists advance excusals.
type PermissionRepository struct {
	db *sqlx.DB
}

// NewPermissionRepository constructs the repository.
func NewPermissionRepository(db *sqlx.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

const permissionColumns = `id, parade_id, cadet_id, reason, to_date, created_at, updated_at`

// Upsert inserts or replaces the single permission for (parade, cadet).
func (r *PermissionRepository) Upsert(ctx context.Context, permission *models.Permission) (*models.Permission, error) {
	now := time.Now().UTC()
	if permission.ID == "" {
		permission.ID = uuid.NewString()
	}
	if permission.CreatedAt.IsZero() {
		permission.CreatedAt = now
	}
	permission.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO permissions (%s)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (parade_id, cadet_id)
DO UPDATE SET reason = EXCLUDED.reason, to_date = EXCLUDED.to_date, updated_at = EXCLUDED.updated_at
RETURNING %s`, permissionColumns, permissionColumns)

	var stored models.Permission
	err := r.db.GetContext(ctx, &stored, query,
		permission.ID, permission.ParadeID, permission.CadetID,
		permission.Reason, permission.ToDate, permission.CreatedAt, permission.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert permission: %w", err)
	}
	return &stored, nil
}

// Delete removes the permission for (parade, cadet). Missing rows are not an
// error.
func (r *PermissionRepository) Delete(ctx context.Context, paradeID, cadetID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM permissions WHERE parade_id = $1 AND cadet_id = $2`,
		paradeID, cadetID); err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	return nil
}

// Get returns the current permission for (parade, cadet) or sql.ErrNoRows.
func (r *PermissionRepository) Get(ctx context.Context, paradeID, cadetID string) (*models.Permission, error) {
	query := fmt.Sprintf(`SELECT %s FROM permissions WHERE parade_id = $1 AND cadet_id = $2`, permissionColumns)
	var permission models.Permission
	if err := r.db.GetContext(ctx, &permission, query, paradeID, cadetID); err != nil {
		return nil, err
	}
	return &permission, nil
}

// ListByParade returns the permissions issued against one parade.
func (r *PermissionRepository) ListByParade(ctx context.Context, paradeID string) ([]models.Permission, error) {
	query := fmt.Sprintf(`SELECT %s FROM permissions WHERE parade_id = $1`, permissionColumns)
	var permissions []models.Permission
	if err := r.db.SelectContext(ctx, &permissions, query, paradeID); err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return permissions, nil
}

// ListCovering returns every permission that excuses a cadet for the given
// parade: issued against it, or with an end date on or after the parade date.
// The OR across the two conditions is deliberate so multi-day excusals carry
// over to later parades.
func (r *PermissionRepository) ListCovering(ctx context.Context, paradeID string, paradeDate time.Time) ([]models.Permission, error) {
	query := fmt.Sprintf(`SELECT %s FROM permissions
WHERE parade_id = $1 OR to_date >= $2`, permissionColumns)
	var permissions []models.Permission
	if err := r.db.SelectContext(ctx, &permissions, query, paradeID, paradeDate); err != nil {
		return nil, fmt.Errorf("list covering permissions: %w", err)
	}
	return permissions, nil
}
