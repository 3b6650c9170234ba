package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ncc-parade-api/internal/models"
)

// NotificationRepository persists addressed notices. The engine creates and
// reads them; it never updates or deletes.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Insert stores a single notification.
func (r *NotificationRepository) Insert(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, parade_id, type, message, target_role, target_category, target_division, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		notification.ID, notification.ParadeID, notification.Type, notification.Message,
		notification.TargetRole, notification.TargetCategory, notification.TargetDivision,
		notification.IsActive, notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListActive returns active notices for a parade addressed to the given role,
// honoring the optional category/division targeting (NULL targets everyone).
func (r *NotificationRepository) ListActive(ctx context.Context, paradeID string, role models.UserRole, category, division string) ([]models.Notification, error) {
	query := `SELECT id, parade_id, type, message, target_role, target_category, target_division, is_active, created_at
FROM notifications
WHERE parade_id = $1
  AND is_active = TRUE
  AND target_role = $2
  AND (target_category IS NULL OR target_category = $3)
  AND (target_division IS NULL OR target_division = $4)
ORDER BY created_at DESC`

	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, paradeID, role, category, division); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}
