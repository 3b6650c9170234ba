package models

import "time"

// NotificationType identifies why a notice was raised.
type NotificationType string

const (
	NotificationPending NotificationType = "pending"
)

// Notification is an addressed notice record. The engine only creates these;
// it never mutates them.
type Notification struct {
	ID             string           `db:"id" json:"id"`
	ParadeID       string           `db:"parade_id" json:"parade_id"`
	Type           NotificationType `db:"type" json:"type"`
	Message        string           `db:"message" json:"message"`
	TargetRole     UserRole         `db:"target_role" json:"target_role"`
	TargetCategory *string          `db:"target_category" json:"target_category,omitempty"`
	TargetDivision *string          `db:"target_division" json:"target_division,omitempty"`
	IsActive       bool             `db:"is_active" json:"is_active"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
}
