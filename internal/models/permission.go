package models

import "time"

// PermissionReason is the closed set of accepted excusal reasons.
type PermissionReason string

const (
	ReasonHealthIssue    PermissionReason = "Health issue"
	ReasonUnitOfficeWork PermissionReason = "Unit office work"
	ReasonWentHome       PermissionReason = "Went home"
	ReasonSports         PermissionReason = "Sports"
	ReasonCampDuty       PermissionReason = "Camp duty"
	ReasonOther          PermissionReason = "Other"
)

// PermissionReasons lists every accepted reason.
var PermissionReasons = []PermissionReason{
	ReasonHealthIssue,
	ReasonUnitOfficeWork,
	ReasonWentHome,
	ReasonSports,
	ReasonCampDuty,
	ReasonOther,
}

// Valid returns true when the reason is a supported value.
func (r PermissionReason) Valid() bool {
	for _, known := range PermissionReasons {
		if r == known {
			return true
		}
	}
	return false
}

// Permission records an advance excusal for a cadet. One active permission
// exists per (parade, cadet); upserts replace it.
type Permission struct {
	ID        string           `db:"id" json:"id"`
	ParadeID  string           `db:"parade_id" json:"parade_id"`
	CadetID   string           `db:"cadet_id" json:"cadet_id"`
	Reason    PermissionReason `db:"reason" json:"reason"`
	ToDate    time.Time        `db:"to_date" json:"to_date"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// Covers reports whether the permission excuses the cadet for the given
// parade. A permission qualifies when it was issued against that parade or
// when its end date reaches the parade date, letting multi-day excusals span
// consecutive parades.
func (p *Permission) Covers(paradeID string, paradeDate time.Time) bool {
	if p.ParadeID == paradeID {
		return true
	}
	return !p.ToDate.Before(paradeDate)
}
