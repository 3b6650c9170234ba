package models

import "time"

// AttendanceStatus is the single authoritative classification per cadet.
type AttendanceStatus string

const (
	AttendancePresent           AttendanceStatus = "present"
	AttendanceWithPermission    AttendanceStatus = "absent_with_permission"
	AttendanceWithoutPermission AttendanceStatus = "absent_without_permission"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceWithPermission, AttendanceWithoutPermission:
		return true
	default:
		return false
	}
}

// AttendanceRecord is a persisted classification for one cadet in one parade.
type AttendanceRecord struct {
	ID        string           `db:"id" json:"id"`
	ParadeID  string           `db:"parade_id" json:"parade_id"`
	CadetID   string           `db:"cadet_id" json:"cadet_id"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Reason    *string          `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceInput is one reconciled entry of a batch write. It is the shared
// shape between the reconciler, the submission service and the wire contract.
type AttendanceInput struct {
	CadetID string           `json:"cadet_id"`
	Status  AttendanceStatus `json:"status"`
	Reason  *string          `json:"reason,omitempty"`
}

// BatchResult is returned by the atomic write_attendance_batch procedure.
// Callers must compare the two counts; a mismatch means the batch did not
// apply in full and the whole scope must be resubmitted.
type BatchResult struct {
	Expected int `db:"expected" json:"expected"`
	Written  int `db:"written" json:"written"`
}

// AttendanceFilter scopes listing of persisted records.
type AttendanceFilter struct {
	Category string
	Division string
	Status   *AttendanceStatus
}

// SubmissionSummary echoes the counts of a just-submitted batch.
type SubmissionSummary struct {
	Total      int `json:"total"`
	Present    int `json:"present"`
	Permission int `json:"permission"`
	Absent     int `json:"absent"`
}
