package models

// RankCount holds attendance totals for a single rank.
type RankCount struct {
	Total   int `json:"total"`
	Present int `json:"present"`
}

// RankSummary maps rank values exactly as stored to their counts.
type RankSummary map[string]RankCount

// StatusBreakdown partitions a scoped roster into the three classifications.
// A cadet without a persisted record counts as absent without permission,
// matching the reconciler default. Percentages are 0.0 for an empty scope.
type StatusBreakdown struct {
	Total             int     `json:"total"`
	Present           int     `json:"present"`
	Permission        int     `json:"permission"`
	Absent            int     `json:"absent"`
	PresentPercent    float64 `json:"present_percent"`
	PermissionPercent float64 `json:"permission_percent"`
	AbsentPercent     float64 `json:"absent_percent"`
}

// SummaryFilter scopes both aggregations.
type SummaryFilter struct {
	Category string
	Division string
	Status   *AttendanceStatus
}

// PendingSlot is a (category, division) grouping with at least one active
// cadet and no attendance record yet for the current parade.
type PendingSlot struct {
	Category string `json:"category"`
	Division string `json:"division"`
}
