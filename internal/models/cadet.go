package models

import "time"

// Cadet represents a roster member. The roster is owned by a separate
// management tool; this service only reads it.
type Cadet struct {
	ID           string    `db:"id" json:"id"`
	EnrollmentNo string    `db:"enrollment_no" json:"enrollment_no"`
	Rank         string    `db:"rank" json:"rank"`
	Name         string    `db:"name" json:"name"`
	Category     string    `db:"category" json:"category"`
	Division     string    `db:"division" json:"division"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CadetFilter scopes roster queries.
type CadetFilter struct {
	Categories []string
	Category   string
	Division   string
	Search     string
}

// RankOrder is the canonical display order for rank summaries.
var RankOrder = []string{"SUO", "JUO", "SGT", "CPL", "LCPL", "CDT"}
