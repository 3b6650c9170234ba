package models

import "time"

// ParadeReport is the written account a senior submits for one category of a
// parade. One row per (parade, category); upserts replace the text. The parade
// type is copied from the parade's type map at save time.
type ParadeReport struct {
	ID         string     `db:"id" json:"id"`
	ParadeID   string     `db:"parade_id" json:"parade_id"`
	Category   string     `db:"category" json:"category"`
	ReportText string     `db:"report_text" json:"report_text"`
	ParadeType ParadeType `db:"parade_type" json:"parade_type"`
	UpdatedBy  *string    `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}
