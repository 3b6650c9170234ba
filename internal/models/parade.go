package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ParadeStatus represents the lifecycle state of a parade.
type ParadeStatus string

const (
	ParadeStatusActive              ParadeStatus = "active"
	ParadeStatusAttendanceSubmitted ParadeStatus = "attendance_submitted"
	ParadeStatusCompleted           ParadeStatus = "completed"
)

// Valid returns true when the status is a supported value.
func (s ParadeStatus) Valid() bool {
	switch s {
	case ParadeStatusActive, ParadeStatusAttendanceSubmitted, ParadeStatusCompleted:
		return true
	default:
		return false
	}
}

// Open reports whether the parade still owns the system-wide open slot.
func (s ParadeStatus) Open() bool {
	return s == ParadeStatusActive || s == ParadeStatusAttendanceSubmitted
}

// CanTransitionTo enforces the strictly forward lifecycle:
// active -> attendance_submitted -> completed, no skips, no backward moves.
func (s ParadeStatus) CanTransitionTo(next ParadeStatus) bool {
	switch s {
	case ParadeStatusActive:
		return next == ParadeStatusAttendanceSubmitted
	case ParadeStatusAttendanceSubmitted:
		return next == ParadeStatusCompleted
	default:
		return false
	}
}

// ParadeSession identifies the time slot of a parade.
type ParadeSession string

const (
	SessionMorning   ParadeSession = "morning"
	SessionEvening   ParadeSession = "evening"
	SessionAfterNoon ParadeSession = "after-noon"
)

// Valid returns true when the session is a supported value.
func (s ParadeSession) Valid() bool {
	switch s {
	case SessionMorning, SessionEvening, SessionAfterNoon:
		return true
	default:
		return false
	}
}

// ParadeType tags the activity conducted for a category during a parade.
type ParadeType string

const (
	ParadeTypeTheory           ParadeType = "Theory"
	ParadeTypeDrill            ParadeType = "Drill"
	ParadeTypeWeaponTraining   ParadeType = "Weapon Training"
	ParadeTypePT               ParadeType = "Physical Training (PT)"
	ParadeTypeRehearsal        ParadeType = "Parade Rehearsal"
	ParadeTypeCulturalPractice ParadeType = "Cultural Practice"
	ParadeTypeEvent            ParadeType = "Event"
	ParadeTypeAwareness        ParadeType = "Awareness Program"
)

// ParadeTypes lists every accepted parade type.
var ParadeTypes = []ParadeType{
	ParadeTypeTheory,
	ParadeTypeDrill,
	ParadeTypeWeaponTraining,
	ParadeTypePT,
	ParadeTypeRehearsal,
	ParadeTypeCulturalPractice,
	ParadeTypeEvent,
	ParadeTypeAwareness,
}

// Valid returns true when the parade type is a supported value.
func (t ParadeType) Valid() bool {
	for _, known := range ParadeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParadeTypeMap maps an included category to its activity type.
type ParadeTypeMap map[string]ParadeType

// Value implements driver.Valuer storing the map as JSONB.
func (m ParadeTypeMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner reading the JSONB column.
func (m *ParadeTypeMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported parade_type_map source %T", src)
	}
	return json.Unmarshal(raw, m)
}

// Parade represents a single roll-call event with its own attendance cycle.
type Parade struct {
	ID            string         `db:"id" json:"id"`
	ParadeDate    time.Time      `db:"parade_date" json:"parade_date"`
	Session       ParadeSession  `db:"session" json:"session"`
	Categories    pq.StringArray `db:"categories" json:"categories"`
	ParadeTypeMap ParadeTypeMap  `db:"parade_type_map" json:"parade_type_map"`
	Status        ParadeStatus   `db:"status" json:"status"`
	AnoRemarks    *string        `db:"ano_remarks" json:"ano_remarks,omitempty"`
	CreatedBy     string         `db:"created_by" json:"created_by"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// IncludesCategory reports whether the category takes part in this parade.
func (p *Parade) IncludesCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}
