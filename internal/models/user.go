package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	// RoleAno is the reviewing officer: owns the parade lifecycle,
	// permissions and the close decision.
	RoleAno UserRole = "ano"
	// RoleSenior submits attendance and category reports for an assigned
	// (category, division) scope.
	RoleSenior UserRole = "senior"
)

// Valid returns true when the role is a supported value.
func (r UserRole) Valid() bool {
	return r == RoleAno || r == RoleSenior
}

// User represents an application user stored in the users table.
type User struct {
	ID               string     `db:"id" json:"id"`
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	FullName         string     `db:"full_name" json:"full_name"`
	Role             UserRole   `db:"role" json:"role"`
	AssignedCategory *string    `db:"assigned_category" json:"assigned_category,omitempty"`
	AssignedDivision *string    `db:"assigned_division" json:"assigned_division,omitempty"`
	Active           bool       `db:"active" json:"active"`
	LastLogin        *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
