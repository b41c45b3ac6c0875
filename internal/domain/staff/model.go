package staff

import "time"

// Role is a staff account role. The schema enforces the same set with a CHECK
// constraint on users.role; there is no permission enforcement behind it.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleReception  Role = "reception"
	RoleDoctor     Role = "doctor"
	RoleNurse      Role = "nurse"
	RoleAccountant Role = "accountant"
)

// Roles lists every permitted role value.
func Roles() []Role {
	return []Role{RoleAdmin, RoleReception, RoleDoctor, RoleNurse, RoleAccountant}
}

// Valid reports whether the role is one of the permitted values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleReception, RoleDoctor, RoleNurse, RoleAccountant:
		return true
	}
	return false
}

// User maps to the users table.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         Role      `db:"role" json:"role"`
	Email        string    `db:"email" json:"email"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
