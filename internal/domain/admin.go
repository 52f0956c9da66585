package domain

import "time"

// AdminRole enumerates supported administrator roles.
type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "super_admin"
)

// Admin represents an account authorized to manage donation records.
// PasswordHash holds a bcrypt digest; the raw password is never persisted.
type Admin struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         AdminRole  `db:"role" json:"role"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
