package models

import "time"

// Role is an authorization role assigned to a user
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTrainer   Role = "trainer"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// ValidRole reports whether r is one of the known roles
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleModerator, RoleUser:
		return true
	}
	return false
}

// UserRole defines a role assignment based on the 'user_roles' table
type UserRole struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Role      Role      `json:"role" db:"role" example:"trainer"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
