package models

import (
	"time"
)

// User defines the authentication identity based on the 'users' table.
// Authorization is decided by user_roles alone; the admins and trainers
// tables reference a user but never duplicate the role decision.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"trainer@fulafia.edu.ng"`
	Password  string    `json:"-" db:"password"`
	Name      string    `json:"name" db:"name" example:"Amina Musa"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Admin defines the admin profile row based on the 'admins' table
type Admin struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
