package models

import "time"

// Skill defines a training track based on the 'skills' table.
// IsActive gates visibility to applying students.
type Skill struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"Digital Marketing"`
	Code        string    `json:"code" db:"code" example:"digital_marketing"`
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
