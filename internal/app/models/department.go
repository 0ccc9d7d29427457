package models

// Department defines a department reference row based on the 'departments' table
type Department struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" binding:"required" example:"Computer Science"`
	Code string `json:"code" db:"code" binding:"required" example:"CSC"`
}
