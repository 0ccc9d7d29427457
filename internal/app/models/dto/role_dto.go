package dto

import "github.com/fulafia/esp-portal/internal/app/models"

// GrantRoleRequest grants a role to the user identified by email
type GrantRoleRequest struct {
	Email string      `json:"email" binding:"required,email" example:"staff@fulafia.edu.ng"`
	Role  models.Role `json:"role" binding:"required" example:"moderator"`
}

// RevokeRoleRequest revokes a role from a user
type RevokeRoleRequest struct {
	UserID int64       `json:"userId" binding:"required"`
	Role   models.Role `json:"role" binding:"required"`
}

// UserRoleResponse is a role grant joined with its user identity
type UserRoleResponse struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}
