package dto

import (
	"time"

	"github.com/fulafia/esp-portal/internal/app/models"
)

// CreateTrainerRequest registers a trainer directly on the roster
type CreateTrainerRequest struct {
	Name        string  `json:"name" binding:"required" example:"John Trainer"`
	Email       string  `json:"email" binding:"required,email" example:"john@fulafia.edu.ng"`
	PhoneNumber string  `json:"phoneNumber" example:"+2348012345678"`
	Bio         string  `json:"bio" example:"Ten years of welding practice."`
	SkillIDs    []int64 `json:"skillIds"`
}

// UpdateTrainerRequest edits roster profile fields
type UpdateTrainerRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Bio         string `json:"bio"`
}

// InviteTrainerRequest submits a trainer interest/invitation entry
type InviteTrainerRequest struct {
	Name        string `json:"name" binding:"required" example:"John Trainer"`
	Email       string `json:"email" binding:"required,email" example:"john@fulafia.edu.ng"`
	PhoneNumber string `json:"phoneNumber" example:"+2348012345678"`
	Expertise   string `json:"expertise" example:"fashion_design"`
	Message     string `json:"message" example:"I have run a tailoring shop for 8 years."`
}

// AssignSkillRequest links a skill to a trainer
type AssignSkillRequest struct {
	SkillID int64 `json:"skillId" binding:"required" example:"2"`
}

// TrainerResponse is a roster row with its assigned skills
type TrainerResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phoneNumber"`
	Bio         string          `json:"bio"`
	Activated   bool            `json:"activated"`
	Skills      []SkillResponse `json:"skills"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PendingTrainerResponse is an invitation queue entry
type PendingTrainerResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Expertise   string    `json:"expertise"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TrainerDashboard is the signed-in trainer's view: their profile plus
// the applications submitted to their skill tracks
type TrainerDashboard struct {
	Trainer      TrainerResponse       `json:"trainer"`
	Applications []ApplicationResponse `json:"applications"`
}

// SkillResponse is a skill track row
type SkillResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// DepartmentResponse is a department row
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// FromTrainer converts a roster row with loaded skills to a response
func FromTrainer(t *models.Trainer) TrainerResponse {
	resp := TrainerResponse{
		ID:          t.ID,
		Name:        t.Name,
		Email:       t.Email,
		PhoneNumber: t.PhoneNumber,
		Bio:         t.Bio,
		Activated:   t.UserID != nil,
		Skills:      make([]SkillResponse, 0, len(t.Skills)),
		CreatedAt:   t.CreatedAt,
	}
	for _, s := range t.Skills {
		resp.Skills = append(resp.Skills, FromSkill(s))
	}
	return resp
}

// FromPendingTrainer converts an invitation row to a response
func FromPendingTrainer(p *models.PendingTrainer) PendingTrainerResponse {
	return PendingTrainerResponse{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		Expertise:   p.Expertise,
		Message:     p.Message,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

// FromSkill converts a skill row to a response
func FromSkill(s *models.Skill) SkillResponse {
	return SkillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Code:        s.Code,
		Description: s.Description,
		IsActive:    s.IsActive,
	}
}

// FromDepartment converts a department row to a response
func FromDepartment(d *models.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name, Code: d.Code}
}
