package dto

import (
	"time"

	"github.com/fulafia/esp-portal/internal/app/models"
)

// SubmitApplicationRequest is the multipart form a student submits.
// The receipt file is read separately from the multipart payload.
type SubmitApplicationRequest struct {
	StudentName  string `form:"studentName" binding:"required" example:"Jane Doe"`
	StudentEmail string `form:"studentEmail" binding:"required,email" example:"jane@student.fulafia.edu.ng"`
	PhoneNumber  string `form:"phoneNumber" binding:"required" example:"+2348012345678"`
	MatricNumber string `form:"matricNumber" binding:"required" example:"FUL/2021/0042"`
	LevelOfStudy string `form:"levelOfStudy" binding:"required" example:"300"`
	DepartmentID int64  `form:"departmentId" binding:"required" example:"1"`
	SkillID      int64  `form:"skillId" binding:"required" example:"2"`
}

// ReviewApplicationRequest is the admin's status/notes update
type ReviewApplicationRequest struct {
	Status     models.ApplicationStatus `json:"status" binding:"required" example:"accepted"`
	AdminNotes string                   `json:"adminNotes" example:"Receipt verified."`
}

// ApplicationResponse is an application row with its joined relations flattened
type ApplicationResponse struct {
	ID             int64     `json:"id"`
	StudentName    string    `json:"studentName"`
	StudentEmail   string    `json:"studentEmail"`
	PhoneNumber    string    `json:"phoneNumber"`
	MatricNumber   string    `json:"matricNumber"`
	LevelOfStudy   string    `json:"levelOfStudy"`
	DepartmentName string    `json:"departmentName"`
	DepartmentCode string    `json:"departmentCode"`
	SkillName      string    `json:"skillName"`
	SkillCode      string    `json:"skillCode"`
	Status         string    `json:"status"`
	AdminNotes     string    `json:"adminNotes"`
	EspReceiptURL  *string   `json:"espReceiptUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FromApplication converts a model row with loaded relations to a response
func FromApplication(app *models.StudentApplication) ApplicationResponse {
	resp := ApplicationResponse{
		ID:            app.ID,
		StudentName:   app.StudentName,
		StudentEmail:  app.StudentEmail,
		PhoneNumber:   app.PhoneNumber,
		MatricNumber:  app.MatricNumber,
		LevelOfStudy:  app.LevelOfStudy,
		Status:        string(app.Status),
		AdminNotes:    app.AdminNotes,
		EspReceiptURL: app.EspReceiptURL,
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}
	if app.Department != nil {
		resp.DepartmentName = app.Department.Name
		resp.DepartmentCode = app.Department.Code
	}
	if app.Skill != nil {
		resp.SkillName = app.Skill.Name
		resp.SkillCode = app.Skill.Code
	}
	return resp
}
