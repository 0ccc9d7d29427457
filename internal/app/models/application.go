package models

import "time"

// ApplicationStatus is the review state of a student application
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// ValidApplicationStatus reports whether s is a known status
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// StudentApplication defines a student's request to join a skill track,
// based on the 'student_applications' table. Status and admin notes are
// mutated only by admins; rows are never deleted.
type StudentApplication struct {
	ID            int64             `json:"id" db:"id"`
	StudentName   string            `json:"studentName" db:"student_name" example:"Jane Doe"`
	StudentEmail  string            `json:"studentEmail" db:"student_email" example:"jane@student.fulafia.edu.ng"`
	PhoneNumber   string            `json:"phoneNumber" db:"phone_number"`
	MatricNumber  string            `json:"matricNumber" db:"matric_number" example:"FUL/2021/0042"`
	LevelOfStudy  string            `json:"levelOfStudy" db:"level_of_study" example:"300"`
	DepartmentID  int64             `json:"departmentId" db:"department_id"`
	SkillID       int64             `json:"skillId" db:"skill_id"`
	Status        ApplicationStatus `json:"status" db:"status" example:"pending"`
	AdminNotes    string            `json:"adminNotes" db:"admin_notes"`
	EspReceiptURL *string           `json:"espReceiptUrl,omitempty" db:"esp_receipt_url"`
	CreatedAt     time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time         `json:"updatedAt" db:"updated_at"`

	Department *Department `json:"department,omitempty"` // Relation, no db tag
	Skill      *Skill      `json:"skill,omitempty"`       // Relation, no db tag
}
