package models

import "time"

// Trainer defines a trainer profile row based on the 'trainers' table.
// UserID is nil until the trainer completes account activation; there is
// exactly one trainer row per email, ever.
type Trainer struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" example:"Amina Musa"`
	Email       string    `json:"email" db:"email" example:"amina@fulafia.edu.ng"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
	Bio         string    `json:"bio" db:"bio"`
	UserID      *int64    `json:"userId,omitempty" db:"user_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	Skills []*Skill `json:"skills,omitempty"` // Relation, no db tag
}

// PendingTrainerStatus is the lifecycle state of a trainer invitation
type PendingTrainerStatus string

const (
	PendingTrainerPending  PendingTrainerStatus = "pending"
	PendingTrainerApproved PendingTrainerStatus = "approved"
	PendingTrainerRejected PendingTrainerStatus = "rejected"
)

// PendingTrainer defines a trainer invitation based on the
// 'pending_trainers' table
type PendingTrainer struct {
	ID          int64                `json:"id" db:"id"`
	Name        string               `json:"name" db:"name"`
	Email       string               `json:"email" db:"email"`
	PhoneNumber string               `json:"phoneNumber" db:"phone_number"`
	Expertise   string               `json:"expertise" db:"expertise" example:"fashion_design"`
	Message     string               `json:"message" db:"message"`
	Status      PendingTrainerStatus `json:"status" db:"status" example:"pending"`
	CreatedAt   time.Time            `json:"createdAt" db:"created_at"`
}

// TrainerSkill defines a trainer-to-skill assignment based on the
// 'trainer_skills' join table
type TrainerSkill struct {
	TrainerID int64     `json:"trainerId" db:"trainer_id"`
	SkillID   int64     `json:"skillId" db:"skill_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
