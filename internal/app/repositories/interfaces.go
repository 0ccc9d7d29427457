package repositories

import (
	"context"
	"time"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
)

// The interfaces below are what the service layer depends on. The
// concrete pgx-backed types above satisfy them; tests substitute mocks.

// UserStore persists authentication identities
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	SetActive(ctx context.Context, userID int64, active bool) error
}

// RoleStore persists role grants, the single authorization source
type RoleStore interface {
	Grant(ctx context.Context, userID int64, role models.Role) error
	Revoke(ctx context.Context, userID int64, role models.Role) error
	HasRole(ctx context.Context, userID int64, role models.Role) (bool, error)
	GetRolesForUser(ctx context.Context, userID int64) ([]models.Role, error)
	ListGrants(ctx context.Context, role models.Role) ([]*models.UserRole, map[int64]*models.User, error)
}

// AdminStore persists admin profiles
type AdminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByUserID(ctx context.Context, userID int64) (*models.Admin, error)
}

// DepartmentStore persists departments
type DepartmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
}

// SkillStore persists skill tracks
type SkillStore interface {
	Create(ctx context.Context, skill *models.Skill) error
	GetByID(ctx context.Context, id int64) (*models.Skill, error)
	GetAll(ctx context.Context, activeOnly bool) ([]*models.Skill, error)
	Update(ctx context.Context, skill *models.Skill) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// ApplicationStore persists student applications
type ApplicationStore interface {
	Create(ctx context.Context, app *models.StudentApplication) error
	GetByID(ctx context.Context, id int64) (*models.StudentApplication, error)
	List(ctx context.Context, filter ApplicationFilter) ([]*models.StudentApplication, error)
	ListBySkills(ctx context.Context, skillIDs []int64) ([]*models.StudentApplication, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, adminNotes string) (models.ApplicationStatus, error)
	SetReceiptURL(ctx context.Context, id int64, url string) error
}

// TrainerStore persists the trainer roster and skill assignments
type TrainerStore interface {
	Upsert(ctx context.Context, trainer *models.Trainer) error
	GetByID(ctx context.Context, id int64) (*models.Trainer, error)
	GetByEmail(ctx context.Context, email string) (*models.Trainer, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Trainer, error)
	GetAll(ctx context.Context) ([]*models.Trainer, error)
	UpdateProfile(ctx context.Context, trainer *models.Trainer) error
	LinkUser(ctx context.Context, trainerID, userID int64) error
	Delete(ctx context.Context, id int64) error
	GetSkills(ctx context.Context, trainerID int64) ([]*models.Skill, error)
	AssignSkill(ctx context.Context, trainerID, skillID int64) error
	RemoveSkill(ctx context.Context, trainerID, skillID int64) error
}

// PendingTrainerStore persists the trainer invitation queue
type PendingTrainerStore interface {
	Create(ctx context.Context, pending *models.PendingTrainer) error
	GetByID(ctx context.Context, id int64) (*models.PendingTrainer, error)
	List(ctx context.Context, status models.PendingTrainerStatus) ([]*models.PendingTrainer, error)
	UpdateStatus(ctx context.Context, id int64, status models.PendingTrainerStatus) error
}

// TokenStore persists refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
	DeleteExpiredTokens(ctx context.Context) (int64, error)
}

// AnalyticsStore aggregates application volumes
type AnalyticsStore interface {
	CountApplications(ctx context.Context) (int64, error)
	CountTrainers(ctx context.Context) (int64, error)
	CountSkills(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]dto.StatusCount, error)
	CountBySkill(ctx context.Context) ([]dto.SkillCount, error)
	CountByDepartment(ctx context.Context) ([]dto.DepartmentCount, error)
}
