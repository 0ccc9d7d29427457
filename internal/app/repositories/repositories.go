package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository           *UserRepository
	RoleRepository           *RoleRepository
	AdminRepository          *AdminRepository
	DepartmentRepository     *DepartmentRepository
	SkillRepository          *SkillRepository
	ApplicationRepository    *ApplicationRepository
	TrainerRepository        *TrainerRepository
	PendingTrainerRepository *PendingTrainerRepository
	TokenRepository          *TokenRepository
	AnalyticsRepository      *AnalyticsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		RoleRepository:           NewRoleRepository(db),
		AdminRepository:          NewAdminRepository(db),
		DepartmentRepository:     NewDepartmentRepository(db),
		SkillRepository:          NewSkillRepository(db),
		ApplicationRepository:    NewApplicationRepository(db),
		TrainerRepository:        NewTrainerRepository(db),
		PendingTrainerRepository: NewPendingTrainerRepository(db),
		TokenRepository:          NewTokenRepository(db),
		AnalyticsRepository:      NewAnalyticsRepository(db),
	}
}
