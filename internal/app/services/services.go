package services

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/fulafia/esp-portal/internal/app/repositories"
	"github.com/fulafia/esp-portal/internal/pkg/auth"
	"github.com/fulafia/esp-portal/internal/pkg/email"
	"github.com/fulafia/esp-portal/internal/pkg/filestorage"
)

// timeNow is a seam for tests that control the clock
var timeNow = time.Now

// Services holds all the service instances
type Services struct {
	AuthService        *AuthService
	ApplicationService *ApplicationService
	SkillService       *SkillService
	DepartmentService  *DepartmentService
	TrainerService     *TrainerService
	AnalyticsService   *AnalyticsService
	RoleService        *RoleService
}

// NewServices initializes all services
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.RoleRepository,
			repos.AdminRepository,
			repos.TrainerRepository,
			repos.TokenRepository,
			jwtService,
			logger,
		),
		ApplicationService: NewApplicationService(
			repos.ApplicationRepository,
			repos.SkillRepository,
			repos.DepartmentRepository,
			emailService,
			storage,
			logger,
		),
		SkillService:      NewSkillService(repos.SkillRepository),
		DepartmentService: NewDepartmentService(repos.DepartmentRepository),
		TrainerService: NewTrainerService(
			repos.TrainerRepository,
			repos.PendingTrainerRepository,
			repos.SkillRepository,
			repos.ApplicationRepository,
			emailService,
			logger,
		),
		AnalyticsService: NewAnalyticsService(repos.AnalyticsRepository),
		RoleService:      NewRoleService(repos.UserRepository, repos.RoleRepository, logger),
	}
}
