package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/fulafia/esp-portal/internal/app/models"
	appRepos "github.com/fulafia/esp-portal/internal/app/repositories"
	"github.com/fulafia/esp-portal/internal/config"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
	"github.com/fulafia/esp-portal/internal/pkg/auth"
)

// defaultDepartments seeds the department dropdown on the application form
var defaultDepartments = []appModels.Department{
	{Name: "Computer Science", Code: "CSC"},
	{Name: "Economics", Code: "ECO"},
	{Name: "Mass Communication", Code: "MCM"},
	{Name: "Microbiology", Code: "MCB"},
	{Name: "Political Science", Code: "POL"},
	{Name: "Sociology", Code: "SOC"},
}

// defaultSkills seeds the initial skill tracks
var defaultSkills = []appModels.Skill{
	{Name: "Digital Marketing", Code: "digital_marketing", IsActive: true},
	{Name: "Fashion Design", Code: "fashion_design", IsActive: true},
	{Name: "Photography", Code: "photography", IsActive: true},
	{Name: "Catering", Code: "catering", IsActive: true},
	{Name: "Shoe Making", Code: "shoe_making", IsActive: true},
	{Name: "Web Development", Code: "web_development", IsActive: true},
}

// CreateDefaultData seeds departments, skill tracks and the bootstrap
// admin account. Every step is idempotent; reruns on startup are safe.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	deptRepo := appRepos.NewDepartmentRepository(dbPool)
	skillRepo := appRepos.NewSkillRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)
	roleRepo := appRepos.NewRoleRepository(dbPool)
	adminRepo := appRepos.NewAdminRepository(dbPool)

	var finalErr error

	for _, dept := range defaultDepartments {
		d := dept
		if err := deptRepo.Create(ctx, &d); err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("code", dept.Code).Msg("Error seeding department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, skill := range defaultSkills {
		s := skill
		if err := skillRepo.Create(ctx, &s); err != nil && !errors.Is(err, apperrors.ErrSkillAlreadyExists) {
			lgr.Error().Err(err).Str("code", skill.Code).Msg("Error seeding skill")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Bootstrap admin. Without it no one could reach the admin portal
	// on a fresh database.
	adminEmail := config.GetEnv("ADMIN_EMAIL", "admin@fulafia.edu.ng")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "")
	if adminPassword == "" {
		lgr.Warn().Msg("ADMIN_PASSWORD not set, skipping bootstrap admin")
		return finalErr
	}

	user, err := userRepo.GetByEmail(ctx, adminEmail)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		hashed, hashErr := auth.HashPassword(adminPassword)
		if hashErr != nil {
			return errors.Join(finalErr, hashErr)
		}
		user = &appModels.User{
			Email:    adminEmail,
			Password: hashed,
			Name:     "Portal Administrator",
			IsActive: true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			lgr.Error().Err(err).Msg("Error creating bootstrap admin user")
			return errors.Join(finalErr, err)
		}
		lgr.Info().Str("email", adminEmail).Msg("Bootstrap admin user created")
	} else if err != nil {
		return errors.Join(finalErr, err)
	}

	if err := roleRepo.Grant(ctx, user.ID, appModels.RoleAdmin); err != nil &&
		!errors.Is(err, apperrors.ErrRoleAlreadyAssigned) {
		lgr.Error().Err(err).Msg("Error granting bootstrap admin role")
		finalErr = errors.Join(finalErr, err)
	}

	if _, err := adminRepo.GetByUserID(ctx, user.ID); errors.Is(err, apperrors.ErrResourceNotFound) {
		admin := &appModels.Admin{UserID: user.ID, Name: user.Name, Email: user.Email}
		if err := adminRepo.Create(ctx, admin); err != nil {
			lgr.Error().Err(err).Msg("Error creating bootstrap admin profile")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
