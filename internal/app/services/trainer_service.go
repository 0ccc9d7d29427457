package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/app/repositories"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
	"github.com/fulafia/esp-portal/internal/pkg/email"
	"github.com/fulafia/esp-portal/internal/pkg/validation"
)

// TrainerService handles the trainer roster, skill assignments and the
// invitation queue
type TrainerService struct {
	trainerRepo  repositories.TrainerStore
	pendingRepo  repositories.PendingTrainerStore
	skillRepo    repositories.SkillStore
	appRepo      repositories.ApplicationStore
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewTrainerService creates a new TrainerService
func NewTrainerService(
	trainerRepo repositories.TrainerStore,
	pendingRepo repositories.PendingTrainerStore,
	skillRepo repositories.SkillStore,
	appRepo repositories.ApplicationStore,
	emailService email.EmailService,
	logger zerolog.Logger,
) *TrainerService {
	return &TrainerService{
		trainerRepo:  trainerRepo,
		pendingRepo:  pendingRepo,
		skillRepo:    skillRepo,
		appRepo:      appRepo,
		emailService: emailService,
		logger:       logger,
	}
}

// List returns the full roster with skills
func (s *TrainerService) List(ctx context.Context) ([]dto.TrainerResponse, error) {
	trainers, err := s.trainerRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TrainerResponse, 0, len(trainers))
	for _, trainer := range trainers {
		responses = append(responses, dto.FromTrainer(trainer))
	}
	return responses, nil
}

// Get returns one roster entry with skills
func (s *TrainerService) Get(ctx context.Context, id int64) (*dto.TrainerResponse, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromTrainer(trainer)
	return &resp, nil
}

// Create puts a trainer on the roster directly and emails the
// activation invitation. Adding an email already on the roster
// refreshes that entry instead of failing, so retried admin submissions
// stay harmless.
func (s *TrainerService) Create(ctx context.Context, req *dto.CreateTrainerRequest) (*dto.TrainerResponse, error) {
	if !validation.ValidName(req.Name) {
		return nil, apperrors.NewValidationError("trainer name is required")
	}
	if !validation.ValidEmail(req.Email) {
		return nil, apperrors.NewValidationError("invalid email format")
	}

	// Check every requested skill before the first write so a bad id
	// leaves neither a roster row nor partial assignments behind
	for _, skillID := range req.SkillIDs {
		if _, err := s.skillRepo.GetByID(ctx, skillID); err != nil {
			return nil, err
		}
	}

	trainer := &models.Trainer{
		Name:        strings.TrimSpace(req.Name),
		Email:       validation.NormalizeEmail(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Bio:         strings.TrimSpace(req.Bio),
	}
	if err := s.trainerRepo.Upsert(ctx, trainer); err != nil {
		return nil, err
	}

	for _, skillID := range req.SkillIDs {
		if err := s.trainerRepo.AssignSkill(ctx, trainer.ID, skillID); err != nil {
			return nil, err
		}
	}

	// Only unactivated trainers need the invitation email
	if trainer.UserID == nil {
		if err := s.emailService.SendTrainerInviteEmail(trainer.Email, trainer.Name); err != nil {
			s.logger.Error().Err(err).Str("email", trainer.Email).Msg("Failed to send trainer invitation email")
		}
	}

	skills, err := s.trainerRepo.GetSkills(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}
	trainer.Skills = skills

	resp := dto.FromTrainer(trainer)
	return &resp, nil
}

// Update edits roster profile fields
func (s *TrainerService) Update(ctx context.Context, id int64, req *dto.UpdateTrainerRequest) (*dto.TrainerResponse, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	trainer.Name = strings.TrimSpace(req.Name)
	trainer.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	trainer.Bio = strings.TrimSpace(req.Bio)
	if !validation.ValidName(trainer.Name) {
		return nil, apperrors.NewValidationError("trainer name is required")
	}

	if err := s.trainerRepo.UpdateProfile(ctx, trainer); err != nil {
		return nil, err
	}

	resp := dto.FromTrainer(trainer)
	return &resp, nil
}

// Delete removes a roster entry
func (s *TrainerService) Delete(ctx context.Context, id int64) error {
	return s.trainerRepo.Delete(ctx, id)
}

// AssignSkill links a skill to a trainer
func (s *TrainerService) AssignSkill(ctx context.Context, trainerID, skillID int64) error {
	if _, err := s.trainerRepo.GetByID(ctx, trainerID); err != nil {
		return err
	}
	if _, err := s.skillRepo.GetByID(ctx, skillID); err != nil {
		return err
	}
	return s.trainerRepo.AssignSkill(ctx, trainerID, skillID)
}

// RemoveSkill unlinks a skill from a trainer
func (s *TrainerService) RemoveSkill(ctx context.Context, trainerID, skillID int64) error {
	return s.trainerRepo.RemoveSkill(ctx, trainerID, skillID)
}

// SubmitInvitation records a public trainer interest submission
func (s *TrainerService) SubmitInvitation(ctx context.Context, req *dto.InviteTrainerRequest) (*dto.PendingTrainerResponse, error) {
	if !validation.ValidName(req.Name) {
		return nil, apperrors.NewValidationError("name is required")
	}
	if !validation.ValidEmail(req.Email) {
		return nil, apperrors.NewValidationError("invalid email format")
	}

	pending := &models.PendingTrainer{
		Name:        strings.TrimSpace(req.Name),
		Email:       validation.NormalizeEmail(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Expertise:   strings.TrimSpace(req.Expertise),
		Message:     strings.TrimSpace(req.Message),
		Status:      models.PendingTrainerPending,
	}
	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		return nil, err
	}

	resp := dto.FromPendingTrainer(pending)
	return &resp, nil
}

// ListInvitations returns invitation queue entries, optionally filtered
func (s *TrainerService) ListInvitations(ctx context.Context, status models.PendingTrainerStatus) ([]dto.PendingTrainerResponse, error) {
	pendings, err := s.pendingRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PendingTrainerResponse, 0, len(pendings))
	for _, pending := range pendings {
		responses = append(responses, dto.FromPendingTrainer(pending))
	}
	return responses, nil
}

// ApproveInvitation accepts an invitation, puts the trainer on the
// roster and emails the activation invitation. Approving twice keeps a
// single roster row.
func (s *TrainerService) ApproveInvitation(ctx context.Context, id int64) (*dto.TrainerResponse, error) {
	pending, err := s.pendingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	trainer := &models.Trainer{
		Name:        pending.Name,
		Email:       pending.Email,
		PhoneNumber: pending.PhoneNumber,
		Bio:         pending.Message,
	}
	if err := s.trainerRepo.Upsert(ctx, trainer); err != nil {
		return nil, err
	}

	if err := s.pendingRepo.UpdateStatus(ctx, id, models.PendingTrainerApproved); err != nil {
		return nil, err
	}

	if trainer.UserID == nil {
		if err := s.emailService.SendTrainerInviteEmail(trainer.Email, trainer.Name); err != nil {
			s.logger.Error().Err(err).Str("email", trainer.Email).Msg("Failed to send trainer invitation email")
		}
	}

	s.logger.Info().
		Int64("invitationID", id).
		Int64("trainerID", trainer.ID).
		Msg("Trainer invitation approved")

	skills, err := s.trainerRepo.GetSkills(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}
	trainer.Skills = skills

	resp := dto.FromTrainer(trainer)
	return &resp, nil
}

// RejectInvitation declines an invitation without touching the roster
func (s *TrainerService) RejectInvitation(ctx context.Context, id int64) error {
	if _, err := s.pendingRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.pendingRepo.UpdateStatus(ctx, id, models.PendingTrainerRejected)
}

// Dashboard returns the signed-in trainer's profile, skills and the
// applications submitted to those skills
func (s *TrainerService) Dashboard(ctx context.Context, userID int64) (*dto.TrainerDashboard, error) {
	trainer, err := s.trainerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	skillIDs := make([]int64, 0, len(trainer.Skills))
	for _, skill := range trainer.Skills {
		skillIDs = append(skillIDs, skill.ID)
	}

	apps, err := s.appRepo.ListBySkills(ctx, skillIDs)
	if err != nil {
		return nil, err
	}

	appResponses := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		appResponses = append(appResponses, dto.FromApplication(app))
	}

	profile := dto.FromTrainer(trainer)
	return &dto.TrainerDashboard{
		Trainer:      profile,
		Applications: appResponses,
	}, nil
}
