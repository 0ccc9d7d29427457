package services

import (
	"context"
	"strings"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/app/repositories"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
)

// SkillService handles skill track management
type SkillService struct {
	skillRepo repositories.SkillStore
}

// NewSkillService creates a new SkillService
func NewSkillService(skillRepo repositories.SkillStore) *SkillService {
	return &SkillService{skillRepo: skillRepo}
}

// ListActive returns tracks open for student applications
func (s *SkillService) ListActive(ctx context.Context) ([]dto.SkillResponse, error) {
	return s.list(ctx, true)
}

// ListAll returns every track, including closed ones, for admins
func (s *SkillService) ListAll(ctx context.Context) ([]dto.SkillResponse, error) {
	return s.list(ctx, false)
}

func (s *SkillService) list(ctx context.Context, activeOnly bool) ([]dto.SkillResponse, error) {
	skills, err := s.skillRepo.GetAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SkillResponse, 0, len(skills))
	for _, skill := range skills {
		responses = append(responses, dto.FromSkill(skill))
	}
	return responses, nil
}

// Get returns one skill track
func (s *SkillService) Get(ctx context.Context, id int64) (*dto.SkillResponse, error) {
	skill, err := s.skillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromSkill(skill)
	return &resp, nil
}

// Delete removes a skill track with no application history
func (s *SkillService) Delete(ctx context.Context, id int64) error {
	return s.skillRepo.Delete(ctx, id)
}

// Create adds a new skill track
func (s *SkillService) Create(ctx context.Context, name, code, description string, isActive bool) (*dto.SkillResponse, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(strings.ToLower(code))
	if name == "" || code == "" {
		return nil, apperrors.NewValidationError("skill name and code are required")
	}

	skill := &models.Skill{
		Name:        name,
		Code:        code,
		Description: strings.TrimSpace(description),
		IsActive:    isActive,
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}

	resp := dto.FromSkill(skill)
	return &resp, nil
}

// Update edits a skill track
func (s *SkillService) Update(ctx context.Context, id int64, name, code, description string, isActive bool) (*dto.SkillResponse, error) {
	skill, err := s.skillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	skill.Name = strings.TrimSpace(name)
	skill.Code = strings.TrimSpace(strings.ToLower(code))
	skill.Description = strings.TrimSpace(description)
	skill.IsActive = isActive
	if skill.Name == "" || skill.Code == "" {
		return nil, apperrors.NewValidationError("skill name and code are required")
	}

	if err := s.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}

	resp := dto.FromSkill(skill)
	return &resp, nil
}

// SetActive opens or closes a track for applications
func (s *SkillService) SetActive(ctx context.Context, id int64, active bool) error {
	return s.skillRepo.SetActive(ctx, id, active)
}
