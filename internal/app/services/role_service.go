package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/app/repositories"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
)

// RoleService handles role grants and revocations
type RoleService struct {
	userRepo repositories.UserStore
	roleRepo repositories.RoleStore
	logger   zerolog.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(userRepo repositories.UserStore, roleRepo repositories.RoleStore, logger zerolog.Logger) *RoleService {
	return &RoleService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// Grant assigns a role to the user holding the given email
func (s *RoleService) Grant(ctx context.Context, req *dto.GrantRoleRequest) (*dto.UserRoleResponse, error) {
	if !models.ValidRole(req.Role) {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.roleRepo.Grant(ctx, user.ID, req.Role); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", user.ID).
		Str("role", string(req.Role)).
		Msg("Role granted")

	return &dto.UserRoleResponse{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(req.Role),
	}, nil
}

// Revoke removes a role grant
func (s *RoleService) Revoke(ctx context.Context, req *dto.RevokeRoleRequest) error {
	if !models.ValidRole(req.Role) {
		return apperrors.ErrInvalidRole
	}
	return s.roleRepo.Revoke(ctx, req.UserID, req.Role)
}

// List returns role grants joined with their users, optionally
// filtered to one role
func (s *RoleService) List(ctx context.Context, role models.Role) ([]dto.UserRoleResponse, error) {
	if role != "" && !models.ValidRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	grants, users, err := s.roleRepo.ListGrants(ctx, role)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserRoleResponse, 0, len(grants))
	for _, grant := range grants {
		resp := dto.UserRoleResponse{
			UserID: grant.UserID,
			Role:   string(grant.Role),
		}
		if user, ok := users[grant.UserID]; ok {
			resp.Email = user.Email
			resp.Name = user.Name
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
