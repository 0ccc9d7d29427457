package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/app/repositories"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
	"github.com/fulafia/esp-portal/internal/pkg/auth"
	"github.com/fulafia/esp-portal/internal/pkg/validation"
)

// AuthService handles trainer activation, logins and session management.
// Role decisions always come from the role store; profile tables carry
// display data only.
type AuthService struct {
	userRepo    repositories.UserStore
	roleRepo    repositories.RoleStore
	adminRepo   repositories.AdminStore
	trainerRepo repositories.TrainerStore
	tokenRepo   repositories.TokenStore
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.UserStore,
	roleRepo repositories.RoleStore,
	adminRepo repositories.AdminStore,
	trainerRepo repositories.TrainerStore,
	tokenRepo repositories.TokenStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		adminRepo:   adminRepo,
		trainerRepo: trainerRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// validateActivation checks the activation input before any lookups run
func (s *AuthService) validateActivation(req *dto.ActivateTrainerRequest) error {
	if !validation.ValidEmail(req.Email) {
		return apperrors.NewValidationError("invalid email format")
	}
	if len(req.Password) < validation.PasswordMinLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("password must be at least %d characters long", validation.PasswordMinLength))
	}
	if req.Password != req.ConfirmPassword {
		return apperrors.NewValidationError("passwords do not match")
	}
	return nil
}

// ActivateTrainer turns an invited roster entry into a working account.
// The flow is strictly: validate input, find the roster row by email,
// reject already activated rows, create the identity, grant the trainer
// role, link the roster row, then issue tokens. A missing roster row
// leaves no side effects behind.
func (s *AuthService) ActivateTrainer(ctx context.Context, req *dto.ActivateTrainerRequest) (*dto.LoginResponse, error) {
	if err := s.validateActivation(req); err != nil {
		return nil, err
	}

	email := validation.NormalizeEmail(req.Email)

	trainer, err := s.trainerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrTrainerNotFound) {
			s.logger.Info().Str("email", email).Msg("Activation attempted for email not on roster")
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, err
	}

	if trainer.UserID != nil {
		return nil, apperrors.ErrAlreadyActivated
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		Name:     trainer.Name,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent activation may have won the unique email race.
		// The database verdict is authoritative.
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrAlreadyActivated
		}
		return nil, err
	}

	if err := s.roleRepo.Grant(ctx, user.ID, models.RoleTrainer); err != nil &&
		!errors.Is(err, apperrors.ErrRoleAlreadyAssigned) {
		return nil, err
	}

	if err := s.trainerRepo.LinkUser(ctx, trainer.ID, user.ID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("email", email).
		Int64("trainerID", trainer.ID).
		Int64("userID", user.ID).
		Msg("Trainer account activated")

	return s.issueSession(ctx, user, models.RoleTrainer)
}

// TrainerLogin authenticates a trainer and issues a session
func (s *AuthService) TrainerLogin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	hasRole, err := s.roleRepo.HasRole(ctx, user.ID, models.RoleTrainer)
	if err != nil {
		return nil, err
	}
	if !hasRole {
		return nil, s.rejectUnauthorized(ctx, user.ID, "trainer login without trainer role")
	}

	// A trainer role without a roster row is an inconsistent account;
	// refuse the session rather than serve a half-working portal. An
	// unlinked roster row matching the login email is healed in place.
	if _, err := s.trainerRepo.GetByUserID(ctx, user.ID); err != nil {
		if !errors.Is(err, apperrors.ErrTrainerNotFound) {
			return nil, err
		}
		trainer, emailErr := s.trainerRepo.GetByEmail(ctx, user.Email)
		if emailErr != nil || trainer.UserID != nil {
			return nil, s.rejectUnauthorized(ctx, user.ID, "trainer role without roster profile")
		}
		if err := s.trainerRepo.LinkUser(ctx, trainer.ID, user.ID); err != nil {
			return nil, err
		}
		s.logger.Info().
			Int64("trainerID", trainer.ID).
			Int64("userID", user.ID).
			Msg("Backfilled roster link on trainer login")
	}

	return s.issueSession(ctx, user, models.RoleTrainer)
}

// AdminLogin authenticates an admin and issues a session. A missing
// admin profile row is created on first login; the role grant alone
// decides access.
func (s *AuthService) AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	hasRole, err := s.roleRepo.HasRole(ctx, user.ID, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if !hasRole {
		return nil, s.rejectUnauthorized(ctx, user.ID, "admin login without admin role")
	}

	if _, err := s.adminRepo.GetByUserID(ctx, user.ID); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			name := user.Name
			if name == "" {
				name = strings.SplitN(user.Email, "@", 2)[0]
			}
			admin := &models.Admin{UserID: user.ID, Name: name, Email: user.Email}
			if err := s.adminRepo.Create(ctx, admin); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	return s.issueSession(ctx, user, models.RoleAdmin)
}

// ChangePassword replaces the signed-in user's password. Every live
// refresh token is revoked so stolen sessions die with the old
// credential; the caller keeps their access token until it expires.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	if len(req.NewPassword) < validation.PasswordMinLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("password must be at least %d characters long", validation.PasswordMinLength))
	}
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.NewValidationError("passwords do not match")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to revoke tokens after password change")
	}

	s.logger.Info().Int64("userID", userID).Msg("Password changed")
	return nil
}

// PurgeExpiredTokens removes refresh tokens past their expiry. Run
// periodically so the token table does not grow without bound.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.tokenRepo.DeleteExpiredTokens(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info().Int64("deleted", n).Msg("Purged expired refresh tokens")
	}
	return n, nil
}

// RefreshToken exchanges a live refresh token for a new token pair.
// The old token is revoked; refresh tokens are single use.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, expiry, revoked, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if expiry.Before(timeNow()) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	role, err := s.primaryRole(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	resp, err := s.issueSession(ctx, user, role)
	if err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}

// Logout revokes one refresh token. Access tokens simply expire.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenRepo.RevokeToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

// Profile returns the authenticated user's portal profile
func (s *AuthService) Profile(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	role, err := s.primaryRole(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.UserProfile{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(role),
	}, nil
}

// authenticate resolves the identity for an email/password pair
func (s *AuthService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return user, nil
}

// rejectUnauthorized revokes every live session for the user and
// returns the portal authorization error. A valid identity without the
// required role must never stay signed in.
func (s *AuthService) rejectUnauthorized(ctx context.Context, userID int64, reason string) error {
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to revoke tokens on unauthorized login")
	}
	s.logger.Warn().Int64("userID", userID).Str("reason", reason).Msg("Login rejected")
	return apperrors.ErrNotAuthorized
}

// primaryRole picks the role a session acts under when a user holds
// several. Admin outranks trainer outranks moderator.
func (s *AuthService) primaryRole(ctx context.Context, userID int64) (models.Role, error) {
	roles, err := s.roleRepo.GetRolesForUser(ctx, userID)
	if err != nil {
		return "", err
	}

	for _, candidate := range []models.Role{models.RoleAdmin, models.RoleTrainer, models.RoleModerator, models.RoleUser} {
		for _, role := range roles {
			if role == candidate {
				return role, nil
			}
		}
	}

	return "", apperrors.ErrNotAuthorized
}

// issueSession creates the token pair and persists the refresh token
func (s *AuthService) issueSession(ctx context.Context, user *models.User, role models.Role) (*dto.LoginResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user, role)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Tokens: &dto.TokenResponse{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			TokenType:        "Bearer",
			ExpiresIn:        int64(expiresIn),
			RefreshExpiresIn: int64(refreshExpiresIn),
		},
		Profile: &dto.UserProfile{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  string(role),
		},
	}, nil
}
