package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
	"github.com/fulafia/esp-portal/internal/pkg/auth"
)

// testPasswordHash is computed once; bcrypt at cost 12 is too slow to
// rehash in every test.
var testPasswordHash = func() string {
	h, err := auth.HashPassword("sekret123")
	if err != nil {
		panic(err)
	}
	return h
}()

type authFixture struct {
	users    *fakeUserStore
	roles    *fakeRoleStore
	admins   *fakeAdminStore
	trainers *fakeTrainerStore
	pending  *fakePendingTrainerStore
	tokens   *fakeTokenStore
	svc      *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeUserStore(),
		roles:    newFakeRoleStore(),
		admins:   newFakeAdminStore(),
		trainers: newFakeTrainerStore(),
		pending:  newFakePendingTrainerStore(),
		tokens:   newFakeTokenStore(),
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	f.svc = NewAuthService(f.users, f.roles, f.admins, f.trainers, f.tokens, jwtService, zerolog.Nop())
	return f
}

func (f *authFixture) addActivatedTrainer(email string) *models.User {
	user := f.users.add(email, testPasswordHash, "Amina Musa", true)
	f.roles.grants[user.ID] = []models.Role{models.RoleTrainer}
	f.trainers.add("Amina Musa", email, &user.ID)
	return user
}

func TestActivateTrainer(t *testing.T) {
	ctx := context.Background()

	t.Run("activates an invited trainer and issues a session", func(t *testing.T) {
		f := newAuthFixture()
		trainer := f.trainers.add("Amina Musa", "amina@fulafia.edu.ng", nil)

		resp, err := f.svc.ActivateTrainer(ctx, &dto.ActivateTrainerRequest{
			Email:           "Amina@FULafia.edu.ng",
			Password:        "sekret123",
			ConfirmPassword: "sekret123",
		})
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
		assert.Equal(t, string(models.RoleTrainer), resp.Profile.Role)
		assert.Equal(t, "amina@fulafia.edu.ng", resp.Profile.Email)

		user, err := f.users.GetByEmail(ctx, "amina@fulafia.edu.ng")
		require.NoError(t, err)
		hasRole, err := f.roles.HasRole(ctx, user.ID, models.RoleTrainer)
		require.NoError(t, err)
		assert.True(t, hasRole)

		require.NotNil(t, trainer.UserID)
		assert.Equal(t, user.ID, *trainer.UserID)
		assert.Equal(t, 1, f.tokens.liveTokenCount(user.ID))
	})

	t.Run("rejects an email not on the roster without side effects", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.svc.ActivateTrainer(ctx, &dto.ActivateTrainerRequest{
			Email:           "stranger@fulafia.edu.ng",
			Password:        "sekret123",
			ConfirmPassword: "sekret123",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvitationNotFound)
		assert.Empty(t, f.users.users, "no account may be created for an uninvited email")
		assert.Empty(t, f.tokens.tokens)
	})

	t.Run("an interest submission alone does not unlock activation", func(t *testing.T) {
		f := newAuthFixture()
		interest := &models.PendingTrainer{
			Name:   "Bola Adeyemi",
			Email:  "bola@fulafia.edu.ng",
			Status: models.PendingTrainerPending,
		}
		require.NoError(t, f.pending.Create(ctx, interest))

		_, err := f.svc.ActivateTrainer(ctx, &dto.ActivateTrainerRequest{
			Email:           "bola@fulafia.edu.ng",
			Password:        "sekret123",
			ConfirmPassword: "sekret123",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvitationNotFound,
			"only admin-created roster entries may activate")
		assert.Empty(t, f.users.users)
		assert.Equal(t, models.PendingTrainerPending, interest.Status,
			"the interest submission stays queued for admin review")
	})

	t.Run("rejects a second activation of the same trainer", func(t *testing.T) {
		f := newAuthFixture()
		user := f.addActivatedTrainer("amina@fulafia.edu.ng")

		_, err := f.svc.ActivateTrainer(ctx, &dto.ActivateTrainerRequest{
			Email:           "amina@fulafia.edu.ng",
			Password:        "newpassword",
			ConfirmPassword: "newpassword",
		})
		assert.ErrorIs(t, err, apperrors.ErrAlreadyActivated)

		unchanged, err := f.users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, testPasswordHash, unchanged.Password, "existing credentials must stay untouched")
	})

	t.Run("treats a lost unique email race as already activated", func(t *testing.T) {
		f := newAuthFixture()
		f.trainers.add("Amina Musa", "amina@fulafia.edu.ng", nil)
		f.users.createErr = apperrors.ErrEmailAlreadyExists

		_, err := f.svc.ActivateTrainer(ctx, &dto.ActivateTrainerRequest{
			Email:           "amina@fulafia.edu.ng",
			Password:        "sekret123",
			ConfirmPassword: "sekret123",
		})
		assert.ErrorIs(t, err, apperrors.ErrAlreadyActivated)
	})

	t.Run("validates input before touching any store", func(t *testing.T) {
		tests := []struct {
			name string
			req  dto.ActivateTrainerRequest
		}{
			{"bad email", dto.ActivateTrainerRequest{Email: "not-an-email", Password: "sekret123", ConfirmPassword: "sekret123"}},
			{"short password", dto.ActivateTrainerRequest{Email: "amina@fulafia.edu.ng", Password: "abc", ConfirmPassword: "abc"}},
			{"password mismatch", dto.ActivateTrainerRequest{Email: "amina@fulafia.edu.ng", Password: "sekret123", ConfirmPassword: "sekret124"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newAuthFixture()
				f.trainers.add("Amina Musa", "amina@fulafia.edu.ng", nil)

				_, err := f.svc.ActivateTrainer(ctx, &tt.req)
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
				assert.Empty(t, f.users.users)
			})
		}
	})
}

func TestTrainerLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a session for an activated trainer", func(t *testing.T) {
		f := newAuthFixture()
		user := f.addActivatedTrainer("amina@fulafia.edu.ng")

		resp, err := f.svc.TrainerLogin(ctx, &dto.LoginRequest{Email: "amina@fulafia.edu.ng", Password: "sekret123"})
		require.NoError(t, err)
		assert.Equal(t, string(models.RoleTrainer), resp.Profile.Role)
		assert.Equal(t, 1, f.tokens.liveTokenCount(user.ID))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.addActivatedTrainer("amina@fulafia.edu.ng")

		_, err := f.svc.TrainerLogin(ctx, &dto.LoginRequest{Email: "amina@fulafia.edu.ng", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("rejects an unknown email with the same error as a wrong password", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.svc.TrainerLogin(ctx, &dto.LoginRequest{Email: "nobody@fulafia.edu.ng", Password: "sekret123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("revokes all sessions when the trainer role is missing", func(t *testing.T) {
		f := newAuthFixture()
		user := f.users.add("amina@fulafia.edu.ng", testPasswordHash, "Amina Musa", true)
		require.NoError(t, f.tokens.CreateToken(ctx, "stale-refresh", user.ID, time.Now().Add(time.Hour)))

		_, err := f.svc.TrainerLogin(ctx, &dto.LoginRequest{Email: "amina@fulafia.edu.ng", Password: "sekret123"})
		assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
		assert.Equal(t, 0, f.tokens.liveTokenCount(user.ID))
	})

	t.Run("backfills an unlinked roster row matching the login email", func(t *testing.T) {
		f := newAuthFixture()
		user := f.users.add("amina@fulafia.edu.ng", testPasswordHash, "Amina Musa", true)
		f.roles.grants[user.ID] = []models.Role{models.RoleTrainer}
		trainer := f.trainers.add("Amina Musa", "amina@fulafia.edu.ng", nil)

		_, err := f.svc.TrainerLogin(ctx, &dto.LoginRequest{Email: "amina@fulafia.edu.ng", Password: "sekret123"})
		require.NoError(t, err)

		require.NotNil(t, trainer.UserID)
		assert.Equal(t, user.ID, *trainer.UserID)
	})

	t.Run("rejects a trainer role with no roster entry", func(t *testing.T) {
		f := newAuthFixture()
		user := f.users.add("amina@fulafia.edu.ng", testPasswordHash, "Amina Musa", true)
		f.roles.grants[user.ID] = []models.Role{models.RoleTrainer}

		_, err := f.svc.TrainerLogin(ctx, &dto.LoginRequest{Email: "amina@fulafia.edu.ng", Password: "sekret123"})
		assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	})

	t.Run("rejects a disabled account", func(t *testing.T) {
		f := newAuthFixture()
		user := f.users.add("amina@fulafia.edu.ng", testPasswordHash, "Amina Musa", false)
		f.roles.grants[user.ID] = []models.Role{models.RoleTrainer}

		_, err := f.svc.TrainerLogin(ctx, &dto.LoginRequest{Email: "amina@fulafia.edu.ng", Password: "sekret123"})
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the missing admin profile on first login", func(t *testing.T) {
		f := newAuthFixture()
		user := f.users.add("admin@fulafia.edu.ng", testPasswordHash, "Portal Administrator", true)
		f.roles.grants[user.ID] = []models.Role{models.RoleAdmin}

		resp, err := f.svc.AdminLogin(ctx, &dto.LoginRequest{Email: "admin@fulafia.edu.ng", Password: "sekret123"})
		require.NoError(t, err)
		assert.Equal(t, string(models.RoleAdmin), resp.Profile.Role)

		admin, err := f.admins.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, admin.Email)
	})

	t.Run("rejects a user without the admin role", func(t *testing.T) {
		f := newAuthFixture()
		f.addActivatedTrainer("amina@fulafia.edu.ng")

		_, err := f.svc.AdminLogin(ctx, &dto.LoginRequest{Email: "amina@fulafia.edu.ng", Password: "sekret123"})
		assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
		assert.Empty(t, f.admins.byUserID)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		f := newAuthFixture()
		user := f.addActivatedTrainer("amina@fulafia.edu.ng")

		login, err := f.svc.TrainerLogin(ctx, &dto.LoginRequest{Email: "amina@fulafia.edu.ng", Password: "sekret123"})
		require.NoError(t, err)
		oldRefresh := login.Tokens.RefreshToken

		rotated, err := f.svc.RefreshToken(ctx, oldRefresh)
		require.NoError(t, err)
		assert.NotEqual(t, oldRefresh, rotated.RefreshToken)

		assert.True(t, f.tokens.tokens[oldRefresh].revoked, "the exchanged token must be revoked")
		assert.Equal(t, 1, f.tokens.liveTokenCount(user.ID))

		_, err = f.svc.RefreshToken(ctx, oldRefresh)
		assert.ErrorIs(t, err, apperrors.ErrTokenRevoked, "a refresh token is single use")
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		f := newAuthFixture()
		user := f.addActivatedTrainer("amina@fulafia.edu.ng")
		require.NoError(t, f.tokens.CreateToken(ctx, "expired-refresh", user.ID, time.Now().Add(-time.Minute)))

		_, err := f.svc.RefreshToken(ctx, "expired-refresh")
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("rejects a token whose account was disabled", func(t *testing.T) {
		f := newAuthFixture()
		user := f.addActivatedTrainer("amina@fulafia.edu.ng")
		require.NoError(t, f.tokens.CreateToken(ctx, "live-refresh", user.ID, time.Now().Add(time.Hour)))
		require.NoError(t, f.users.SetActive(ctx, user.ID, false))

		_, err := f.svc.RefreshToken(ctx, "live-refresh")
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.svc.RefreshToken(ctx, "never-issued")
		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the refresh token", func(t *testing.T) {
		f := newAuthFixture()
		user := f.addActivatedTrainer("amina@fulafia.edu.ng")
		require.NoError(t, f.tokens.CreateToken(ctx, "live-refresh", user.ID, time.Now().Add(time.Hour)))

		require.NoError(t, f.svc.Logout(ctx, "live-refresh"))
		assert.Equal(t, 0, f.tokens.liveTokenCount(user.ID))
	})

	t.Run("tolerates an unknown token", func(t *testing.T) {
		f := newAuthFixture()
		assert.NoError(t, f.svc.Logout(ctx, "never-issued"))
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()

	f := newAuthFixture()
	user := f.users.add("amina@fulafia.edu.ng", testPasswordHash, "Amina Musa", true)
	f.roles.grants[user.ID] = []models.Role{models.RoleTrainer, models.RoleAdmin}

	profile, err := f.svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)
	assert.Equal(t, string(models.RoleAdmin), profile.Role, "admin outranks trainer")
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the hash and revokes other sessions", func(t *testing.T) {
		f := newAuthFixture()
		user := f.addActivatedTrainer("amina@fulafia.edu.ng")
		require.NoError(t, f.tokens.CreateToken(ctx, "live-refresh", user.ID, time.Now().Add(time.Hour)))

		err := f.svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
			CurrentPassword: "sekret123",
			NewPassword:     "evenmoresecret",
			ConfirmPassword: "evenmoresecret",
		})
		require.NoError(t, err)

		changed, err := f.users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NotEqual(t, testPasswordHash, changed.Password)
		assert.True(t, auth.CheckPassword(changed.Password, "evenmoresecret"))
		assert.Equal(t, 0, f.tokens.liveTokenCount(user.ID), "old refresh tokens must die with the password")
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		f := newAuthFixture()
		user := f.addActivatedTrainer("amina@fulafia.edu.ng")

		err := f.svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
			CurrentPassword: "not-the-password",
			NewPassword:     "evenmoresecret",
			ConfirmPassword: "evenmoresecret",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

		unchanged, err := f.users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, testPasswordHash, unchanged.Password)
	})

	t.Run("validates the new password before any lookup", func(t *testing.T) {
		tests := []struct {
			name string
			req  dto.ChangePasswordRequest
		}{
			{"too short", dto.ChangePasswordRequest{CurrentPassword: "sekret123", NewPassword: "abc", ConfirmPassword: "abc"}},
			{"mismatch", dto.ChangePasswordRequest{CurrentPassword: "sekret123", NewPassword: "evenmoresecret", ConfirmPassword: "evenmoresecrets"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newAuthFixture()
				user := f.addActivatedTrainer("amina@fulafia.edu.ng")

				err := f.svc.ChangePassword(ctx, user.ID, &tt.req)
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			})
		}
	})
}

func TestPurgeExpiredTokens(t *testing.T) {
	ctx := context.Background()

	f := newAuthFixture()
	user := f.addActivatedTrainer("amina@fulafia.edu.ng")
	require.NoError(t, f.tokens.CreateToken(ctx, "stale-refresh", user.ID, time.Now().Add(-time.Hour)))
	require.NoError(t, f.tokens.CreateToken(ctx, "live-refresh", user.ID, time.Now().Add(time.Hour)))

	n, err := f.svc.PurgeExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, _, _, err = f.tokens.GetTokenByValue(ctx, "stale-refresh")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	assert.Equal(t, 1, f.tokens.liveTokenCount(user.ID))
}
