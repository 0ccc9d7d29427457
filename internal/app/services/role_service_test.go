package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
)

func TestRoleGrantAndRevoke(t *testing.T) {
	ctx := context.Background()

	users := newFakeUserStore()
	roles := newFakeRoleStore()
	svc := NewRoleService(users, roles, zerolog.Nop())
	user := users.add("amina@fulafia.edu.ng", testPasswordHash, "Amina Musa", true)

	resp, err := svc.Grant(ctx, &dto.GrantRoleRequest{Email: "amina@fulafia.edu.ng", Role: models.RoleModerator})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, string(models.RoleModerator), resp.Role)

	has, err := roles.HasRole(ctx, user.ID, models.RoleModerator)
	require.NoError(t, err)
	assert.True(t, has)

	_, err = svc.Grant(ctx, &dto.GrantRoleRequest{Email: "amina@fulafia.edu.ng", Role: models.RoleModerator})
	assert.ErrorIs(t, err, apperrors.ErrRoleAlreadyAssigned)

	require.NoError(t, svc.Revoke(ctx, &dto.RevokeRoleRequest{UserID: user.ID, Role: models.RoleModerator}))
	has, err = roles.HasRole(ctx, user.ID, models.RoleModerator)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRoleGrantRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	users := newFakeUserStore()
	roles := newFakeRoleStore()
	svc := NewRoleService(users, roles, zerolog.Nop())

	_, err := svc.Grant(ctx, &dto.GrantRoleRequest{Email: "amina@fulafia.edu.ng", Role: "superuser"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)

	_, err = svc.Grant(ctx, &dto.GrantRoleRequest{Email: "nobody@fulafia.edu.ng", Role: models.RoleModerator})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
