package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulafia/esp-portal/internal/app/models"
)

func testJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testJWTService(time.Hour)
	user := &models.User{ID: 7, Email: "amina@fulafia.edu.ng", Name: "Amina Musa"}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user, models.RoleTrainer)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)
	assert.Equal(t, int((24 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "amina@fulafia.edu.ng", claims.Email)
	assert.Equal(t, string(models.RoleTrainer), claims.Role)
	assert.Equal(t, "test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testJWTService(-time.Minute)
	user := &models.User{ID: 7, Email: "amina@fulafia.edu.ng"}

	accessToken, _, _, _, err := svc.GenerateTokenPair(user, models.RoleTrainer)
	require.NoError(t, err)

	_, err = svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	user := &models.User{ID: 7, Email: "amina@fulafia.edu.ng"}

	accessToken, _, _, _, err := testJWTService(time.Hour).GenerateTokenPair(user, models.RoleTrainer)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "a-different-secret", AccessTokenExp: time.Hour, RefreshTokenExp: time.Hour})
	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestValidateAndExtractClaims_Empty(t *testing.T) {
	svc := testJWTService(time.Hour)
	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("sekret123")
	require.NoError(t, err)
	assert.NotEqual(t, "sekret123", hash)

	assert.True(t, CheckPassword(hash, "sekret123"))
	assert.False(t, CheckPassword(hash, "sekret124"))
}
