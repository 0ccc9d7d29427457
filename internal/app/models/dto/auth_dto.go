package dto

// LoginRequest is the login payload for admins and trainers
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@fulafia.edu.ng"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// ActivateTrainerRequest is the trainer account activation payload
type ActivateTrainerRequest struct {
	Email           string `json:"email" binding:"required,email" example:"t@example.com"`
	Password        string `json:"password" binding:"required" example:"secret123"`
	ConfirmPassword string `json:"confirmPassword" binding:"required" example:"secret123"`
}

// ChangePasswordRequest is the signed-in password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required" example:"secret123"`
	NewPassword     string `json:"newPassword" binding:"required" example:"evenmoresecret"`
	ConfirmPassword string `json:"confirmPassword" binding:"required" example:"evenmoresecret"`
}

// RefreshTokenRequest carries the refresh token being exchanged
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest carries the refresh token being revoked
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	ExpiresIn        int64  `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn" example:"2592000"`
}

// UserProfile is the authenticated user's profile
type UserProfile struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role" example:"trainer"`
}

// LoginResponse couples a token pair with the resolved profile
type LoginResponse struct {
	Tokens  *TokenResponse `json:"tokens"`
	Profile *UserProfile   `json:"profile"`
}
