package email

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/fulafia/esp-portal/internal/app/models"
)

func TestFormatSkillName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"digital_marketing", "Digital Marketing"},
		{"web_development", "Web Development"},
		{"catering", "Catering"},
		{"", ""},
		{"shoe__making", "Shoe  Making"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSkillName(tt.code), tt.code)
	}
}

func TestSendWithoutCredentialsIsSilentlySkipped(t *testing.T) {
	// Without SMTP credentials the service logs instead of dialing out,
	// so a dev setup never fails on email.
	svc := NewEmailService(SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		FromName:  "FULafia Entrepreneurship",
		FromEmail: "esp@fulafia.edu.ng",
		BaseURL:   "http://localhost:8080",
	}, zerolog.Nop())

	err := svc.SendDecisionEmail("jane@student.fulafia.edu.ng", "Jane Doe", "fashion_design", models.StatusAccepted)
	assert.NoError(t, err)

	err = svc.SendTrainerInviteEmail("amina@fulafia.edu.ng", "Amina Musa")
	assert.NoError(t, err)
}
