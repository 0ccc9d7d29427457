package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fulafia/esp-portal/internal/app/models"
)

// EmailService defines the interface for outbound email operations
type EmailService interface {
	// SendDecisionEmail notifies an applicant that their application was
	// accepted or rejected.
	SendDecisionEmail(toEmail, studentName, skillName string, status models.ApplicationStatus) error
	// SendTrainerInviteEmail tells an invited trainer to activate their account.
	SendTrainerInviteEmail(toEmail, toName string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string
}

// EmailServiceImpl implements EmailService over SMTP
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// FormatSkillName turns a snake_case skill code into a display name,
// e.g. "digital_marketing" -> "Digital Marketing".
func FormatSkillName(skill string) string {
	words := strings.Split(skill, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// SendDecisionEmail sends the accept/reject notification for an application
func (s *EmailServiceImpl) SendDecisionEmail(toEmail, studentName, skillName string, status models.ApplicationStatus) error {
	skillFormatted := FormatSkillName(skillName)
	isAccepted := status == models.StatusAccepted

	var subject, body string
	if isAccepted {
		subject = fmt.Sprintf("Application Approved - %s", skillFormatted)
		body = fmt.Sprintf(`
			<html>
			<body>
				<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
					<h1>Congratulations, %s!</h1>
					<p>Your application for <strong>%s</strong> has been <strong>approved</strong>.</p>
					<p>You will be contacted soon with further details about the program schedule and requirements.</p>
					<p>Best regards,<br>Federal University of Lafia<br>Entrepreneurship Department</p>
				</div>
			</body>
			</html>
		`, studentName, skillFormatted)
	} else {
		subject = fmt.Sprintf("Application Rejected - %s", skillFormatted)
		body = fmt.Sprintf(`
			<html>
			<body>
				<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
					<h1>Application Update</h1>
					<p>Dear %s,</p>
					<p>Thank you for your interest in our <strong>%s</strong> program.</p>
					<p>Unfortunately, your application was not successful at this time. We encourage you to apply for other programs or reapply in the future.</p>
					<p>Best regards,<br>Federal University of Lafia<br>Entrepreneurship Department</p>
				</div>
			</body>
			</html>
		`, studentName, skillFormatted)
	}

	// Without SMTP credentials, log instead of sending (development mode)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - decision email not sent")
		return nil
	}

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendTrainerInviteEmail sends the account activation invitation to a trainer
func (s *EmailServiceImpl) SendTrainerInviteEmail(toEmail, toName string) error {
	subject := "Trainer Invitation - FULafia Entrepreneurship Skills Program"
	activationURL := strings.TrimRight(s.config.BaseURL, "/") + "/trainer/signup"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2>Hello %s,</h2>
				<p>You have been invited as a trainer for the Entrepreneurship Skills Program.</p>
				<p>Visit <a href="%s">%s</a> and use this email address to set up your password and activate your account.</p>
				<p>Best regards,<br>Federal University of Lafia<br>Entrepreneurship Department</p>
			</div>
		</body>
		</html>
	`, toName, activationURL, activationURL)

	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("activationURL", activationURL).
			Msg("SMTP credentials not configured - trainer invite not sent")
		return nil
	}

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
