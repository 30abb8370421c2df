package notifications

import (
	"fmt"

	"agilcurn/internal/config"

	"gopkg.in/gomail.v2"
)

// MailService delivers invitation and welcome emails over SMTP. When SMTP is
// not configured (local development, tests) sends are skipped.
type MailService struct{}

func (s *MailService) SendEmail(to, subject, body string) error {
	env := config.GetEnv()

	if env.SmtpHost == "" {
		return nil
	}

	message := gomail.NewMessage()
	message.SetHeader("From", env.SmtpFrom)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := gomail.NewDialer(env.SmtpHost, env.SmtpPort, env.SmtpUsername, env.SmtpPassword)

	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
