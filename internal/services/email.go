package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"

	"lfg-site/internal/models"
)

// EmailService sends lead notifications over SMTP. With no host or user it
// runs in dev mode and only logs what it would have sent.
type EmailService struct {
	dialer  *gomail.Dialer
	from    string
	to      string
	timeout time.Duration
	devMode bool
}

func NewEmailService(host string, port int, user, pass, from, to string) *EmailService {
	devMode := host == "" || user == ""
	if devMode {
		slog.Warn("email service running in dev mode (logging to console)")
	}
	return &EmailService{
		dialer:  gomail.NewDialer(host, port, user, pass),
		from:    from,
		to:      to,
		timeout: 30 * time.Second,
		devMode: devMode,
	}
}

// Enabled reports whether notifications have a recipient.
func (s *EmailService) Enabled() bool { return s.to != "" }

func (s *EmailService) SendLeadNotification(ctx context.Context, lead models.LeadNotification) error {
	template := lead.Template
	if template == "" {
		template = "none"
	}

	subject := fmt.Sprintf("New LFG.tech lead: %s", lead.Email)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #0D0D0D; color: #ffffff; padding: 24px;">
  <h2 style="color: #00FF41; margin: 0 0 16px;">New contact request</h2>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Template:</strong> %s</p>
  <p style="white-space: pre-wrap;">%s</p>
</body>
</html>`, html.EscapeString(lead.Email), html.EscapeString(template), html.EscapeString(lead.Message))

	return s.sendHTML(ctx, subject, body, lead.Email)
}

func (s *EmailService) sendHTML(ctx context.Context, subject, htmlBody, replyTo string) error {
	if s.devMode {
		slog.Info("dev email", "to", s.to, "subject", subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	wait := s.timeout
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 && d < wait {
			wait = d
		}
	}

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", s.to, err)
		}
		slog.Info("email sent", "to", s.to, "subject", subject)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return fmt.Errorf("timed out sending email to %s", s.to)
	}
}
