package notifications

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"seatly/internal/shared/config"
)

// EmailService interface for sending emails
type EmailService interface {
	SendHTML(ctx context.Context, to, subject, htmlBody string, attachments []Attachment) error
}

// SMTPEmailService is the net/smtp implementation of EmailService
type SMTPEmailService struct {
	cfg config.EmailConfig
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(cfg config.EmailConfig) (*SMTPEmailService, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}
	return &SMTPEmailService{cfg: cfg}, nil
}

// SendHTML sends an HTML email, with optional attachments as a
// multipart/mixed message.
func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody string, attachments []Attachment) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	msg := s.buildMessage(to, subject, htmlBody, attachments)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	// net/smtp has no context support; callers bound the call with a
	// goroutine+timeout where it matters (the reminder sweep).
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SMTPEmailService) buildMessage(to, subject, htmlBody string, attachments []Attachment) []byte {
	var b strings.Builder

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", s.cfg.FromName), s.cfg.FromEmail)
	}

	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	if len(attachments) == 0 {
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(htmlBody)
		return []byte(b.String())
	}

	const boundary = "seatly-mail-boundary"
	b.WriteString("Content-Type: multipart/mixed; boundary=" + boundary + "\r\n\r\n")

	// HTML part
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(htmlBody + "\r\n")

	// Attachment parts
	for _, att := range attachments {
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString(fmt.Sprintf("Content-Type: %s; name=%q\r\n", att.ContentType, att.Filename))
		b.WriteString("Content-Transfer-Encoding: base64\r\n")
		b.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n\r\n", att.Filename))
		b.WriteString(base64.StdEncoding.EncodeToString(att.Content) + "\r\n")
	}
	b.WriteString("--" + boundary + "--\r\n")

	return []byte(b.String())
}
