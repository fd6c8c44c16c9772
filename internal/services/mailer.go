package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// MailerService delivers transactional email. Used by the signup flow for
// OTP verification codes and by application status changes.
type MailerService interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host     string
	port     string
	from     string
	password string
	logger   *zap.Logger
}

func NewSMTPMailer(host, port, from, password string, logger *zap.Logger) MailerService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &smtpMailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		logger:   logger,
	}
}

// Send implements MailerService.
func (m *smtpMailer) Send(to, subject, body string) error {
	if m.from == "" || m.password == "" {
		return fmt.Errorf("email credentials are not configured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	addr := m.host + ":" + m.port

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Debug("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// BuildOTPBody formats the verification-code message.
func BuildOTPBody(code string) string {
	return fmt.Sprintf(`Hello,

Your One-Time Password (OTP) for verification is:

    %s

This code will expire shortly. Do not share this code with anyone.

If you did not request this, please ignore this email.

Regards,
Team Anvaya
`, code)
}
