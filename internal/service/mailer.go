package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/user/pnmovie/internal/config"
)

// Mailer delivers plain-text mail over SMTP with the credentials from the
// environment. Port 587 servers upgrade the connection via STARTTLS inside
// smtp.SendMail.
type Mailer struct {
	host string
	port string
	user string
	pass string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
	}
}

// Send delivers one message to the recipient.
func (m *Mailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.user,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.user, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
