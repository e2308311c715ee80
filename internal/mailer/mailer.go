package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer delivers transactional mail. Sends are best-effort: a failed
// welcome mail must never fail the registration that triggered it.
type Mailer interface {
	SendWelcome(to, username string) error
}

// Config holds SMTP settings. An empty Host disables real delivery.
type Config struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

// SMTP sends mail through a plain-auth SMTP relay.
type SMTP struct {
	cfg Config
}

func NewSMTP(cfg Config) *SMTP { return &SMTP{cfg: cfg} }

var _ Mailer = (*SMTP)(nil)

const (
	welcomeSubject = "Welcome to Book Review"
	welcomeBody    = "Hi, %s. Welcome to Book Review. Enjoy the books and reviews."
)

// SendWelcome greets a freshly registered user.
func (m *SMTP) SendWelcome(to, username string) error {
	if to == "" {
		return nil // registration without an email address
	}
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n"+welcomeBody+"\r\n",
		m.cfg.From, to, welcomeSubject, username,
	))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send welcome mail to %q: %w", to, err)
	}
	return nil
}

// Noop discards all mail. Used when no SMTP host is configured and in tests.
type Noop struct{}

var _ Mailer = Noop{}

func (Noop) SendWelcome(to, username string) error { return nil }
