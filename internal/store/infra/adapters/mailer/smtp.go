// Package mailer delivers store emails over SMTP.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"net/textproto"

	"github.com/jordan-wright/email"

	"github.com/jcmexdev/menswear-store/internal/pkg/config"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth

	// send is swapped in tests.
	send func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSMTPMailer uses PLAIN auth when a user is configured and no auth
// otherwise.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
		auth: auth,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

func (m *SMTPMailer) message(msg ports.Email) *email.Email {
	return &email.Email{
		To:      msg.To,
		From:    m.from,
		Subject: msg.Subject,
		Text:    []byte(msg.Body),
		Headers: textproto.MIMEHeader{},
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg ports.Email) error {
	if err := m.send(m.message(msg), m.addr, m.auth); err != nil {
		return fmt.Errorf("cannot send email: %w", err)
	}
	slog.InfoContext(ctx, "email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}
