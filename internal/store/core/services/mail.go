package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

type Mail struct {
	mailer ports.Mailer
}

func NewMail(mailer ports.Mailer) *Mail {
	return &Mail{mailer: mailer}
}

func (m *Mail) Send(ctx context.Context, msg ports.Email) error {
	v := domain.NewValidationError()
	if len(msg.To) == 0 {
		v.Add("to", "needs at least one recipient")
	}
	for _, addr := range msg.To {
		if _, err := mail.ParseAddress(addr); err != nil {
			v.Add("to", "contains an invalid address")
		}
	}
	if strings.TrimSpace(msg.Subject) == "" {
		v.Add("subject", "is required")
	}
	if err := v.OrNil(); err != nil {
		return err
	}
	return m.mailer.Send(ctx, msg)
}
