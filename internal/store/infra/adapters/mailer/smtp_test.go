package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/menswear-store/internal/pkg/config"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

func TestSendBuildsMessage(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "mail.local", Port: 2525, User: "u", Password: "p", From: "shop@example.com"})

	var got *email.Email
	var gotAddr string
	m.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		got, gotAddr = e, addr
		assert.NotNil(t, auth)
		return nil
	}

	err := m.Send(context.Background(), ports.Email{To: []string{"ada@example.com"}, Subject: "Order confirmed", Body: "Thanks!"})
	require.NoError(t, err)
	assert.Equal(t, "mail.local:2525", gotAddr)
	assert.Equal(t, "shop@example.com", got.From)
	assert.Equal(t, []string{"ada@example.com"}, got.To)

	raw, err := got.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Subject: Order confirmed")
	assert.Contains(t, string(raw), "Thanks!")
}

func TestSendWithoutAuth(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "localhost", Port: 25, From: "shop@localhost"})
	assert.Nil(t, m.auth)

	m.send = func(*email.Email, string, smtp.Auth) error { return errors.New("connection refused") }
	err := m.Send(context.Background(), ports.Email{To: []string{"a@b.c"}, Subject: "s"})
	assert.ErrorContains(t, err, "cannot send email")
}
