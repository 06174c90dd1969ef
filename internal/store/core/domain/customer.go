package domain

import (
	"net/mail"
	"time"
)

type PaymentMethod string

const (
	PaymentVisa   PaymentMethod = "visa"
	PaymentMpesa  PaymentMethod = "mpesa"
	PaymentPaypal PaymentMethod = "paypal"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentVisa, PaymentMpesa, PaymentPaypal:
		return true
	}
	return false
}

type Customer struct {
	ID            int64
	Username      string
	Email         string
	PasswordHash  string
	Name          string
	Location      string
	City          string
	Country       string
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
}

// Validate checks the profile fields shared by registration and edits.
func (c Customer) Validate() error {
	v := NewValidationError()
	if c.Username == "" {
		v.Add("username", "is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		v.Add("email", "must be a valid email address")
	}
	if c.Name == "" {
		v.Add("name", "is required")
	}
	if !c.PaymentMethod.Valid() {
		v.Add("payment_method", "must be one of visa, mpesa, paypal")
	}
	return v.OrNil()
}

type AuthToken struct {
	Key        string
	CustomerID int64
	CreatedAt  time.Time
}
