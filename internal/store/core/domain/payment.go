package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentSuccess PaymentStatus = "Success"
	PaymentFailed  PaymentStatus = "Failed"
)

// ParseFinalStatus accepts only the terminal statuses a callback may report.
func ParseFinalStatus(raw string) (PaymentStatus, error) {
	switch s := PaymentStatus(raw); s {
	case PaymentSuccess, PaymentFailed:
		return s, nil
	}
	v := NewValidationError()
	v.Add("status", "must be Success or Failed")
	return "", v
}

type CardCharge struct {
	ID          string
	CustomerID  int64
	OrderID     string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Status      PaymentStatus
	ReceiptID   string
	Reason      string
	CreatedAt   time.Time
}

type MobileMoneyTransaction struct {
	TransactionID string
	CustomerID    int64
	Phone         string
	Amount        decimal.Decimal
	Reference     string
	Description   string
	Status        PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
