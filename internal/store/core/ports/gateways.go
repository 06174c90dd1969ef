package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type CardChargeRequest struct {
	Token       string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

type CardChargeResult struct {
	Success   bool
	ReceiptID string
	Reason    string
}

// CardGateway charges a tokenized card. A declined charge is reported in the
// result; the error is reserved for transport and protocol failures.
type CardGateway interface {
	Charge(ctx context.Context, req CardChargeRequest) (CardChargeResult, error)
	PublicKey() string
}

type MobileMoneyRequest struct {
	Phone       string
	Amount      decimal.Decimal
	Reference   string
	Description string
}

type MobileMoneyResult struct {
	Accepted      bool
	TransactionID string
	Reason        string
}

// MobileMoneyGateway starts an asynchronous push payment. The final status
// arrives later on the callback endpoint. A rejected request is reported in
// the result; the error is reserved for transport and protocol failures.
type MobileMoneyGateway interface {
	Initiate(ctx context.Context, req MobileMoneyRequest) (MobileMoneyResult, error)
	PublicKey() string
}

type Email struct {
	To      []string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// Cache is a string key/value cache with expiry.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	GenerateKey(operation, key string) string
}
