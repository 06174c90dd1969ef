package payments

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

var (
	_ ports.CardGateway        = (*sandboxCard)(nil)
	_ ports.MobileMoneyGateway = (*sandboxMobile)(nil)
)

// DeclinedToken is declined by the sandbox card rail.
const DeclinedToken = "tok_chargeDeclined"

// sandboxCard is an in-memory card rail for local development when no
// secret key is configured. Do NOT use in production.
type sandboxCard struct {
	publicKey string
}

func NewSandboxCard(publicKey string) ports.CardGateway {
	return &sandboxCard{publicKey: publicKey}
}

func (s *sandboxCard) Charge(_ context.Context, req ports.CardChargeRequest) (ports.CardChargeResult, error) {
	if req.Token == DeclinedToken {
		return ports.CardChargeResult{Reason: "card_declined"}, nil
	}
	return ports.CardChargeResult{Success: true, ReceiptID: "ch_sandbox_" + strings.ReplaceAll(uuid.NewString(), "-", "")}, nil
}

func (s *sandboxCard) PublicKey() string { return s.publicKey }

// RejectedPhone is rejected by the sandbox mobile-money rail.
const RejectedPhone = "254000000000"

// sandboxMobile accepts every push request except RejectedPhone; completion
// still has to come through the callback endpoint.
type sandboxMobile struct {
	publicKey string
}

func NewSandboxMobileMoney(publicKey string) ports.MobileMoneyGateway {
	return &sandboxMobile{publicKey: publicKey}
}

func (s *sandboxMobile) Initiate(_ context.Context, req ports.MobileMoneyRequest) (ports.MobileMoneyResult, error) {
	if req.Phone == RejectedPhone {
		return ports.MobileMoneyResult{Reason: "Invalid PhoneNumber"}, nil
	}
	return ports.MobileMoneyResult{Accepted: true, TransactionID: "ws_CO_sandbox_" + uuid.NewString()}, nil
}

func (s *sandboxMobile) PublicKey() string { return s.publicKey }
