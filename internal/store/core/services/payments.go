package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

const (
	RailCard        = "card"
	RailMobileMoney = "mobile_money"
)

type CardChargeInput struct {
	Token       string
	Amount      decimal.Decimal
	Currency    string
	Description string
	OrderID     string
}

type MobileMoneyInput struct {
	Phone       string
	Amount      decimal.Decimal
	Reference   string
	Description string
}

// Payments calls the payment rails and persists every outcome.
type Payments struct {
	store           ports.UnitOfWork
	card            ports.CardGateway
	mobile          ports.MobileMoneyGateway
	defaultCurrency string
}

func NewPayments(store ports.UnitOfWork, card ports.CardGateway, mobile ports.MobileMoneyGateway, currency string) *Payments {
	return &Payments{store: store, card: card, mobile: mobile, defaultCurrency: currency}
}

func validateAmount(v *domain.ValidationError, amount decimal.Decimal) {
	if !amount.IsPositive() {
		v.Add("amount", "must be greater than zero")
	} else if !amount.Equal(domain.RoundCurrency(amount)) {
		v.Add("amount", "must have at most 2 decimal places")
	}
}

// ChargeCard charges a card token. The charge is recorded whether it succeeds
// or not; a declined or failed charge is returned as a *domain.PaymentError
// together with the recorded charge.
func (p *Payments) ChargeCard(ctx context.Context, customerID int64, in CardChargeInput) (*domain.CardCharge, error) {
	v := domain.NewValidationError()
	if strings.TrimSpace(in.Token) == "" {
		v.Add("token", "is required")
	}
	validateAmount(v, in.Amount)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = p.defaultCurrency
	}

	charge := &domain.CardCharge{
		ID:          newID(),
		CustomerID:  customerID,
		OrderID:     in.OrderID,
		Amount:      in.Amount,
		Currency:    currency,
		Description: in.Description,
	}

	res, callErr := p.card.Charge(ctx, ports.CardChargeRequest{
		Token:       in.Token,
		Amount:      in.Amount,
		Currency:    currency,
		Description: in.Description,
	})
	var payErr error
	switch {
	case callErr != nil:
		charge.Status = domain.PaymentFailed
		charge.Reason = "payment provider unavailable"
		payErr = &domain.PaymentError{Rail: RailCard, Reason: charge.Reason, Err: callErr}
	case !res.Success:
		charge.Status = domain.PaymentFailed
		charge.Reason = res.Reason
		payErr = &domain.PaymentError{Rail: RailCard, Reason: res.Reason}
	default:
		charge.Status = domain.PaymentSuccess
		charge.ReceiptID = res.ReceiptID
	}

	if err := p.store.Payments().SaveCardCharge(ctx, charge); err != nil {
		return nil, fmt.Errorf("record card charge: %w", err)
	}
	if payErr != nil {
		slog.WarnContext(ctx, "card charge failed", "charge_id", charge.ID, "customer_id", customerID, "error", payErr)
		return charge, payErr
	}
	slog.InfoContext(ctx, "card charged", "charge_id", charge.ID, "customer_id", customerID, "amount", charge.Amount.StringFixed(2))
	return charge, nil
}

// InitiateMobileMoney starts a push payment and stores it as pending until the
// rail calls back.
func (p *Payments) InitiateMobileMoney(ctx context.Context, customerID int64, in MobileMoneyInput) (*domain.MobileMoneyTransaction, error) {
	v := domain.NewValidationError()
	if strings.TrimSpace(in.Phone) == "" {
		v.Add("phone", "is required")
	}
	if strings.TrimSpace(in.Reference) == "" {
		v.Add("reference", "is required")
	}
	validateAmount(v, in.Amount)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	res, err := p.mobile.Initiate(ctx, ports.MobileMoneyRequest{
		Phone:       in.Phone,
		Amount:      in.Amount,
		Reference:   in.Reference,
		Description: in.Description,
	})
	switch {
	case err != nil:
		return nil, &domain.PaymentError{Rail: RailMobileMoney, Reason: "payment provider unavailable", Err: err}
	case !res.Accepted:
		slog.WarnContext(ctx, "mobile money rejected", "customer_id", customerID, "reason", res.Reason)
		return nil, &domain.PaymentError{Rail: RailMobileMoney, Reason: res.Reason}
	}
	txID := res.TransactionID

	tx := &domain.MobileMoneyTransaction{
		TransactionID: txID,
		CustomerID:    customerID,
		Phone:         in.Phone,
		Amount:        in.Amount,
		Reference:     in.Reference,
		Description:   in.Description,
		Status:        domain.PaymentPending,
	}
	if err := p.store.Payments().SaveMobileMoney(ctx, tx); err != nil {
		return nil, fmt.Errorf("record mobile money transaction: %w", err)
	}
	slog.InfoContext(ctx, "mobile money initiated", "transaction_id", txID, "customer_id", customerID)
	return tx, nil
}

// CompleteMobileMoney applies the final status reported by the rail to the
// stored pending transaction. A repeated callback with the same status is a
// no-op; a conflicting one fails with ErrTransactionSettled.
func (p *Payments) CompleteMobileMoney(ctx context.Context, transactionID, status string) (*domain.MobileMoneyTransaction, error) {
	final, err := domain.ParseFinalStatus(status)
	if err != nil {
		return nil, err
	}
	var (
		tx     *domain.MobileMoneyTransaction
		replay bool
	)
	err = p.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		if tx, err = repos.Payments().GetMobileMoney(ctx, transactionID); err != nil {
			return err
		}
		if tx.Status != domain.PaymentPending {
			if tx.Status == final {
				replay = true
				return nil
			}
			return fmt.Errorf("transaction %s is %s: %w", transactionID, tx.Status, domain.ErrTransactionSettled)
		}
		if err := repos.Payments().UpdateMobileMoneyStatus(ctx, transactionID, final); err != nil {
			return err
		}
		tx.Status = final
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrTransactionSettled) {
			slog.WarnContext(ctx, "conflicting mobile money callback", "transaction_id", transactionID, "status", string(final))
		}
		return nil, err
	}
	if replay {
		return tx, nil
	}
	slog.InfoContext(ctx, "mobile money completed", "transaction_id", transactionID, "status", string(final))
	return tx, nil
}

func (p *Payments) CardPublicKey() string {
	return p.card.PublicKey()
}

func (p *Payments) MobilePublicKey() string {
	return p.mobile.PublicKey()
}
