package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

type paymentRepo struct {
	q querier
}

func (r paymentRepo) SaveCardCharge(ctx context.Context, c *domain.CardCharge) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO card_charges
			(id, customer_id, order_id, amount, currency, description, status, receipt_id, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.CustomerID, nullableString(c.OrderID), formatMoney(c.Amount), c.Currency, c.Description,
		string(c.Status), c.ReceiptID, c.Reason, FormatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("sqlite: save card charge %s: %w", c.ID, err)
	}
	return nil
}

func (r paymentRepo) SaveMobileMoney(ctx context.Context, t *domain.MobileMoneyTransaction) error {
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO mobile_money_transactions
			(transaction_id, customer_id, phone, amount, reference, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TransactionID, t.CustomerID, t.Phone, formatMoney(t.Amount), t.Reference, t.Description,
		string(t.Status), FormatTime(now), FormatTime(now))
	if err != nil {
		return fmt.Errorf("sqlite: save mobile money %s: %w", t.TransactionID, err)
	}
	return nil
}

func (r paymentRepo) GetMobileMoney(ctx context.Context, transactionID string) (*domain.MobileMoneyTransaction, error) {
	var (
		t                    domain.MobileMoneyTransaction
		amount               string
		createdAt, updatedAt string
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT transaction_id, customer_id, phone, amount, reference, description, status, created_at, updated_at
		FROM mobile_money_transactions WHERE transaction_id = ?`, transactionID,
	).Scan(&t.TransactionID, &t.CustomerID, &t.Phone, &amount, &t.Reference, &t.Description,
		&t.Status, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, domain.ErrTransactionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get mobile money %s: %w", transactionID, err)
	}
	if t.Amount, err = parseMoney(amount); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = ParseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateMobileMoneyStatus settles a pending transaction. Settled rows are
// never rewritten.
func (r paymentRepo) UpdateMobileMoneyStatus(ctx context.Context, transactionID string, status domain.PaymentStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE mobile_money_transactions SET status = ?, updated_at = ?
		 WHERE transaction_id = ? AND status = ?`,
		string(status), FormatTime(time.Now()), transactionID, string(domain.PaymentPending))
	if err != nil {
		return fmt.Errorf("sqlite: update mobile money %s: %w", transactionID, err)
	}
	return expectOne(res, fmt.Errorf("transaction %s: %w", transactionID, domain.ErrTransactionSettled))
}

// nullableString stores NULL instead of an empty TEXT.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
