package services_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
	"github.com/jcmexdev/menswear-store/internal/store/infra/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newCustomer(t *testing.T, store *sqlite.Store, username string) *domain.Customer {
	t.Helper()
	c := &domain.Customer{
		Username:      username,
		Email:         username + "@example.com",
		PasswordHash:  "x",
		Name:          username,
		PaymentMethod: domain.PaymentVisa,
	}
	require.NoError(t, store.Customers().CreateCustomer(context.Background(), c))
	return c
}

func newProduct(t *testing.T, store *sqlite.Store, name, price string, category domain.CategoryName, discount int) *domain.Product {
	t.Helper()
	p := &domain.Product{
		Name:               name,
		Description:        name + " description",
		Price:              decimal.RequireFromString(price),
		Category:           category,
		DiscountPercentage: discount,
	}
	require.NoError(t, store.Products().CreateProduct(context.Background(), p))
	return p
}

type fakeCard struct {
	result ports.CardChargeResult
	err    error
	calls  []ports.CardChargeRequest
}

func (f *fakeCard) Charge(_ context.Context, req ports.CardChargeRequest) (ports.CardChargeResult, error) {
	f.calls = append(f.calls, req)
	return f.result, f.err
}

func (f *fakeCard) PublicKey() string { return "pk_test_card" }

type fakeMobile struct {
	txID   string
	reason string
	err    error
	calls  []ports.MobileMoneyRequest
}

func (f *fakeMobile) Initiate(_ context.Context, req ports.MobileMoneyRequest) (ports.MobileMoneyResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return ports.MobileMoneyResult{}, f.err
	}
	if f.reason != "" {
		return ports.MobileMoneyResult{Reason: f.reason}, nil
	}
	return ports.MobileMoneyResult{Accepted: true, TransactionID: f.txID}, nil
}

func (f *fakeMobile) PublicKey() string { return "pk_test_mobile" }
