package httpx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcmexdev/menswear-store/internal/coordinator"
	sagasqlite "github.com/jcmexdev/menswear-store/internal/coordinator/sagalog/sqlite"
	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
	"github.com/jcmexdev/menswear-store/internal/store/core/services"
	"github.com/jcmexdev/menswear-store/internal/store/infra/adapters/payments"
	"github.com/jcmexdev/menswear-store/internal/store/infra/httpx"
	"github.com/jcmexdev/menswear-store/internal/store/infra/sqlite"
)

type outbox struct {
	sent []ports.Email
}

func (o *outbox) Send(_ context.Context, e ports.Email) error {
	o.sent = append(o.sent, e)
	return nil
}

type api struct {
	t      *testing.T
	srv    *httptest.Server
	store  *sqlite.Store
	outbox *outbox
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	sagaLog, err := sagasqlite.NewRepository(store.DB())
	require.NoError(t, err)

	catalog := services.NewCatalog(store, nil, 0)
	customers := services.NewCustomers(store, bcrypt.MinCost)
	carts := services.NewCartEngine(store)
	orders := services.NewOrderEngine(store)
	pay := services.NewPayments(store, payments.NewSandboxCard("pk_card"), payments.NewSandboxMobileMoney("pk_mobile"), "usd")
	box := &outbox{}

	h := httpx.NewHandler(httpx.Services{
		Catalog:   catalog,
		Ratings:   services.NewRatings(store, catalog),
		Customers: customers,
		Carts:     carts,
		Orders:    orders,
		Payments:  pay,
		Mail:      services.NewMail(box),
		Purchases: coordinator.NewPurchaser(carts, pay, orders, sagaLog),
	})
	srv := httptest.NewServer(httpx.NewRouter(h, customers, "store-api-test"))
	t.Cleanup(srv.Close)
	return &api{t: t, srv: srv, store: store, outbox: box}
}

// do sends a JSON request and decodes the JSON response into out when given.
func (a *api) do(method, path, token string, body any, out any) int {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *api) login(username string) string {
	a.t.Helper()
	status := a.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": username, "email": username + "@example.com", "password": "s3cret-pass",
		"name": username, "payment_method": "visa",
	}, nil)
	require.Equal(a.t, http.StatusCreated, status)

	var tok httpx.TokenResponse
	status = a.do(http.MethodPost, "/auth/token", "", map[string]string{"username": username, "password": "s3cret-pass"}, &tok)
	require.Equal(a.t, http.StatusOK, status)
	return tok.Token
}

func (a *api) product(name, price string, category domain.CategoryName, discount int) int64 {
	a.t.Helper()
	p := &domain.Product{Name: name, Price: decimal.RequireFromString(price), Category: category, DiscountPercentage: discount}
	require.NoError(a.t, a.store.Products().CreateProduct(context.Background(), p))
	return p.ID
}

func TestCartAndCheckoutFlow(t *testing.T) {
	a := newAPI(t)
	token := a.login("ada")
	shirt := a.product("Oxford shirt", "100.00", domain.CategoryShirts, 20)
	tie := a.product("Silk tie", "30.00", domain.CategoryNeckwear, 0)

	var cart httpx.CartResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": shirt, "quantity": 1}, &cart))
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": shirt, "quantity": 2}, &cart))
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": tie}, &cart))
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 1, cart.Items[1].Quantity)

	var out httpx.CheckoutResponse
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/checkout", token, map[string]string{"card_token": "tok_visa"}, &out))
	require.NotNil(t, out.Order)
	assert.Equal(t, "CONFIRMED", out.Order.Status)
	assert.Equal(t, "270.00", out.Order.Total)
	assert.Equal(t, "Success", out.Charge.Status)

	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/cart", token, nil, &cart))
	assert.Empty(t, cart.Items)

	var orders []httpx.OrderResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/orders", token, nil, &orders))
	require.Len(t, orders, 1)
	assert.True(t, orders[0].IsOrdered)

	var history []httpx.SagaLogResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/checkout/"+out.SagaID, token, nil, &history))
	assert.Equal(t, "COMPLETED", history[len(history)-1].Status)

	other := a.login("grace")
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/checkout/"+out.SagaID, other, nil, nil))
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/orders/"+out.Order.ID, other, nil, nil))
}

func TestCheckoutDeclined(t *testing.T) {
	a := newAPI(t)
	token := a.login("ada")
	shoe := a.product("Derby", "150.00", domain.CategoryShoes, 0)
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": shoe, "quantity": 2}, nil))

	var errResp httpx.ErrorResponse
	status := a.do(http.MethodPost, "/checkout", token, map[string]string{"card_token": payments.DeclinedToken}, &errResp)
	assert.Equal(t, http.StatusPaymentRequired, status)
	assert.Equal(t, "payment_failed", errResp.Error)
	assert.Equal(t, "card_declined", errResp.Message)

	var cart httpx.CartResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/cart", token, nil, &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	var orders []httpx.OrderResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/orders", token, nil, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "CANCELLED", orders[0].Status)
}

func TestEmptyCartCheckout(t *testing.T) {
	a := newAPI(t)
	token := a.login("ada")

	var errResp httpx.ErrorResponse
	assert.Equal(t, http.StatusConflict, a.do(http.MethodPost, "/orders", token, nil, &errResp))
	assert.Equal(t, "empty_cart", errResp.Error)

	var orders []httpx.OrderResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/orders", token, nil, &orders))
	assert.Empty(t, orders)
}

func TestErrorsMapToStatuses(t *testing.T) {
	a := newAPI(t)
	token := a.login("ada")

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/cart", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/cart", "bogus", nil, nil))
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/products/99", "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/products/abc", "", nil, nil))

	var errResp httpx.ErrorResponse
	status := a.do(http.MethodPost, "/products/1/ratings", token, map[string]int{"score": 9}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_failed", errResp.Error)
	assert.Contains(t, errResp.Fields, "score")

	errResp = httpx.ErrorResponse{}
	status = a.do(http.MethodPost, "/auth/register", "", map[string]string{"username": "ada", "email": "nope"}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errResp.Fields, "email")
	assert.Contains(t, errResp.Fields, "password")
	assert.Contains(t, errResp.Fields, "payment_method")

	assert.Equal(t, http.StatusConflict, a.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": "ada", "email": "ada@example.com", "password": "s3cret-pass", "name": "Ada", "payment_method": "visa",
	}, nil))
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodPost, "/auth/token", "", map[string]string{"username": "ada", "password": "wrong-pass"}, nil))
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/products?category=hats", "", nil, nil))

	tie := a.product("Silk tie", "20.00", domain.CategoryNeckwear, 0)
	errResp = httpx.ErrorResponse{}
	status = a.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": tie, "quantity": 1 << 40}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errResp.Fields, "quantity")
}

func TestCatalogRoutes(t *testing.T) {
	a := newAPI(t)
	token := a.login("ada")
	suit := a.product("Navy suit", "300.00", domain.CategorySuits, 10)
	a.product("Grey suit", "280.00", domain.CategorySuits, 0)
	a.product("Linen shirt", "60.00", domain.CategoryShirts, 0)

	var products []httpx.ProductResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/products?category=suits", "", nil, &products))
	assert.Len(t, products, 2)

	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/products/discounted", "", nil, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "270.00", products[0].DiscountedPrice)

	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/products?q=linen", "", nil, &products))
	assert.Len(t, products, 1)

	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/products/1/suggestions", "", nil, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Grey suit", products[0].Name)

	var rating httpx.RatingResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/products/1/ratings", token, map[string]int{"score": 4}, &rating))
	assert.Equal(t, "4.00", rating.AverageRating)

	var p httpx.ProductResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/products/1", "", nil, &p))
	assert.Equal(t, suit, p.ID)
	assert.Equal(t, "4.00", p.AverageRating)
	assert.Equal(t, "Suits", p.CategoryName)

	require.Equal(t, http.StatusNoContent, a.do(http.MethodPost, "/products/1/favorite", token, nil, nil))
	var count httpx.CountResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/favorites/count", token, nil, &count))
	assert.Equal(t, 1, count.Count)

	var created httpx.ProductResponse
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/products", token, map[string]any{
		"name": "Loafer", "price": "120.50", "category": "shoes", "discount_percentage": 0,
	}, &created))
	assert.True(t, created.AddedByAdmin)
	assert.Equal(t, "120.50", created.Price)
}

func TestMobileMoneyRoutes(t *testing.T) {
	a := newAPI(t)
	token := a.login("ada")

	var tx httpx.MobileMoneyResponse
	require.Equal(t, http.StatusAccepted, a.do(http.MethodPost, "/payments/mobile/charge", token, map[string]string{
		"phone": "254700000000", "amount": "1500", "reference": "order-1",
	}, &tx))
	assert.Equal(t, "Pending", tx.Status)

	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/payments/mobile/callback", "", map[string]string{
		"transaction_id": tx.TransactionID, "status": "Success",
	}, &tx))
	assert.Equal(t, "Success", tx.Status)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPost, "/payments/mobile/callback", "", map[string]string{
		"transaction_id": "missing", "status": "Failed",
	}, nil))

	var errResp httpx.ErrorResponse
	require.Equal(t, http.StatusConflict, a.do(http.MethodPost, "/payments/mobile/callback", "", map[string]string{
		"transaction_id": tx.TransactionID, "status": "Failed",
	}, &errResp))
	assert.Equal(t, "transaction_settled", errResp.Error)

	errResp = httpx.ErrorResponse{}
	require.Equal(t, http.StatusPaymentRequired, a.do(http.MethodPost, "/payments/mobile/charge", token, map[string]string{
		"phone": payments.RejectedPhone, "amount": "10", "reference": "order-2",
	}, &errResp))
	assert.Equal(t, "payment_failed", errResp.Error)
	assert.Equal(t, "Invalid PhoneNumber", errResp.Message)

	var key httpx.PublicKeyResponse
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/payments/mobile/public-key", "", nil, &key))
	assert.Equal(t, "pk_mobile", key.PublicKey)
}

func TestSendEmail(t *testing.T) {
	a := newAPI(t)
	token := a.login("ada")

	require.Equal(t, http.StatusAccepted, a.do(http.MethodPost, "/email/send", token, map[string]any{
		"to": []string{"grace@example.com"}, "subject": "Hello", "body": "New arrivals",
	}, nil))
	require.Len(t, a.outbox.sent, 1)

	var errResp httpx.ErrorResponse
	require.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/email/send", token, map[string]any{
		"to": []string{"not-an-address"}, "subject": "Hello",
	}, &errResp))
	assert.Contains(t, errResp.Fields, "to[0]")
}
