package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/menswear-store/internal/store/infra/httpx/middlewares"
)

func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.CreateCart(r.Context(), customer(r).ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapCart(cart))
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), customer(r).ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

// AddCartItem adds quantity (default 1) of a product and returns the cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	c := customer(r)
	if _, err := h.carts.AddProduct(r.Context(), c.ID, req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, r, err)
		return
	}
	cart, err := h.carts.GetCart(r.Context(), c.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	if err := h.carts.RemoveProduct(r.Context(), customer(r).ID, productID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateOrder checks the cart out into a pending order without charging.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.carts.Checkout(r.Context(), customer(r).ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapOrder(order))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), customer(r).ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = mapOrder(&orders[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order_id_required", "")
		return
	}
	order, err := h.orders.Get(r.Context(), customer(r).ID, orderID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(order))
}

// Checkout runs the purchase saga synchronously: the cart becomes an order,
// the order total is charged to the card and the order is confirmed. A
// declined card restores the cart and answers 402.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !decode(w, r, &req) {
		return
	}
	c := customer(r)
	slog.InfoContext(r.Context(), "purchase requested",
		"request_id", middlewares.RequestIDFrom(r.Context()), "customer_id", c.ID)

	sagaID, state, err := h.purchases.Purchase(r.Context(), c.ID, req.CardToken, req.Currency)
	w.Header().Set("X-Saga-Id", sagaID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resp := CheckoutResponse{SagaID: sagaID}
	if state.Order != nil {
		o := mapOrder(state.Order)
		resp.Order = &o
	}
	if state.Charge != nil {
		ch := mapCharge(state.Charge)
		resp.Charge = &ch
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) CheckoutStatus(w http.ResponseWriter, r *http.Request) {
	entries, err := h.purchases.History(r.Context(), chi.URLParam(r, "sagaID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if len(entries) > 0 {
		var payload struct {
			CustomerID int64 `json:"customer_id"`
		}
		// Sagas of other customers are reported as missing.
		if err := json.Unmarshal([]byte(entries[0].Payload), &payload); err != nil || payload.CustomerID != customer(r).ID {
			writeError(w, http.StatusNotFound, "saga_not_found", "saga not found")
			return
		}
	}
	writeJSON(w, http.StatusOK, mapSagaLogs(entries))
}
