package httpx

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/menswear-store/internal/coordinator"
	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/services"
	"github.com/jcmexdev/menswear-store/internal/store/infra/httpx/middlewares"
)

// Services groups what the handlers call into.
type Services struct {
	Catalog   *services.Catalog
	Ratings   *services.Ratings
	Customers *services.Customers
	Carts     *services.CartEngine
	Orders    *services.OrderEngine
	Payments  *services.Payments
	Mail      *services.Mail
	Purchases *coordinator.Purchaser
}

// Handler handles the store's HTTP API.
type Handler struct {
	catalog   *services.Catalog
	ratings   *services.Ratings
	customers *services.Customers
	carts     *services.CartEngine
	orders    *services.OrderEngine
	payments  *services.Payments
	mail      *services.Mail
	purchases *coordinator.Purchaser
}

func NewHandler(s Services) *Handler {
	return &Handler{
		catalog:   s.Catalog,
		ratings:   s.Ratings,
		customers: s.Customers,
		carts:     s.Carts,
		orders:    s.Orders,
		payments:  s.Payments,
		mail:      s.Mail,
		purchases: s.Purchases,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses a positive integer URL parameter, writing a 400 when it is
// not one.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_"+name, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// customer returns the authenticated customer. Routes using it sit behind
// middlewares.RequireCustomer.
func customer(r *http.Request) *domain.Customer {
	c, _ := middlewares.CustomerFrom(r.Context())
	return c
}
