package httpx

import (
	"net/http"

	"github.com/jcmexdev/menswear-store/internal/store/core/services"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.customers.Register(r.Context(), services.RegisterInput{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		Name:          req.Name,
		Location:      req.Location,
		City:          req.City,
		Country:       req.Country,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapCustomer(c))
}

func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !decode(w, r, &req) {
		return
	}
	tok, err := h.customers.IssueToken(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{Token: tok.Key})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapCustomer(customer(r)))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.customers.UpdateProfile(r.Context(), customer(r).ID, services.ProfileInput{
		Email:         req.Email,
		Name:          req.Name,
		Location:      req.Location,
		City:          req.City,
		Country:       req.Country,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCustomer(c))
}

func (h *Handler) Favorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.customers.Favorite(r.Context(), customer(r).ID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.customers.Unfavorite(r.Context(), customer(r).ID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	products, err := h.customers.Favorites(r.Context(), customer(r).ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProducts(products))
}

func (h *Handler) CountFavorites(w http.ResponseWriter, r *http.Request) {
	n, err := h.customers.FavoritesCount(r.Context(), customer(r).ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Count: n})
}
