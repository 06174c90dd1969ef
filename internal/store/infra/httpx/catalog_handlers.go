package httpx

import (
	"net/http"
	"strconv"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	names := domain.Categories()
	out := make([]CategoryResponse, len(names))
	for i, n := range names {
		out[i] = CategoryResponse{Name: string(n), DisplayName: n.Display()}
	}
	writeJSON(w, http.StatusOK, out)
}

// ListProducts serves the catalog; ?category= narrows it and ?q= searches.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		h.search(w, r, q)
		return
	}
	products, err := h.catalog.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProducts(products))
}

func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, r.URL.Query().Get("q"))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, q string) {
	products, err := h.catalog.Search(r.Context(), q)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProducts(products))
}

func (h *Handler) DiscountedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Discounted(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProducts(products))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(*p))
}

func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}
	products, err := h.catalog.Suggestions(r.Context(), id, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProducts(products))
}

func productFromRequest(req ProductRequest) *domain.Product {
	return &domain.Product{
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		Category:           domain.CategoryName(req.Category),
		Image:              req.Image,
		DiscountPercentage: req.DiscountPercentage,
	}
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decode(w, r, &req) {
		return
	}
	p := productFromRequest(req)
	p.AddedByAdmin = true
	if err := h.catalog.CreateProduct(r.Context(), p); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapProduct(*p))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if !decode(w, r, &req) {
		return
	}
	current, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	p := productFromRequest(req)
	p.ID = id
	p.AddedByAdmin = current.AddedByAdmin
	if err := h.catalog.UpdateProduct(r.Context(), p); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(*p))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req RatingRequest
	if !decode(w, r, &req) {
		return
	}
	avg, err := h.ratings.Rate(r.Context(), customer(r).ID, id, req.Score)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RatingResponse{ProductID: id, AverageRating: avg.StringFixed(2)})
}

func (h *Handler) UnrateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	avg, err := h.ratings.Unrate(r.Context(), customer(r).ID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RatingResponse{ProductID: id, AverageRating: avg.StringFixed(2)})
}

func (h *Handler) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.catalog.Banners(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapBanners(banners))
}

func (h *Handler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var req BannerRequest
	if !decode(w, r, &req) {
		return
	}
	b := &domain.Banner{Kind: domain.BannerKind(req.Kind), ImageURL: req.ImageURL, Title: req.Title}
	if err := h.catalog.CreateBanner(r.Context(), b); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapBanners([]domain.Banner{*b})[0])
}
