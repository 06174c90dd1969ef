package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

const defaultSuggestions = 4

// Catalog serves product and banner reads and admin writes. Product details
// are cached read-through when a cache is configured; a failing cache only
// costs a database read.
type Catalog struct {
	store ports.UnitOfWork
	cache ports.Cache // nil-safe
	ttl   time.Duration
}

func NewCatalog(store ports.UnitOfWork, cache ports.Cache, ttl time.Duration) *Catalog {
	return &Catalog{store: store, cache: cache, ttl: ttl}
}

// cachedProduct is the cache encoding of a product.
type cachedProduct struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Price              string    `json:"price"`
	Category           string    `json:"category"`
	Image              string    `json:"image"`
	AddedByAdmin       bool      `json:"added_by_admin"`
	DiscountPercentage int       `json:"discount_percentage"`
	AverageRating      string    `json:"average_rating"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toCachedProduct(p domain.Product) cachedProduct {
	return cachedProduct{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price.String(),
		Category:           string(p.Category),
		Image:              p.Image,
		AddedByAdmin:       p.AddedByAdmin,
		DiscountPercentage: p.DiscountPercentage,
		AverageRating:      p.AverageRating.String(),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (c cachedProduct) toDomain() (domain.Product, error) {
	price, err := decimal.NewFromString(c.Price)
	if err != nil {
		return domain.Product{}, err
	}
	avg, err := decimal.NewFromString(c.AverageRating)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		ID:                 c.ID,
		Name:               c.Name,
		Description:        c.Description,
		Price:              price,
		Category:           domain.CategoryName(c.Category),
		Image:              c.Image,
		AddedByAdmin:       c.AddedByAdmin,
		DiscountPercentage: c.DiscountPercentage,
		AverageRating:      avg,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}, nil
}

func (c *Catalog) productKey(id int64) string {
	return c.cache.GenerateKey("product", strconv.FormatInt(id, 10))
}

func (c *Catalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if p, ok := c.cached(ctx, id); ok {
		return p, nil
	}
	p, err := c.store.Products().GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	c.remember(ctx, *p)
	return p, nil
}

func (c *Catalog) cached(ctx context.Context, id int64) (*domain.Product, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, c.productKey(id))
	if err != nil {
		slog.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var entry cachedProduct
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, false
	}
	p, err := entry.toDomain()
	if err != nil {
		return nil, false
	}
	return &p, true
}

func (c *Catalog) remember(ctx context.Context, p domain.Product) {
	if c.cache == nil {
		return
	}
	b, err := json.Marshal(toCachedProduct(p))
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, c.productKey(p.ID), b, c.ttl); err != nil {
		slog.WarnContext(ctx, "product cache write failed", "product_id", p.ID, "error", err)
	}
}

// Invalidate drops the cached copy of a product after it changed.
func (c *Catalog) Invalidate(ctx context.Context, id int64) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, c.productKey(id)); err != nil {
		slog.WarnContext(ctx, "product cache invalidation failed", "product_id", id, "error", err)
	}
}

// ListProducts lists the catalog, optionally narrowed to one category.
func (c *Catalog) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	filter := domain.ProductFilter{}
	if category != "" {
		name, err := domain.ParseCategory(category)
		if err != nil {
			v := domain.NewValidationError()
			v.Add("category", "must be one of suits, shirts, neckwear, shoes")
			return nil, v
		}
		filter.Category = name
	}
	return c.store.Products().ListProducts(ctx, filter)
}

// Search matches query against product names and descriptions, case
// insensitively.
func (c *Catalog) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if query == "" {
		v := domain.NewValidationError()
		v.Add("q", "is required")
		return nil, v
	}
	return c.store.Products().ListProducts(ctx, domain.ProductFilter{Query: query})
}

func (c *Catalog) Discounted(ctx context.Context) ([]domain.Product, error) {
	return c.store.Products().ListProducts(ctx, domain.ProductFilter{DiscountedOnly: true})
}

// Suggestions returns other products of the same category.
func (c *Catalog) Suggestions(ctx context.Context, id int64, limit int) ([]domain.Product, error) {
	p, err := c.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSuggestions
	}
	return c.store.Products().ListProducts(ctx, domain.ProductFilter{
		Category:  p.Category,
		ExcludeID: p.ID,
		Limit:     limit,
	})
}

func (c *Catalog) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.AverageRating = decimal.Zero
	return c.store.Products().CreateProduct(ctx, p)
}

// UpdateProduct replaces the writable fields. The average rating is derived
// and cannot be set.
func (c *Catalog) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := c.store.Products().UpdateProduct(ctx, p); err != nil {
		return err
	}
	c.Invalidate(ctx, p.ID)
	updated, err := c.store.Products().GetProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *updated
	return nil
}

// DeleteProduct fails with domain.ErrProductOrdered once the product is part
// of an order.
func (c *Catalog) DeleteProduct(ctx context.Context, id int64) error {
	err := c.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return repos.Products().DeleteProduct(ctx, id)
	})
	if err != nil {
		return err
	}
	c.Invalidate(ctx, id)
	return nil
}

func (c *Catalog) Banners(ctx context.Context, kind string) ([]domain.Banner, error) {
	k := domain.BannerKind(kind)
	switch k {
	case "", domain.BannerCover, domain.BannerButton:
	default:
		v := domain.NewValidationError()
		v.Add("kind", "must be cover or button")
		return nil, v
	}
	return c.store.Products().ListBanners(ctx, k)
}

func (c *Catalog) CreateBanner(ctx context.Context, b *domain.Banner) error {
	return c.store.Products().CreateBanner(ctx, b)
}
