// Package seed loads a starter catalog from a YAML file into an empty store.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

type File struct {
	Products []Product `yaml:"products"`
	Banners  []Banner  `yaml:"banners"`
}

type Product struct {
	Name               string `yaml:"name"`
	Description        string `yaml:"description"`
	Price              string `yaml:"price"`
	Category           string `yaml:"category"`
	Image              string `yaml:"image"`
	DiscountPercentage int    `yaml:"discount_percentage"`
}

type Banner struct {
	Kind     string `yaml:"kind"`
	ImageURL string `yaml:"image_url"`
	Title    string `yaml:"title"`
}

func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %q: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("seed: parse: %w", err)
	}
	return &f, nil
}

// Apply inserts the file's products and banners when the catalog is empty.
// It reports whether anything was written.
func Apply(ctx context.Context, store ports.UnitOfWork, f *File) (bool, error) {
	existing, err := store.Products().ListProducts(ctx, domain.ProductFilter{Limit: 1})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	err = store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		for i, sp := range f.Products {
			price, err := decimal.NewFromString(sp.Price)
			if err != nil {
				return fmt.Errorf("seed: product %d (%s): price: %w", i, sp.Name, err)
			}
			p := &domain.Product{
				Name:               sp.Name,
				Description:        sp.Description,
				Price:              price,
				Category:           domain.CategoryName(sp.Category),
				Image:              sp.Image,
				AddedByAdmin:       true,
				DiscountPercentage: sp.DiscountPercentage,
			}
			if err := p.Validate(); err != nil {
				return fmt.Errorf("seed: product %d (%s): %w", i, sp.Name, err)
			}
			if err := repos.Products().CreateProduct(ctx, p); err != nil {
				return err
			}
		}
		for i, sb := range f.Banners {
			kind := domain.BannerKind(sb.Kind)
			if kind != domain.BannerCover && kind != domain.BannerButton {
				return fmt.Errorf("seed: banner %d: unknown kind %q", i, sb.Kind)
			}
			b := &domain.Banner{Kind: kind, ImageURL: sb.ImageURL, Title: sb.Title}
			if err := repos.Products().CreateBanner(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	slog.InfoContext(ctx, "catalog seeded", "products", len(f.Products), "banners", len(f.Banners))
	return true, nil
}
