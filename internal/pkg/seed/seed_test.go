package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/menswear-store/internal/pkg/seed"
	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/infra/sqlite"
)

const sample = `
products:
  - name: Navy two-piece suit
    price: "300.00"
    category: suits
    discount_percentage: 10
  - name: Oxford shirt
    price: "45.50"
    category: shirts
banners:
  - kind: cover
    image_url: /static/cover.jpg
`

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestApplySeedsOnce(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	f, err := seed.Load(path)
	require.NoError(t, err)
	require.Len(t, f.Products, 2)

	wrote, err := seed.Apply(ctx, store, f)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = seed.Apply(ctx, store, f)
	require.NoError(t, err)
	assert.False(t, wrote)

	products, err := store.Products().ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "45.50", products[1].Price.StringFixed(2))
	assert.True(t, products[0].AddedByAdmin)

	banners, err := store.Products().ListBanners(ctx, domain.BannerCover)
	require.NoError(t, err)
	assert.Len(t, banners, 1)
}

func TestApplyRejectsBadRows(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	f, err := seed.Parse([]byte("products:\n  - name: Hat\n    price: \"10\"\n    category: hats\n"))
	require.NoError(t, err)
	_, err = seed.Apply(ctx, store, f)
	assert.Error(t, err)

	products, err := store.Products().ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products, "a bad row rolls the whole seed back")
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := seed.Parse([]byte("products: ["))
	assert.Error(t, err)
}
