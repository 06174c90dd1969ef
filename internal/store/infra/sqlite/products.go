package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

type productRepo struct {
	q querier
}

const productColumns = `
	p.id, p.name, p.description, p.price, c.name, p.image, p.added_by_admin,
	p.discount_percentage, p.average_rating, p.created_at, p.updated_at`

const productFrom = `
	FROM products p
	JOIN categories c ON c.id = p.category_id`

type rowScanner interface {
	Scan(dest ...any) error
}

// productRow holds the raw columns of productColumns until they are decoded.
type productRow struct {
	p                    domain.Product
	price, avg           string
	category             string
	addedByAdmin         int
	createdAt, updatedAt string
}

func (r *productRow) dest() []any {
	return []any{&r.p.ID, &r.p.Name, &r.p.Description, &r.price, &r.category, &r.p.Image,
		&r.addedByAdmin, &r.p.DiscountPercentage, &r.avg, &r.createdAt, &r.updatedAt}
}

func (r *productRow) decode() (domain.Product, error) {
	p := r.p
	var err error
	if p.Price, err = parseMoney(r.price); err != nil {
		return domain.Product{}, err
	}
	if p.AverageRating, err = parseMoney(r.avg); err != nil {
		return domain.Product{}, err
	}
	if p.CreatedAt, err = ParseTime(r.createdAt); err != nil {
		return domain.Product{}, err
	}
	if p.UpdatedAt, err = ParseTime(r.updatedAt); err != nil {
		return domain.Product{}, err
	}
	p.Category = domain.CategoryName(r.category)
	p.AddedByAdmin = r.addedByAdmin == 1
	return p, nil
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var pr productRow
	if err := row.Scan(pr.dest()...); err != nil {
		return domain.Product{}, err
	}
	return pr.decode()
}

func (r productRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get product %d: %w", id, err)
	}
	return &p, nil
}

func (r productRepo) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		where = append(where, "c.name = ?")
		args = append(args, string(f.Category))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + escapeLike(strings.ToLower(q)) + "%"
		where = append(where, `(lower(p.name) LIKE ? ESCAPE '\' OR lower(p.description) LIKE ? ESCAPE '\')`)
		args = append(args, like, like)
	}
	if f.DiscountedOnly {
		where = append(where, "p.discount_percentage > 0")
	}
	if f.ExcludeID != 0 {
		where = append(where, "p.id <> ?")
		args = append(args, f.ExcludeID)
	}

	query := `SELECT ` + productColumns + productFrom
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.id"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r productRepo) CreateProduct(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO products
			(name, description, price, category_id, image, added_by_admin,
			 discount_percentage, average_rating, created_at, updated_at)
		VALUES
			(?, ?, ?, (SELECT id FROM categories WHERE name = ?), ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, formatMoney(p.Price), string(p.Category), p.Image,
		boolInt(p.AddedByAdmin), p.DiscountPercentage, formatMoney(p.AverageRating),
		FormatTime(now), FormatTime(now),
	)
	if err != nil {
		return fmt.Errorf("sqlite: create product %q: %w", p.Name, err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: create product %q: %w", p.Name, err)
	}
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

func (r productRepo) UpdateProduct(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET
			name = ?, description = ?, price = ?,
			category_id = (SELECT id FROM categories WHERE name = ?),
			image = ?, added_by_admin = ?, discount_percentage = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, formatMoney(p.Price), string(p.Category), p.Image,
		boolInt(p.AddedByAdmin), p.DiscountPercentage, FormatTime(now), p.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: update product %d: %w", p.ID, err)
	}
	if err := expectOne(res, fmt.Errorf("product %d: %w", p.ID, domain.ErrProductNotFound)); err != nil {
		return err
	}
	p.UpdatedAt = now
	return nil
}

// DeleteProduct removes a product together with its cart lines, ratings and
// favorites. Products that appear on an order are kept.
func (r productRepo) DeleteProduct(ctx context.Context, id int64) error {
	var ordered bool
	if err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = ?)`, id,
	).Scan(&ordered); err != nil {
		return fmt.Errorf("sqlite: check orders of product %d: %w", id, err)
	}
	if ordered {
		return fmt.Errorf("product %d: %w", id, domain.ErrProductOrdered)
	}
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete product %d: %w", id, err)
	}
	return expectOne(res, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound))
}

func (r productRepo) SetAverageRating(ctx context.Context, productID int64, avg decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET average_rating = ?, updated_at = ? WHERE id = ?`,
		formatMoney(avg), FormatTime(time.Now()), productID)
	if err != nil {
		return fmt.Errorf("sqlite: set average rating of %d: %w", productID, err)
	}
	return expectOne(res, fmt.Errorf("product %d: %w", productID, domain.ErrProductNotFound))
}

func (r productRepo) ListBanners(ctx context.Context, kind domain.BannerKind) ([]domain.Banner, error) {
	query := `SELECT id, kind, image_url, title FROM banners`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list banners: %w", err)
	}
	defer rows.Close()

	banners := []domain.Banner{}
	for rows.Next() {
		var b domain.Banner
		if err := rows.Scan(&b.ID, &b.Kind, &b.ImageURL, &b.Title); err != nil {
			return nil, fmt.Errorf("sqlite: scan banner: %w", err)
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r productRepo) CreateBanner(ctx context.Context, b *domain.Banner) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO banners (kind, image_url, title) VALUES (?, ?, ?)`,
		string(b.Kind), b.ImageURL, b.Title)
	if err != nil {
		return fmt.Errorf("sqlite: create banner: %w", err)
	}
	b.ID, err = res.LastInsertId()
	return err
}

// expectOne returns notFound when the statement touched no row.
func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
