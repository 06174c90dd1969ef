package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

type customerRepo struct {
	q querier
}

const customerColumns = `id, username, email, password_hash, name, location, city, country, payment_method, created_at`

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var (
		c         domain.Customer
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.Name,
		&c.Location, &c.City, &c.Country, &c.PaymentMethod, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if c.CreatedAt, err = ParseTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r customerRepo) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	c.CreatedAt = time.Now().UTC()
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO customers (username, email, password_hash, name, location, city, country, payment_method, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Username, c.Email, c.PasswordHash, c.Name, c.Location, c.City, c.Country,
		string(c.PaymentMethod), FormatTime(c.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("customer %q: %w", c.Username, domain.ErrDuplicateCustomer)
		}
		return fmt.Errorf("sqlite: create customer %q: %w", c.Username, err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (r customerRepo) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := scanCustomer(r.q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrCustomerNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get customer %d: %w", id, err)
	}
	return c, nil
}

func (r customerRepo) GetCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	c, err := scanCustomer(r.q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE username = ?`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %q: %w", username, domain.ErrCustomerNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get customer %q: %w", username, err)
	}
	return c, nil
}

func (r customerRepo) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE customers SET email = ?, name = ?, location = ?, city = ?, country = ?, payment_method = ?
		WHERE id = ?`,
		c.Email, c.Name, c.Location, c.City, c.Country, string(c.PaymentMethod), c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("customer %d: %w", c.ID, domain.ErrDuplicateCustomer)
		}
		return fmt.Errorf("sqlite: update customer %d: %w", c.ID, err)
	}
	return expectOne(res, fmt.Errorf("customer %d: %w", c.ID, domain.ErrCustomerNotFound))
}

func (r customerRepo) AddFavorite(ctx context.Context, customerID, productID int64) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites (customer_id, product_id) VALUES (?, ?)`, customerID, productID)
	if err != nil {
		return fmt.Errorf("sqlite: add favorite %d for %d: %w", productID, customerID, err)
	}
	return nil
}

func (r customerRepo) RemoveFavorite(ctx context.Context, customerID, productID int64) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM favorites WHERE customer_id = ? AND product_id = ?`, customerID, productID)
	if err != nil {
		return fmt.Errorf("sqlite: remove favorite %d for %d: %w", productID, customerID, err)
	}
	return nil
}

func (r customerRepo) ListFavorites(ctx context.Context, customerID int64) ([]domain.Product, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+productColumns+productFrom+`
		JOIN favorites f ON f.product_id = p.id
		WHERE f.customer_id = ?
		ORDER BY p.id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list favorites of %d: %w", customerID, err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan favorite: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r customerRepo) CountFavorites(ctx context.Context, customerID int64) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites WHERE customer_id = ?`, customerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: count favorites of %d: %w", customerID, err)
	}
	return n, nil
}

func (r customerRepo) GetTokenByCustomer(ctx context.Context, customerID int64) (*domain.AuthToken, error) {
	return r.getToken(ctx, `SELECT key, customer_id, created_at FROM auth_tokens WHERE customer_id = ?`, customerID)
}

func (r customerRepo) GetToken(ctx context.Context, key string) (*domain.AuthToken, error) {
	return r.getToken(ctx, `SELECT key, customer_id, created_at FROM auth_tokens WHERE key = ?`, key)
}

func (r customerRepo) getToken(ctx context.Context, q string, arg any) (*domain.AuthToken, error) {
	var (
		t         domain.AuthToken
		createdAt string
	)
	err := r.q.QueryRowContext(ctx, q, arg).Scan(&t.Key, &t.CustomerID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get token: %w", err)
	}
	if t.CreatedAt, err = ParseTime(createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r customerRepo) CreateToken(ctx context.Context, t *domain.AuthToken) error {
	t.CreatedAt = time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO auth_tokens (key, customer_id, created_at) VALUES (?, ?, ?)`,
		t.Key, t.CustomerID, FormatTime(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("sqlite: create token for %d: %w", t.CustomerID, err)
	}
	return nil
}

// The driver reports constraint failures only through the message text.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
