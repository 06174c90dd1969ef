package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

type cartRepo struct {
	q querier
}

func (r cartRepo) GetCartByCustomer(ctx context.Context, customerID int64) (*domain.Cart, error) {
	var (
		cart      domain.Cart
		createdAt string
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT id, customer_id, created_at FROM carts WHERE customer_id = ?`, customerID,
	).Scan(&cart.ID, &cart.CustomerID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cart of customer %d: %w", customerID, domain.ErrCartNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get cart of customer %d: %w", customerID, err)
	}
	if cart.CreatedAt, err = ParseTime(createdAt); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r cartRepo) CreateCart(ctx context.Context, cart *domain.Cart) error {
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = time.Now().UTC()
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO carts (id, customer_id, created_at) VALUES (?, ?, ?)`,
		cart.ID, cart.CustomerID, FormatTime(cart.CreatedAt))
	if err != nil {
		return fmt.Errorf("sqlite: create cart for customer %d: %w", cart.CustomerID, err)
	}
	return nil
}

// IncrementItem relies on the upsert so that the increment is applied by the
// database against the committed quantity.
func (r cartRepo) IncrementItem(ctx context.Context, cartID string, productID int64, quantity int) (int, error) {
	const q = `
		INSERT INTO cart_items (cart_id, product_id, quantity, subtotal, updated_at)
		VALUES (?, ?, ?, '0.00', ?)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET
			quantity   = cart_items.quantity + excluded.quantity,
			updated_at = excluded.updated_at
		RETURNING quantity`

	var total int
	err := r.q.QueryRowContext(ctx, q, cartID, productID, quantity, FormatTime(time.Now())).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sqlite: increment cart %s product %d: %w", cartID, productID, err)
	}
	return total, nil
}

func (r cartRepo) SetItemSubtotal(ctx context.Context, cartID string, productID int64, subtotal decimal.Decimal) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE cart_items SET subtotal = ? WHERE cart_id = ? AND product_id = ?`,
		formatMoney(subtotal), cartID, productID)
	if err != nil {
		return fmt.Errorf("sqlite: set subtotal cart %s product %d: %w", cartID, productID, err)
	}
	return nil
}

const cartItemSelect = `
	SELECT ci.cart_id, ci.quantity, ci.subtotal, ci.updated_at, ` + productColumns + `
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	JOIN categories c ON c.id = p.category_id`

func scanCartItem(row rowScanner) (domain.CartItem, error) {
	var (
		it                  domain.CartItem
		subtotal, updatedAt string
		pr                  productRow
	)
	dest := append([]any{&it.CartID, &it.Quantity, &subtotal, &updatedAt}, pr.dest()...)
	if err := row.Scan(dest...); err != nil {
		return domain.CartItem{}, err
	}
	var err error
	if it.Subtotal, err = parseMoney(subtotal); err != nil {
		return domain.CartItem{}, err
	}
	if it.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return domain.CartItem{}, err
	}
	if it.Product, err = pr.decode(); err != nil {
		return domain.CartItem{}, err
	}
	it.ProductID = it.Product.ID
	return it, nil
}

func (r cartRepo) GetItem(ctx context.Context, cartID string, productID int64) (*domain.CartItem, error) {
	row := r.q.QueryRowContext(ctx, cartItemSelect+` WHERE ci.cart_id = ? AND ci.product_id = ?`, cartID, productID)
	it, err := scanCartItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cart %s product %d: %w", cartID, productID, domain.ErrProductNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get cart item: %w", err)
	}
	return &it, nil
}

func (r cartRepo) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := r.q.QueryContext(ctx, cartItemSelect+` WHERE ci.cart_id = ? ORDER BY ci.product_id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list cart %s: %w", cartID, err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		it, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r cartRepo) DeleteItem(ctx context.Context, cartID string, productID int64) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	if err != nil {
		return fmt.Errorf("sqlite: delete cart %s product %d: %w", cartID, productID, err)
	}
	return nil
}

func (r cartRepo) ClearItems(ctx context.Context, cartID string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return fmt.Errorf("sqlite: clear cart %s: %w", cartID, err)
	}
	return nil
}
