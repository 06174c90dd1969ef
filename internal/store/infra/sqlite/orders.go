package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

type orderRepo struct {
	q querier
}

func (r orderRepo) CreateOrder(ctx context.Context, o *domain.Order) error {
	now := time.Now().UTC()
	if o.Status == "" {
		o.Status = domain.OrderPending
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, is_ordered, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.CustomerID, boolInt(o.IsOrdered), string(o.Status), FormatTime(now), FormatTime(now))
	if err != nil {
		return fmt.Errorf("sqlite: create order %s: %w", o.ID, err)
	}
	o.CreatedAt, o.UpdatedAt = now, now
	return nil
}

func (r orderRepo) AddOrderItem(ctx context.Context, it *domain.OrderItem) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, subtotal)
		VALUES (?, ?, ?, ?)`,
		it.OrderID, it.ProductID, it.Quantity, formatMoney(it.Subtotal))
	if err != nil {
		return fmt.Errorf("sqlite: add item to order %s: %w", it.OrderID, err)
	}
	it.ID, err = res.LastInsertId()
	return err
}

func (r orderRepo) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, customer_id, is_ordered, status, created_at, updated_at FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrOrderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get order %s: %w", id, err)
	}
	if o.Items, err = r.listItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r orderRepo) ListOrders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, customer_id, is_ordered, status, created_at, updated_at
		FROM orders WHERE customer_id = ? ORDER BY created_at DESC, id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders of customer %d: %w", customerID, err)
	}
	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("sqlite: scan order: %w", err)
		}
		orders = append(orders, o)
	}
	// Close before issuing item queries: the pool has a single connection.
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].Items, err = r.listItems(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r orderRepo) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, isOrdered bool) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE orders SET status = ?, is_ordered = ?, updated_at = ? WHERE id = ?`,
		string(status), boolInt(isOrdered), FormatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("sqlite: update order %s: %w", id, err)
	}
	return expectOne(res, fmt.Errorf("order %s: %w", id, domain.ErrOrderNotFound))
}

func (r orderRepo) listItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.quantity, oi.subtotal, `+productColumns+`
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE oi.order_id = ?
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list items of order %s: %w", orderID, err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var (
			it       domain.OrderItem
			subtotal string
			pr       productRow
		)
		dest := append([]any{&it.ID, &it.OrderID, &it.Quantity, &subtotal}, pr.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("sqlite: scan order item: %w", err)
		}
		if it.Subtotal, err = parseMoney(subtotal); err != nil {
			return nil, err
		}
		if it.Product, err = pr.decode(); err != nil {
			return nil, err
		}
		it.ProductID = it.Product.ID
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o                    domain.Order
		isOrdered            int
		createdAt, updatedAt string
	)
	if err := row.Scan(&o.ID, &o.CustomerID, &isOrdered, &o.Status, &createdAt, &updatedAt); err != nil {
		return domain.Order{}, err
	}
	var err error
	if o.CreatedAt, err = ParseTime(createdAt); err != nil {
		return domain.Order{}, err
	}
	if o.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return domain.Order{}, err
	}
	o.IsOrdered = isOrdered == 1
	return o, nil
}
