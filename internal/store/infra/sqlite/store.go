// Package sqlite implements the store repositories on top of the pure-Go
// SQLite driver.
//
// The pool is limited to a single connection, so every transaction opened by
// WithinTx holds the only writer until it commits or rolls back. Concurrent
// cart mutations therefore serialize in the storage layer.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jcmexdev/menswear-store/internal/store/core/ports"

	// Register the pure-Go SQLite driver.
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id    INTEGER PRIMARY KEY AUTOINCREMENT,
    name  TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS products (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    name                 TEXT    NOT NULL,
    description          TEXT    NOT NULL DEFAULT '',
    price                TEXT    NOT NULL,
    category_id          INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
    image                TEXT    NOT NULL DEFAULT '',
    added_by_admin       INTEGER NOT NULL DEFAULT 0,
    discount_percentage  INTEGER NOT NULL DEFAULT 0 CHECK (discount_percentage BETWEEN 0 AND 100),
    average_rating       TEXT    NOT NULL DEFAULT '0.00',
    created_at           TEXT    NOT NULL,
    updated_at           TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);

CREATE TABLE IF NOT EXISTS customers (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    username        TEXT NOT NULL UNIQUE,
    email           TEXT NOT NULL UNIQUE,
    password_hash   TEXT NOT NULL,
    name            TEXT NOT NULL,
    location        TEXT NOT NULL DEFAULT '',
    city            TEXT NOT NULL DEFAULT '',
    country         TEXT NOT NULL DEFAULT '',
    payment_method  TEXT NOT NULL,
    created_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS favorites (
    customer_id  INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    product_id   INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    PRIMARY KEY (customer_id, product_id)
);

CREATE TABLE IF NOT EXISTS auth_tokens (
    key          TEXT PRIMARY KEY,
    customer_id  INTEGER NOT NULL UNIQUE REFERENCES customers(id) ON DELETE CASCADE,
    created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS carts (
    id           TEXT PRIMARY KEY,
    customer_id  INTEGER NOT NULL UNIQUE REFERENCES customers(id) ON DELETE CASCADE,
    created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cart_items (
    cart_id     TEXT    NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
    product_id  INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    quantity    INTEGER NOT NULL CHECK (quantity >= 1),
    subtotal    TEXT    NOT NULL DEFAULT '0.00',
    updated_at  TEXT    NOT NULL,
    PRIMARY KEY (cart_id, product_id)
);

CREATE TABLE IF NOT EXISTS orders (
    id           TEXT PRIMARY KEY,
    customer_id  INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    is_ordered   INTEGER NOT NULL DEFAULT 0,
    status       TEXT    NOT NULL,
    created_at   TEXT    NOT NULL,
    updated_at   TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at);

CREATE TABLE IF NOT EXISTS order_items (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id    TEXT    NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    product_id  INTEGER NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
    quantity    INTEGER NOT NULL CHECK (quantity >= 1),
    subtotal    TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

CREATE TABLE IF NOT EXISTS ratings (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id   INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    customer_id  INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    score        INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
    created_at   TEXT    NOT NULL,
    UNIQUE (product_id, customer_id)
);

CREATE TABLE IF NOT EXISTS card_charges (
    id           TEXT PRIMARY KEY,
    customer_id  INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    order_id     TEXT,
    amount       TEXT NOT NULL,
    currency     TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    status       TEXT NOT NULL,
    receipt_id   TEXT NOT NULL DEFAULT '',
    reason       TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS mobile_money_transactions (
    transaction_id  TEXT PRIMARY KEY,
    customer_id     INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    phone           TEXT NOT NULL,
    amount          TEXT NOT NULL,
    reference       TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS banners (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    kind       TEXT NOT NULL,
    image_url  TEXT NOT NULL,
    title      TEXT NOT NULL DEFAULT ''
);
`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQLite implementation of ports.UnitOfWork.
type Store struct {
	db *sql.DB
	repos
}

var _ ports.UnitOfWork = (*Store)(nil)

// Open opens (or creates) the database at path and applies the schema.
//
//	store, err := sqlite.Open("./data/store.db")
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	if err := seedCategories(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, repos: repos{q: db}}, nil
}

// DB exposes the underlying handle so other components (the saga log) can
// share the connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// WithinTx runs fn in a transaction and commits when fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r ports.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}
	if err := fn(ctx, repos{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("sqlite: rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// repos binds every repository to one querier.
type repos struct {
	q querier
}

func (r repos) Products() ports.ProductRepository   { return productRepo{r.q} }
func (r repos) Carts() ports.CartRepository         { return cartRepo{r.q} }
func (r repos) Orders() ports.OrderRepository       { return orderRepo{r.q} }
func (r repos) Ratings() ports.RatingRepository     { return ratingRepo{r.q} }
func (r repos) Customers() ports.CustomerRepository { return customerRepo{r.q} }
func (r repos) Payments() ports.PaymentRepository   { return paymentRepo{r.q} }

func seedCategories(db *sql.DB) error {
	for _, name := range domainCategories() {
		if _, err := db.Exec(`INSERT OR IGNORE INTO categories (name) VALUES (?)`, string(name)); err != nil {
			return fmt.Errorf("sqlite: seed category %q: %w", name, err)
		}
	}
	return nil
}
