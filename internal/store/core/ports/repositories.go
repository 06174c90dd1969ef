package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	SetAverageRating(ctx context.Context, productID int64, avg decimal.Decimal) error
	ListBanners(ctx context.Context, kind domain.BannerKind) ([]domain.Banner, error)
	CreateBanner(ctx context.Context, b *domain.Banner) error
}

type CartRepository interface {
	GetCartByCustomer(ctx context.Context, customerID int64) (*domain.Cart, error)
	CreateCart(ctx context.Context, cart *domain.Cart) error
	// IncrementItem adds quantity to the (cart, product) line, creating it when
	// absent, and returns the resulting quantity.
	IncrementItem(ctx context.Context, cartID string, productID int64, quantity int) (int, error)
	SetItemSubtotal(ctx context.Context, cartID string, productID int64, subtotal decimal.Decimal) error
	GetItem(ctx context.Context, cartID string, productID int64) (*domain.CartItem, error)
	ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
	DeleteItem(ctx context.Context, cartID string, productID int64) error
	ClearItems(ctx context.Context, cartID string) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	AddOrderItem(ctx context.Context, item *domain.OrderItem) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, customerID int64) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, isOrdered bool) error
}

type RatingRepository interface {
	UpsertRating(ctx context.Context, r *domain.Rating) error
	DeleteRating(ctx context.Context, productID, customerID int64) (bool, error)
	ListScores(ctx context.Context, productID int64) ([]int, error)
}

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, c *domain.Customer) error
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	GetCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, c *domain.Customer) error
	AddFavorite(ctx context.Context, customerID, productID int64) error
	RemoveFavorite(ctx context.Context, customerID, productID int64) error
	ListFavorites(ctx context.Context, customerID int64) ([]domain.Product, error)
	CountFavorites(ctx context.Context, customerID int64) (int, error)
	GetTokenByCustomer(ctx context.Context, customerID int64) (*domain.AuthToken, error)
	GetToken(ctx context.Context, key string) (*domain.AuthToken, error)
	CreateToken(ctx context.Context, t *domain.AuthToken) error
}

type PaymentRepository interface {
	SaveCardCharge(ctx context.Context, c *domain.CardCharge) error
	SaveMobileMoney(ctx context.Context, tx *domain.MobileMoneyTransaction) error
	GetMobileMoney(ctx context.Context, transactionID string) (*domain.MobileMoneyTransaction, error)
	UpdateMobileMoneyStatus(ctx context.Context, transactionID string, status domain.PaymentStatus) error
}

// Repositories groups every repository bound to the same connection or
// transaction.
type Repositories interface {
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Ratings() RatingRepository
	Customers() CustomerRepository
	Payments() PaymentRepository
}

// UnitOfWork runs fn inside a single storage transaction. Returning an error
// from fn rolls back every write made through repos.
type UnitOfWork interface {
	Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
