package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

const minPasswordLength = 8

type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	Name          string
	Location      string
	City          string
	Country       string
	PaymentMethod string
}

type ProfileInput struct {
	Email         string
	Name          string
	Location      string
	City          string
	Country       string
	PaymentMethod string
}

// Customers handles registration, token issuance and favorites.
type Customers struct {
	store      ports.UnitOfWork
	bcryptCost int
}

func NewCustomers(store ports.UnitOfWork, bcryptCost int) *Customers {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Customers{store: store, bcryptCost: bcryptCost}
}

func (s *Customers) Register(ctx context.Context, in RegisterInput) (*domain.Customer, error) {
	c := &domain.Customer{
		Username:      in.Username,
		Email:         in.Email,
		Name:          in.Name,
		Location:      in.Location,
		City:          in.City,
		Country:       in.Country,
		PaymentMethod: domain.PaymentMethod(in.PaymentMethod),
	}
	verr := domain.NewValidationError()
	if err := c.Validate(); err != nil {
		var v *domain.ValidationError
		if errors.As(err, &v) {
			verr = v
		}
	}
	if len(in.Password) < minPasswordLength {
		verr.Add("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	c.PasswordHash = string(hash)

	if err := s.store.Customers().CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "customer registered", "customer_id", c.ID, "username", c.Username)
	return c, nil
}

// IssueToken verifies the credentials and returns the customer's API token,
// creating it on the first login.
func (s *Customers) IssueToken(ctx context.Context, username, password string) (*domain.AuthToken, error) {
	var token *domain.AuthToken
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		c, err := repos.Customers().GetCustomerByUsername(ctx, username)
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.ErrInvalidCredentials
		}
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
			return domain.ErrInvalidCredentials
		}

		token, err = repos.Customers().GetTokenByCustomer(ctx, c.ID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrUnauthenticated) {
			return err
		}
		token = &domain.AuthToken{Key: newID(), CustomerID: c.ID}
		return repos.Customers().CreateToken(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Authenticate resolves a token key to its customer.
func (s *Customers) Authenticate(ctx context.Context, key string) (*domain.Customer, error) {
	if key == "" {
		return nil, domain.ErrUnauthenticated
	}
	t, err := s.store.Customers().GetToken(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.store.Customers().GetCustomer(ctx, t.CustomerID)
}

func (s *Customers) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.store.Customers().GetCustomer(ctx, id)
}

func (s *Customers) UpdateProfile(ctx context.Context, customerID int64, in ProfileInput) (*domain.Customer, error) {
	var c *domain.Customer
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		if c, err = repos.Customers().GetCustomer(ctx, customerID); err != nil {
			return err
		}
		c.Email = in.Email
		c.Name = in.Name
		c.Location = in.Location
		c.City = in.City
		c.Country = in.Country
		c.PaymentMethod = domain.PaymentMethod(in.PaymentMethod)
		if err := c.Validate(); err != nil {
			return err
		}
		return repos.Customers().UpdateCustomer(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Customers) Favorite(ctx context.Context, customerID, productID int64) error {
	return s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if _, err := repos.Products().GetProduct(ctx, productID); err != nil {
			return err
		}
		return repos.Customers().AddFavorite(ctx, customerID, productID)
	})
}

func (s *Customers) Unfavorite(ctx context.Context, customerID, productID int64) error {
	return s.store.Customers().RemoveFavorite(ctx, customerID, productID)
}

func (s *Customers) Favorites(ctx context.Context, customerID int64) ([]domain.Product, error) {
	return s.store.Customers().ListFavorites(ctx, customerID)
}

func (s *Customers) FavoritesCount(ctx context.Context, customerID int64) (int, error) {
	return s.store.Customers().CountFavorites(ctx, customerID)
}
