package ports

import (
	"context"

	"github.com/userdir/user-service/internal/core/domain"
)

// CustomerRepository persists customer records. Lookups return domain.ErrNotFound
// when nothing matches and Create returns domain.ErrDuplicateEmail on a taken email.
type CustomerRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// AddressRepository persists customer addresses.
type AddressRepository interface {
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Address, error)
	Create(ctx context.Context, a *domain.Address) error
}
