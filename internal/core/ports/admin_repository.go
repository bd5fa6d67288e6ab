package ports

import (
	"context"

	"github.com/userdir/user-service/internal/core/domain"
)

// AdminRepository persists admin and super-admin records in a single namespace.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	ListByRole(ctx context.Context, role string) ([]*domain.Admin, error)
	Create(ctx context.Context, a *domain.Admin) error
	Update(ctx context.Context, a *domain.Admin) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
