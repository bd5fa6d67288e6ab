package ports

import (
	"context"

	"github.com/userdir/user-service/internal/core/domain"
)

// CreateCustomerInput carries the registration fields for a customer.
type CreateCustomerInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

// UpdateCustomerInput carries the mutable customer fields. Empty values are left unchanged.
type UpdateCustomerInput struct {
	Name        string
	Email       string
	PhoneNumber string
}

// CreateAddressInput carries a new address for a customer.
type CreateAddressInput struct {
	AddressNo    string
	AddressLine1 string
	AddressLine2 string
	City         string
	ZipCode      string
}

// CreateAdminInput carries the fields for a new admin or super admin.
type CreateAdminInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateAdminInput carries the mutable admin fields. Empty values are left unchanged.
type UpdateAdminInput struct {
	Name  string
	Email string
}

// DirectoryService covers the plain record operations. Admin operations take
// the role (Admin or SuperAdmin) whose namespace they act on.
type DirectoryService interface {
	CreateCustomer(ctx context.Context, in CreateCustomerInput) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id string, in UpdateCustomerInput) (*domain.Customer, error)

	ListAddresses(ctx context.Context, customerID string) ([]*domain.Address, error)
	CreateAddress(ctx context.Context, customerID string, in CreateAddressInput) (*domain.Address, error)

	CreateAdmin(ctx context.Context, role string, in CreateAdminInput) (*domain.Admin, error)
	ListAdmins(ctx context.Context, role string) ([]*domain.Admin, error)
	GetAdmin(ctx context.Context, role, id string) (*domain.Admin, error)
	UpdateAdmin(ctx context.Context, role, id string, in UpdateAdminInput) (*domain.Admin, error)
}
