package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/userdir/user-service/internal/core/domain"
	"github.com/userdir/user-service/internal/core/ports"
)

// DirectoryService implements the plain customer, address and admin record operations.
type DirectoryService struct {
	customers ports.CustomerRepository
	addresses ports.AddressRepository
	admins    ports.AdminRepository
	hasher    ports.PasswordHasher
	log       zerolog.Logger
	now       func() time.Time
}

func NewDirectoryService(
	customers ports.CustomerRepository,
	addresses ports.AddressRepository,
	admins ports.AdminRepository,
	hasher ports.PasswordHasher,
	log zerolog.Logger,
) *DirectoryService {
	return &DirectoryService{
		customers: customers,
		addresses: addresses,
		admins:    admins,
		hasher:    hasher,
		log:       log,
		now:       time.Now,
	}
}

func (s *DirectoryService) CreateCustomer(ctx context.Context, in ports.CreateCustomerInput) (*domain.Customer, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.PhoneNumber == "" {
		return nil, domain.Validation(domain.MsgMissingFields)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.Internal(err)
	}

	now := s.now().UTC()
	c := &domain.Customer{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, storeError(err, "Customer not found")
	}

	s.log.Info().Str("customer_id", c.ID).Msg("customer created")
	return c, nil
}

func (s *DirectoryService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	list, err := s.customers.List(ctx)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return list, nil
}

func (s *DirectoryService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Customer not found")
	}
	return c, nil
}

func (s *DirectoryService) UpdateCustomer(ctx context.Context, id string, in ports.UpdateCustomerInput) (*domain.Customer, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Customer not found")
	}

	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Email != "" {
		c.Email = in.Email
	}
	if in.PhoneNumber != "" {
		c.PhoneNumber = in.PhoneNumber
	}
	c.UpdatedAt = s.now().UTC()

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, storeError(err, "Customer not found")
	}
	return c, nil
}

func (s *DirectoryService) ListAddresses(ctx context.Context, customerID string) ([]*domain.Address, error) {
	list, err := s.addresses.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return list, nil
}

func (s *DirectoryService) CreateAddress(ctx context.Context, customerID string, in ports.CreateAddressInput) (*domain.Address, error) {
	if in.AddressLine1 == "" || in.City == "" || in.ZipCode == "" {
		return nil, domain.Validation(domain.MsgMissingFields)
	}
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, storeError(err, "Customer not found")
	}

	a := &domain.Address{
		ID:           uuid.NewString(),
		CustomerID:   customerID,
		AddressNo:    in.AddressNo,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		ZipCode:      in.ZipCode,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.addresses.Create(ctx, a); err != nil {
		return nil, domain.Internal(err)
	}
	return a, nil
}

func (s *DirectoryService) CreateAdmin(ctx context.Context, role string, in ports.CreateAdminInput) (*domain.Admin, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.Validation(domain.MsgMissingFields)
	}
	if !isAdminRole(role) {
		return nil, domain.Validation("Invalid admin role")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.Internal(err)
	}

	now := s.now().UTC()
	a := &domain.Admin{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.admins.Create(ctx, a); err != nil {
		return nil, storeError(err, adminLabel(role)+" not found")
	}

	s.log.Info().Str("admin_id", a.ID).Str("role", role).Msg("admin created")
	return a, nil
}

func (s *DirectoryService) ListAdmins(ctx context.Context, role string) ([]*domain.Admin, error) {
	list, err := s.admins.ListByRole(ctx, role)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return list, nil
}

// GetAdmin only returns records whose role matches the requested namespace.
func (s *DirectoryService) GetAdmin(ctx context.Context, role, id string) (*domain.Admin, error) {
	a, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, adminLabel(role)+" not found")
	}
	if a.Role != role {
		return nil, domain.NotFound(adminLabel(role) + " not found")
	}
	return a, nil
}

func (s *DirectoryService) UpdateAdmin(ctx context.Context, role, id string, in ports.UpdateAdminInput) (*domain.Admin, error) {
	a, err := s.GetAdmin(ctx, role, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		a.Name = in.Name
	}
	if in.Email != "" {
		a.Email = in.Email
	}
	a.UpdatedAt = s.now().UTC()

	if err := s.admins.Update(ctx, a); err != nil {
		return nil, storeError(err, adminLabel(role)+" not found")
	}
	return a, nil
}

func isAdminRole(role string) bool {
	return role == domain.RoleAdmin || role == domain.RoleSuperAdmin
}

func adminLabel(role string) string {
	if role == domain.RoleSuperAdmin {
		return "Super Admin"
	}
	return "Admin"
}

// storeError maps repository sentinels onto tagged errors.
func storeError(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.NotFound(notFoundMsg)
	case errors.Is(err, domain.ErrDuplicateEmail):
		return domain.Conflict(domain.MsgEmailTaken)
	default:
		return domain.Internal(err)
	}
}
