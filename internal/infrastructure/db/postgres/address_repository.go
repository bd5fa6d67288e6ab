package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/userdir/user-service/internal/core/domain"
)

const addressColumns = `address_id, customer_id, address_no, address_line1, address_line2, city, zip_code, created_at`

// AddressRepository implements ports.AddressRepository on PostgreSQL.
type AddressRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewAddressRepository(db *sqlx.DB, timeout time.Duration) *AddressRepository {
	return &AddressRepository{db: db, timeout: timeout}
}

func (r *AddressRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Address, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	addresses := make([]*domain.Address, 0)
	err := r.db.SelectContext(ctx, &addresses,
		`SELECT `+addressColumns+` FROM addresses WHERE customer_id = $1 ORDER BY created_at`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO addresses (` + addressColumns + `)
		VALUES (:address_id, :customer_id, :address_no, :address_line1, :address_line2, :city, :zip_code, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}
