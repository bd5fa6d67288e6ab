package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/userdir/user-service/internal/core/domain"
)

const customerColumns = `customer_id, customer_name, email, phone_number, password_hash, created_at, updated_at`

// CustomerRepository implements ports.CustomerRepository on PostgreSQL.
type CustomerRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewCustomerRepository(db *sqlx.DB, timeout time.Duration) *CustomerRepository {
	return &CustomerRepository{db: db, timeout: timeout}
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.get(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, email)
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.get(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, id)
}

func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	customers := make([]*domain.Customer, 0)
	if err := r.db.SelectContext(ctx, &customers, `SELECT `+customerColumns+` FROM customers ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES (:customer_id, :customer_name, :email, :phone_number, :password_hash, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE customers SET
			customer_name = :customer_name,
			email = :email,
			phone_number = :phone_number,
			updated_at = :updated_at
		WHERE customer_id = :customer_id`
	res, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return requireRow(res)
}

func (r *CustomerRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET password_hash = $1, updated_at = $2 WHERE customer_id = $3`,
		passwordHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update customer password: %w", err)
	}
	return requireRow(res)
}

func (r *CustomerRepository) get(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var c domain.Customer
	if err := r.db.GetContext(ctx, &c, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return &c, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
