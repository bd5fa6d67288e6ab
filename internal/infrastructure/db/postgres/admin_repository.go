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

const adminColumns = `admin_id, admin_name, email, password_hash, admin_role, created_at, updated_at`

// AdminRepository implements ports.AdminRepository on PostgreSQL.
type AdminRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewAdminRepository(db *sqlx.DB, timeout time.Duration) *AdminRepository {
	return &AdminRepository{db: db, timeout: timeout}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.get(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = $1`, email)
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.get(ctx, `SELECT `+adminColumns+` FROM admins WHERE admin_id = $1`, id)
}

func (r *AdminRepository) ListByRole(ctx context.Context, role string) ([]*domain.Admin, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	admins := make([]*domain.Admin, 0)
	err := r.db.SelectContext(ctx, &admins, `SELECT `+adminColumns+` FROM admins WHERE admin_role = $1 ORDER BY created_at`, role)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO admins (` + adminColumns + `)
		VALUES (:admin_id, :admin_name, :email, :password_hash, :admin_role, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) Update(ctx context.Context, a *domain.Admin) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE admins SET
			admin_name = :admin_name,
			email = :email,
			updated_at = :updated_at
		WHERE admin_id = :admin_id`
	res, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update admin: %w", err)
	}
	return requireRow(res)
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE admins SET password_hash = $1, updated_at = $2 WHERE admin_id = $3`,
		passwordHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	return requireRow(res)
}

func (r *AdminRepository) get(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var a domain.Admin
	if err := r.db.GetContext(ctx, &a, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &a, nil
}
