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

const otpColumns = `otp_id, otp_code, owner_kind, owner_id, expires_at, created_at`

// OTPRepository implements ports.OTPRepository on PostgreSQL.
type OTPRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewOTPRepository(db *sqlx.DB, timeout time.Duration) *OTPRepository {
	return &OTPRepository{db: db, timeout: timeout}
}

func (r *OTPRepository) Create(ctx context.Context, otp *domain.OneTimePasscode) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO otps (` + otpColumns + `)
		VALUES (:otp_id, :otp_code, :owner_kind, :owner_id, :expires_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, otp); err != nil {
		return fmt.Errorf("insert otp: %w", err)
	}
	return nil
}

func (r *OTPRepository) FindFirst(ctx context.Context, code string, owner domain.OwnerRef) (*domain.OneTimePasscode, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var otp domain.OneTimePasscode
	err := r.db.GetContext(ctx, &otp, `
		SELECT `+otpColumns+` FROM otps
		WHERE otp_code = $1 AND owner_kind = $2 AND owner_id = $3
		ORDER BY created_at DESC
		LIMIT 1`,
		code, string(owner.Kind), owner.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}
	return &otp, nil
}

func (r *OTPRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE otp_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return requireRow(res)
}

func (r *OTPRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired otps: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
