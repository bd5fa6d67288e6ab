package ports

import (
	"context"
	"time"

	"github.com/userdir/user-service/internal/core/domain"
)

// OTPRepository persists one-time passcodes.
type OTPRepository interface {
	Create(ctx context.Context, otp *domain.OneTimePasscode) error
	// FindFirst returns the first row matching code and owner, or domain.ErrNotFound.
	FindFirst(ctx context.Context, code string, owner domain.OwnerRef) (*domain.OneTimePasscode, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpiredBefore removes rows whose expiry is older than cutoff and
	// reports how many were removed.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
