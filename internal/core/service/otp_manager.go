package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/userdir/user-service/internal/core/domain"
	"github.com/userdir/user-service/internal/core/ports"
)

const (
	defaultOTPTTL = 15 * time.Minute
	otpCodeMin    = 1000
	otpCodeMax    = 9999
)

// OTPManager issues and consumes one-time passcodes.
type OTPManager struct {
	repo     ports.OTPRepository
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
}

func NewOTPManager(repo ports.OTPRepository, ttl time.Duration) *OTPManager {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	return &OTPManager{repo: repo, ttl: ttl, now: time.Now, generate: GenerateOTPCode}
}

// TTL is how long an issued code stays valid.
func (m *OTPManager) TTL() time.Duration { return m.ttl }

// Issue persists a fresh code for owner. Earlier live codes stay valid.
func (m *OTPManager) Issue(ctx context.Context, owner domain.OwnerRef) (*domain.OneTimePasscode, error) {
	code, err := m.generate()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	now := m.now().UTC()
	otp := &domain.OneTimePasscode{
		ID:        uuid.NewString(),
		Code:      code,
		OwnerKind: owner.Kind,
		OwnerID:   owner.ID,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}
	if err := m.repo.Create(ctx, otp); err != nil {
		return nil, err
	}
	return otp, nil
}

// Verify consumes the first code matching owner. Expired rows are reported but kept.
func (m *OTPManager) Verify(ctx context.Context, owner domain.OwnerRef, code string) (*domain.OneTimePasscode, error) {
	otp, err := m.repo.FindFirst(ctx, code, owner)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized(domain.MsgInvalidOTP)
		}
		return nil, domain.Internal(err)
	}

	if otp.IsExpired(m.now()) {
		return nil, domain.Unauthorized(domain.MsgOTPExpired)
	}

	if err := m.repo.Delete(ctx, otp.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Consumed by a concurrent verification.
			return nil, domain.Unauthorized(domain.MsgInvalidOTP)
		}
		return nil, domain.Internal(err)
	}
	return otp, nil
}

// GenerateOTPCode returns a uniformly sampled code in [1000, 9999].
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpCodeMax-otpCodeMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+otpCodeMin), nil
}
