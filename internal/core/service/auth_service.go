package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/userdir/user-service/internal/core/domain"
	"github.com/userdir/user-service/internal/core/ports"
)

const otpSubject = "Password reset OTP"

// principalDirectory is the slice of a record store the auth flows need.
type principalDirectory interface {
	findByEmail(ctx context.Context, email string) (*domain.Principal, error)
	updatePassword(ctx context.Context, id, passwordHash string) error
}

type customerDirectory struct{ repo ports.CustomerRepository }

func (d customerDirectory) findByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	c, err := d.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return c.Principal(), nil
}

func (d customerDirectory) updatePassword(ctx context.Context, id, hash string) error {
	return d.repo.UpdatePassword(ctx, id, hash)
}

type adminDirectory struct{ repo ports.AdminRepository }

func (d adminDirectory) findByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	a, err := d.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return a.Principal(), nil
}

func (d adminDirectory) updatePassword(ctx context.Context, id, hash string) error {
	return d.repo.UpdatePassword(ctx, id, hash)
}

// AuthDeps groups the collaborators of AuthService. Limiter may be nil.
type AuthDeps struct {
	Customers ports.CustomerRepository
	Admins    ports.AdminRepository
	OTPs      *OTPManager
	Hasher    ports.PasswordHasher
	Tokens    ports.TokenIssuer
	Notifier  ports.Notifier
	Limiter   ports.RateLimiter
	Log       zerolog.Logger
}

// AuthService implements login, forgot-password, OTP verification and
// password reset for customers and admins.
type AuthService struct {
	directories map[domain.PrincipalKind]principalDirectory
	otps        *OTPManager
	hasher      ports.PasswordHasher
	tokens      ports.TokenIssuer
	notifier    ports.Notifier
	limiter     ports.RateLimiter
	log         zerolog.Logger
}

func NewAuthService(deps AuthDeps) *AuthService {
	return &AuthService{
		directories: map[domain.PrincipalKind]principalDirectory{
			domain.KindCustomer: customerDirectory{repo: deps.Customers},
			domain.KindAdmin:    adminDirectory{repo: deps.Admins},
		},
		otps:     deps.OTPs,
		hasher:   deps.Hasher,
		tokens:   deps.Tokens,
		notifier: deps.Notifier,
		limiter:  deps.Limiter,
		log:      deps.Log,
	}
}

func (s *AuthService) Login(ctx context.Context, kind domain.PrincipalKind, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.Validation(domain.MsgMissingFields)
	}

	p, err := s.lookup(ctx, kind, email, kind.Label()+" not found")
	if err != nil {
		return "", err
	}

	ok, err := s.hasher.Verify(p.PasswordHash, password)
	if err != nil {
		return "", domain.Internal(err)
	}
	if !ok {
		return "", domain.Unauthorized(domain.MsgInvalidPassword)
	}

	token, err := s.tokens.Issue(p)
	if err != nil {
		return "", domain.Internal(err)
	}

	s.log.Info().Str("kind", string(kind)).Str("principal_id", p.ID).Msg("login succeeded")
	return token, nil
}

// ForgotPassword issues an OTP and mails it. A failed dispatch leaves the
// persisted row in place.
func (s *AuthService) ForgotPassword(ctx context.Context, kind domain.PrincipalKind, email string) error {
	if email == "" {
		return domain.Validation(domain.MsgMissingFields)
	}

	if err := s.throttle(ctx, kind, email); err != nil {
		return err
	}

	p, err := s.lookup(ctx, kind, email, domain.MsgUserNotFound)
	if err != nil {
		return err
	}

	otp, err := s.otps.Issue(ctx, p.Owner())
	if err != nil {
		return domain.Internal(err)
	}

	msg := ports.Notification{
		To:      []string{p.Email},
		Subject: otpSubject,
		Message: fmt.Sprintf("Your OTP code is %s. It expires in %d minutes.", otp.Code, int(s.otps.TTL().Minutes())),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("kind", string(kind)).Str("principal_id", p.ID).Str("otp_id", otp.ID).Msg("otp dispatch failed")
		return domain.InternalMessage(domain.MsgOTPSendFailed, err)
	}

	s.log.Info().Str("kind", string(kind)).Str("principal_id", p.ID).Str("otp_id", otp.ID).Msg("otp issued")
	return nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, kind domain.PrincipalKind, email, code string) (*domain.OneTimePasscode, error) {
	if email == "" || code == "" {
		return nil, domain.Validation(domain.MsgMissingFields)
	}

	p, err := s.lookup(ctx, kind, email, domain.MsgUserNotFound)
	if err != nil {
		return nil, err
	}

	otp, err := s.otps.Verify(ctx, p.Owner(), code)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("kind", string(kind)).Str("principal_id", p.ID).Str("otp_id", otp.ID).Msg("otp verified")
	return otp, nil
}

// ResetPassword replaces the principal's password hash. It does not require a
// prior OTP verification.
func (s *AuthService) ResetPassword(ctx context.Context, kind domain.PrincipalKind, email, password string) error {
	if email == "" || password == "" {
		return domain.Validation(domain.MsgMissingFields)
	}

	p, err := s.lookup(ctx, kind, email, domain.MsgUserNotFound)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Internal(err)
	}

	dir := s.directories[kind]
	if err := dir.updatePassword(ctx, p.ID, hash); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound(domain.MsgUserNotFound)
		}
		return domain.Internal(err)
	}

	s.log.Info().Str("kind", string(kind)).Str("principal_id", p.ID).Msg("password reset")
	return nil
}

func (s *AuthService) lookup(ctx context.Context, kind domain.PrincipalKind, email, notFoundMsg string) (*domain.Principal, error) {
	dir, ok := s.directories[kind]
	if !ok {
		return nil, domain.Internal(fmt.Errorf("unknown principal kind %q", kind))
	}

	p, err := dir.findByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(notFoundMsg)
		}
		return nil, domain.Internal(err)
	}
	return p, nil
}

// throttle fails open when the limiter itself is unavailable.
func (s *AuthService) throttle(ctx context.Context, kind domain.PrincipalKind, email string) error {
	if s.limiter == nil {
		return nil
	}

	key := string(kind) + ":" + strings.ToLower(email)
	allowed, err := s.limiter.Allow(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("kind", string(kind)).Msg("forgot-password limiter unavailable, continuing")
		return nil
	}
	if !allowed {
		return domain.RateLimited(domain.MsgTooManyOTPRequests)
	}
	return nil
}
