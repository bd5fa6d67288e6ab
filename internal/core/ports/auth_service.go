package ports

import (
	"context"

	"github.com/userdir/user-service/internal/core/domain"
)

// AuthService runs the credential flows for both principal kinds.
// Every returned error is a *domain.Error.
type AuthService interface {
	Login(ctx context.Context, kind domain.PrincipalKind, email, password string) (string, error)
	ForgotPassword(ctx context.Context, kind domain.PrincipalKind, email string) error
	VerifyOTP(ctx context.Context, kind domain.PrincipalKind, email, code string) (*domain.OneTimePasscode, error)
	ResetPassword(ctx context.Context, kind domain.PrincipalKind, email, password string) error
}

// PasswordHasher hashes and verifies secrets.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A mismatch is (false, nil);
	// an error means the comparison itself could not run.
	Verify(hash, password string) (bool, error)
}

// TokenIssuer signs session tokens for an authenticated principal.
type TokenIssuer interface {
	Issue(p *domain.Principal) (string, error)
}

// TokenVerifier validates a session token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// RateLimiter counts hits against key within a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
