package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userdir/user-service/internal/core/domain"
)

const defaultTokenTTL = 15 * time.Minute

// SessionClaims is the payload carried by an access token.
type SessionClaims struct {
	PrincipalID string `json:"principalId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts verified claims into the request identity. Tokens without
// a role tag belong to customers.
func (c *SessionClaims) Identity() *domain.Identity {
	role := c.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	return &domain.Identity{
		PrincipalID: c.PrincipalID,
		DisplayName: c.DisplayName,
		Email:       c.Email,
		Role:        role,
	}
}

// JWTIssuer signs and parses HS256 session tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *JWTIssuer) Issue(p *domain.Principal) (string, error) {
	now := i.now()
	claims := SessionClaims{
		PrincipalID: p.ID,
		DisplayName: p.Name,
		Email:       p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	switch p.Kind {
	case domain.KindCustomer:
		claims.PhoneNumber = p.PhoneNumber
	case domain.KindAdmin:
		claims.Role = p.Role
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Parse validates signature and expiry and returns the embedded claims.
func (i *JWTIssuer) Parse(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Verify parses token and returns the caller identity it carries.
func (i *JWTIssuer) Verify(token string) (*domain.Identity, error) {
	claims, err := i.Parse(token)
	if err != nil {
		return nil, err
	}
	return claims.Identity(), nil
}
