package domain

import "context"

// Identity is the already-validated caller attached to a request by the edge.
type Identity struct {
	PrincipalID string `json:"userId"`
	DisplayName string `json:"userName"`
	Email       string `json:"email"`
	Role        string `json:"userRole"`
}

type identityContextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext returns the identity attached by WithIdentity, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*Identity)
	return id, ok && id != nil
}
