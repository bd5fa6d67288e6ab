package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userdir/user-service/internal/api/response"
	"github.com/userdir/user-service/internal/core/domain"
	"github.com/userdir/user-service/internal/core/ports"
)

// Authenticate verifies the bearer token and attaches the caller identity to
// the request context for RoleGate. Requests without a bearer token pass
// through untouched so the forwarded user header still applies.
func Authenticate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return response.Failure(c, http.StatusUnauthorized, "Invalid authorization header")
			}

			id, err := verifier.Verify(parts[1])
			if err != nil {
				return response.Failure(c, http.StatusUnauthorized, "Invalid token")
			}

			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), id)))
			return next(c)
		}
	}
}
