package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userdir/user-service/internal/api/metrics"
	"github.com/userdir/user-service/internal/api/response"
	"github.com/userdir/user-service/internal/core/domain"
)

// CustomerOwnsPath restricts Customer identities to the record named by the
// param path segment. Staff roles pass through. It must run after RoleGate,
// which attaches the identity.
func CustomerOwnsPath(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := domain.IdentityFromContext(c.Request().Context())
			if !ok {
				metrics.RoleGateDenialsTotal.WithLabelValues("no_identity").Inc()
				return response.Failure(c, http.StatusForbidden, domain.MsgNotAuthorized)
			}
			if id.Role == domain.RoleCustomer && id.PrincipalID != c.Param(param) {
				metrics.RoleGateDenialsTotal.WithLabelValues("owner").Inc()
				return response.Failure(c, http.StatusForbidden, domain.MsgNotAuthorized)
			}
			return next(c)
		}
	}
}
