package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userdir/user-service/internal/api/metrics"
	"github.com/userdir/user-service/internal/api/response"
	"github.com/userdir/user-service/internal/core/domain"
)

// UserHeader carries the identity forwarded by the upstream gateway as
// {"user":{"userId","userName","email","userRole"}}.
const UserHeader = "user"

type forwardedUser struct {
	User *domain.Identity `json:"user"`
}

// RoleGate admits requests whose identity holds one of allowedRoles.
// The identity comes from the request context, or from the user header when
// the context has none. A header that is not valid JSON is rejected with 400.
func RoleGate(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := domain.IdentityFromContext(c.Request().Context())
			if !ok {
				if raw := c.Request().Header.Get(UserHeader); raw != "" {
					var fu forwardedUser
					if err := json.Unmarshal([]byte(raw), &fu); err != nil {
						metrics.RoleGateDenialsTotal.WithLabelValues("bad_header").Inc()
						return response.Failure(c, http.StatusBadRequest, domain.MsgInvalidUserHeader)
					}
					if fu.User != nil {
						id, ok = fu.User, true
						req := c.Request()
						c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), id)))
					}
				}
			}

			if !ok {
				metrics.RoleGateDenialsTotal.WithLabelValues("no_identity").Inc()
				return response.Failure(c, http.StatusForbidden, domain.MsgNotAuthorized)
			}
			if _, permitted := allowed[id.Role]; !permitted {
				metrics.RoleGateDenialsTotal.WithLabelValues("role").Inc()
				return response.Failure(c, http.StatusForbidden, domain.MsgNotAuthorized)
			}
			return next(c)
		}
	}
}
