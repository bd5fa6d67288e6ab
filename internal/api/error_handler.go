package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userdir/user-service/internal/api/response"
	"github.com/userdir/user-service/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps tagged domain errors to the status of their kind.
//   - Passes echo's own errors (unknown route, bad method) through with their code.
//   - Logs internal failures with request context.
//   - Renders the shared envelope with null data.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("request failed")
		}

		_ = response.Failure(c, code, msg)
	}
}

func resolveError(err error) (int, string) {
	var de *domain.Error
	if errors.As(err, &de) {
		return response.StatusFor(de.Kind), de.Message
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil && he.Code >= http.StatusInternalServerError {
			return he.Code, "An error occurred: " + he.Internal.Error()
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	return http.StatusInternalServerError, "An error occurred: " + err.Error()
}
