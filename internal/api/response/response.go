// Package response renders the JSON envelope shared by every endpoint:
//
//	{"status": bool, "data": object|null, "message": string}
package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userdir/user-service/internal/core/domain"
)

type Envelope struct {
	Status  bool   `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// Success writes a status=true envelope.
func Success(c echo.Context, code int, data any, message string) error {
	return c.JSON(code, Envelope{Status: true, Data: data, Message: message})
}

// Failure writes a status=false envelope with null data.
func Failure(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Status: false, Data: nil, Message: message})
}

// Error writes err using the status of its kind. Untagged errors are 500.
func Error(c echo.Context, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return Failure(c, StatusFor(de.Kind), de.Message)
	}
	return Failure(c, http.StatusInternalServerError, "An error occurred: "+err.Error())
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.ValidationError:
		return http.StatusBadRequest
	case domain.UnauthorizedError:
		return http.StatusUnauthorized
	case domain.ForbiddenError:
		return http.StatusForbidden
	case domain.NotFoundError:
		return http.StatusNotFound
	case domain.ConflictError:
		return http.StatusConflict
	case domain.RateLimitedError:
		return http.StatusTooManyRequests
	case domain.InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
