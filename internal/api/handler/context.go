package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/userdir/user-service/internal/core/domain"
)

// bindAndValidate decodes the request body into req and runs the registered
// validator. Malformed JSON is a validation failure.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Validation(domain.MsgInvalidPayload)
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

// requestContext returns the context of the in-flight request. Services apply
// their own store and dispatch timeouts on top of it.
func requestContext(c echo.Context) context.Context {
	return c.Request().Context()
}
