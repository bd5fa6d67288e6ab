package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userdir/user-service/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/customers/login", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if jerr := json.Unmarshal(rec.Body.Bytes(), &body); jerr != nil {
		t.Fatalf("invalid json: %v", jerr)
	}
	return rec, body
}

func TestErrorHandler_DomainKinds(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.Validation(domain.MsgMissingFields), http.StatusBadRequest, "Missing required fields"},
		{domain.Unauthorized(domain.MsgInvalidPassword), http.StatusUnauthorized, "Invalid password"},
		{domain.Forbidden(domain.MsgNotAuthorized), http.StatusForbidden, "Not authorized to access this route"},
		{domain.NotFound("Customer not found"), http.StatusNotFound, "Customer not found"},
		{domain.Conflict(domain.MsgEmailTaken), http.StatusConflict, "Email already registered"},
		{domain.RateLimited(domain.MsgTooManyOTPRequests), http.StatusTooManyRequests, "Too many OTP requests"},
		{domain.InternalMessage(domain.MsgOTPSendFailed, errors.New("smtp")), http.StatusInternalServerError, "Failed to send OTP"},
		{domain.Internal(errors.New("db down")), http.StatusInternalServerError, "An error occurred: db down"},
	}

	for _, tc := range cases {
		rec, body := runErrorHandler(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if body["status"] != false || body["message"] != tc.msg {
			t.Fatalf("%v: unexpected body %v", tc.err, body)
		}
		if v, ok := body["data"]; !ok || v != nil {
			t.Fatalf("%v: data must be null, got %v", tc.err, body)
		}
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := runErrorHandler(t, echo.ErrNotFound)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body["message"] != "Not Found" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestErrorHandler_UntaggedError(t *testing.T) {
	rec, body := runErrorHandler(t, errors.New("unexpected"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["message"] != "An error occurred: unexpected" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}
