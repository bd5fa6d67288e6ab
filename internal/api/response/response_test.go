package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/userdir/user-service/internal/core/domain"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return body
}

func TestStatusFor(t *testing.T) {
	cases := map[domain.ErrorKind]int{
		domain.ValidationError:   http.StatusBadRequest,
		domain.UnauthorizedError: http.StatusUnauthorized,
		domain.ForbiddenError:    http.StatusForbidden,
		domain.NotFoundError:     http.StatusNotFound,
		domain.ConflictError:     http.StatusConflict,
		domain.RateLimitedError:  http.StatusTooManyRequests,
		domain.InternalError:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := StatusFor(kind); got != want {
			t.Fatalf("StatusFor(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestError_DomainError(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	_ = Error(c, domain.Unauthorized(domain.MsgInvalidOTP))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != false || body["message"] != "Invalid OTP code" {
		t.Fatalf("unexpected body: %v", body)
	}
	if v, ok := body["data"]; !ok || v != nil {
		t.Fatalf("data must be present and null, got %v", body)
	}
}

func TestError_Untagged(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	_ = Error(c, errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := decode(t, rec)["message"]; msg != "An error occurred: boom" {
		t.Fatalf("unexpected message %v", msg)
	}
}

func TestSuccess(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	_ = Success(c, http.StatusCreated, map[string]string{"id": "1"}, "created")

	body := decode(t, rec)
	if rec.Code != http.StatusCreated || body["status"] != true || body["message"] != "created" {
		t.Fatalf("unexpected response %d %v", rec.Code, body)
	}
}
