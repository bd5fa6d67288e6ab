package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/userdir/user-service/internal/api/handler"
	"github.com/userdir/user-service/internal/core/domain"
	"github.com/userdir/user-service/internal/core/ports"
	"github.com/userdir/user-service/internal/core/service"
)

type routerAuth struct{ calls int }

func (a *routerAuth) Login(context.Context, domain.PrincipalKind, string, string) (string, error) {
	a.calls++
	return "tok", nil
}

func (a *routerAuth) ForgotPassword(context.Context, domain.PrincipalKind, string) error {
	a.calls++
	return nil
}

func (a *routerAuth) VerifyOTP(_ context.Context, kind domain.PrincipalKind, _, code string) (*domain.OneTimePasscode, error) {
	a.calls++
	return &domain.OneTimePasscode{ID: "o1", Code: code, OwnerKind: kind}, nil
}

func (a *routerAuth) ResetPassword(context.Context, domain.PrincipalKind, string, string) error {
	a.calls++
	return nil
}

type routerDirectory struct{ calls int }

func (d *routerDirectory) CreateCustomer(_ context.Context, in ports.CreateCustomerInput) (*domain.Customer, error) {
	d.calls++
	return &domain.Customer{ID: "c1", Name: in.Name, Email: in.Email}, nil
}

func (d *routerDirectory) ListCustomers(context.Context) ([]*domain.Customer, error) {
	d.calls++
	return []*domain.Customer{}, nil
}

func (d *routerDirectory) GetCustomer(_ context.Context, id string) (*domain.Customer, error) {
	d.calls++
	return &domain.Customer{ID: id}, nil
}

func (d *routerDirectory) UpdateCustomer(_ context.Context, id string, _ ports.UpdateCustomerInput) (*domain.Customer, error) {
	d.calls++
	return &domain.Customer{ID: id}, nil
}

func (d *routerDirectory) ListAddresses(context.Context, string) ([]*domain.Address, error) {
	d.calls++
	return []*domain.Address{}, nil
}

func (d *routerDirectory) CreateAddress(_ context.Context, customerID string, _ ports.CreateAddressInput) (*domain.Address, error) {
	d.calls++
	return &domain.Address{CustomerID: customerID}, nil
}

func (d *routerDirectory) CreateAdmin(_ context.Context, role string, _ ports.CreateAdminInput) (*domain.Admin, error) {
	d.calls++
	return &domain.Admin{Role: role}, nil
}

func (d *routerDirectory) ListAdmins(context.Context, string) ([]*domain.Admin, error) {
	d.calls++
	return []*domain.Admin{}, nil
}

func (d *routerDirectory) GetAdmin(_ context.Context, role, id string) (*domain.Admin, error) {
	d.calls++
	return &domain.Admin{ID: id, Role: role}, nil
}

func (d *routerDirectory) UpdateAdmin(_ context.Context, role, id string, _ ports.UpdateAdminInput) (*domain.Admin, error) {
	d.calls++
	return &domain.Admin{ID: id, Role: role}, nil
}

func newTestRouter(verifier ports.TokenVerifier) (*echo.Echo, *routerAuth, *routerDirectory) {
	auth := &routerAuth{}
	dir := &routerDirectory{}
	e := NewRouter(RouterDeps{
		Auth:      auth,
		Directory: dir,
		Verifier:  verifier,
		Readiness: []handler.DependencyCheck{{Name: "store", Check: func(context.Context) error { return nil }}},
		Log:       zerolog.Nop(),
		Registry:  prometheus.NewRegistry(),
	})
	return e, auth, dir
}

func do(e *echo.Echo, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func userHeader(role string) map[string]string {
	return map[string]string{"user": `{"user":{"userId":"u1","userName":"U","email":"u@example.com","userRole":"` + role + `"}}`}
}

func TestRouter_AuthRoutesArePublic(t *testing.T) {
	e, auth, _ := newTestRouter(nil)

	routes := []struct{ path, body string }{
		{"/auth/customers/login", `{"email":"a@b.c","password":"p"}`},
		{"/auth/customers/forgot-password", `{"email":"a@b.c"}`},
		{"/auth/customers/reset-password", `{"email":"a@b.c","password":"p"}`},
		{"/auth/verify-otp", `{"email":"a@b.c","otpCode":"1234"}`},
		{"/auth/admin/login", `{"email":"a@b.c","password":"p"}`},
		{"/auth/admin/forgot-password", `{"email":"a@b.c"}`},
		{"/auth/admin/verify-otp", `{"email":"a@b.c","otpCode":"1234"}`},
		{"/auth/admin/reset-password", `{"email":"a@b.c","password":"p"}`},
	}
	for _, r := range routes {
		rec, resp := do(e, http.MethodPost, r.path, r.body, nil)
		if rec.Code != http.StatusOK || resp["status"] != true {
			t.Fatalf("%s: expected 200, got %d %v", r.path, rec.Code, resp)
		}
	}
	if auth.calls != len(routes) {
		t.Fatalf("expected %d service calls, got %d", len(routes), auth.calls)
	}
}

func TestRouter_RegistrationIsPublic(t *testing.T) {
	e, _, dir := newTestRouter(nil)
	body := `{"customerName":"John","email":"john@example.com","password":"secret","phoneNumber":"555"}`

	for _, path := range []string{"/customers", "/auth/customers/register"} {
		rec, resp := do(e, http.MethodPost, path, body, nil)
		if rec.Code != http.StatusCreated || resp["message"] != "Customer created successfully" {
			t.Fatalf("%s: unexpected %d %v", path, rec.Code, resp)
		}
	}
	if dir.calls != 2 {
		t.Fatalf("expected 2 creates, got %d", dir.calls)
	}
}

func TestRouter_RoleGating(t *testing.T) {
	cases := []struct {
		method, path, role string
		code               int
	}{
		{http.MethodGet, "/customers", domain.RoleCustomer, http.StatusForbidden},
		{http.MethodGet, "/customers", domain.RoleAdmin, http.StatusOK},
		{http.MethodGet, "/customers", domain.RoleSuperAdmin, http.StatusOK},
		{http.MethodGet, "/customers/u1", domain.RoleCustomer, http.StatusOK},
		{http.MethodGet, "/customers/u1/address", domain.RoleCustomer, http.StatusOK},
		{http.MethodGet, "/customers/c1", domain.RoleCustomer, http.StatusForbidden},
		{http.MethodPatch, "/customers/c1", domain.RoleCustomer, http.StatusForbidden},
		{http.MethodGet, "/customers/c1/address", domain.RoleCustomer, http.StatusForbidden},
		{http.MethodPost, "/customers/c1/address", domain.RoleCustomer, http.StatusForbidden},
		{http.MethodGet, "/customers/c1", domain.RoleAdmin, http.StatusOK},
		{http.MethodGet, "/customers/c1/address", domain.RoleSuperAdmin, http.StatusOK},
		{http.MethodGet, "/admin", domain.RoleAdmin, http.StatusForbidden},
		{http.MethodGet, "/admin", domain.RoleSuperAdmin, http.StatusOK},
		{http.MethodGet, "/super-admin/s1", domain.RoleCustomer, http.StatusForbidden},
		{http.MethodGet, "/super-admin/s1", domain.RoleSuperAdmin, http.StatusOK},
	}

	for _, tc := range cases {
		e, _, dir := newTestRouter(nil)
		rec, resp := do(e, tc.method, tc.path, "", userHeader(tc.role))
		if rec.Code != tc.code {
			t.Fatalf("%s %s as %s: expected %d, got %d", tc.method, tc.path, tc.role, tc.code, rec.Code)
		}
		if tc.code == http.StatusForbidden {
			if dir.calls != 0 {
				t.Fatalf("%s %s as %s: handler must not run", tc.method, tc.path, tc.role)
			}
			if resp["message"] != "Not authorized to access this route" {
				t.Fatalf("unexpected message %v", resp["message"])
			}
		}
	}
}

func TestRouter_NoIdentityIsForbidden(t *testing.T) {
	e, _, _ := newTestRouter(nil)

	rec, _ := do(e, http.MethodGet, "/customers", "", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	rec, resp := do(e, http.MethodGet, "/customers", "", map[string]string{"user": "garbage"})
	if rec.Code != http.StatusBadRequest || resp["message"] != "Invalid user header format" {
		t.Fatalf("expected 400 for malformed header, got %d %v", rec.Code, resp)
	}
}

func TestRouter_BearerTokenWithVerifier(t *testing.T) {
	issuer := service.NewJWTIssuer("secret", time.Minute)
	e, _, _ := newTestRouter(issuer)

	tok, err := issuer.Issue(&domain.Principal{Kind: domain.KindAdmin, ID: "a1", Role: domain.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, _ := do(e, http.MethodGet, "/admin", "", map[string]string{"Authorization": "Bearer " + tok})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec, _ = do(e, http.MethodGet, "/admin", "", map[string]string{"Authorization": "Bearer bogus"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_UnknownRouteUsesEnvelope(t *testing.T) {
	e, _, _ := newTestRouter(nil)

	rec, resp := do(e, http.MethodGet, "/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if resp["status"] != false {
		t.Fatalf("expected envelope, got %v", resp)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e, _, _ := newTestRouter(nil)

	for _, path := range []string{"/health", "/health/ready"} {
		rec, resp := do(e, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK || resp["status"] != true {
			t.Fatalf("%s: expected 200 envelope, got %d %v", path, rec.Code, resp)
		}
	}

	do(e, http.MethodPost, "/auth/customers/login", `{"email":"a@b.c","password":"p"}`, nil)

	rec, _ := do(e, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "userdir_logins_total") {
		t.Fatalf("auth counters missing from /metrics")
	}
}
