package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/userdir/user-service/internal/core/domain"
)

func TestResult(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{domain.Unauthorized("x"), "unauthorized"},
		{domain.RateLimited("x"), "rate_limited"},
		{errors.New("plain"), "internal"},
	}
	for _, tc := range cases {
		if got := Result(tc.err); got != tc.want {
			t.Fatalf("Result(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestRegister_ExposesCountersOnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second register should be a no-op, got %v", err)
	}

	LoginsTotal.WithLabelValues("customer", ResultSuccess).Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "userdir_logins_total" {
			found = true
		}
	}
	if !found {
		t.Fatalf("userdir_logins_total missing from registry")
	}
}
