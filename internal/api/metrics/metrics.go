// Package metrics defines and registers all custom Prometheus metrics for the
// user directory service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Collectors are built unregistered. Register attaches them to the registry
// that also backs /metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/userdir/user-service/internal/core/domain"
)

const namespace = "userdir"

// factory creates collectors without registering them.
var factory = promauto.With(nil)

// ResultSuccess is the result label for a call that returned no error.
const ResultSuccess = "success"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - kind: "customer" or "admin"
//   - result: "success" or the error kind (e.g. "unauthorized", "not_found")
var LoginsTotal = factory.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by principal kind and result.",
	},
	[]string{"kind", "result"},
)

// OTPRequestsTotal counts forgot-password requests.
// A "internal" result includes failed OTP dispatches.
var OTPRequestsTotal = factory.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_requests_total",
		Help:      "Total number of forgot-password requests, by principal kind and result.",
	},
	[]string{"kind", "result"},
)

// OTPVerificationsTotal counts OTP verification attempts.
var OTPVerificationsTotal = factory.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of OTP verification attempts, by principal kind and result.",
	},
	[]string{"kind", "result"},
)

// PasswordResetsTotal counts password reset attempts.
var PasswordResetsTotal = factory.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset attempts, by principal kind and result.",
	},
	[]string{"kind", "result"},
)

// ── Access metrics ────────────────────────────────────────────────────────────

// RoleGateDenialsTotal counts requests rejected by the role gate or the
// customer ownership check.
// Label:
//   - reason: "bad_header", "no_identity", "role" or "owner"
var RoleGateDenialsTotal = factory.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_gate_denials_total",
		Help:      "Total number of requests denied by the role gate.",
	},
	[]string{"reason"},
)

// Register adds every collector to reg. Collectors already present in reg are
// skipped, so routers sharing a registry can each call it.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		LoginsTotal,
		OTPRequestsTotal,
		OTPVerificationsTotal,
		PasswordResetsTotal,
		RoleGateDenialsTotal,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// Result converts a service error into a result label.
func Result(err error) string {
	if err == nil {
		return ResultSuccess
	}
	return domain.KindOf(err).String()
}
