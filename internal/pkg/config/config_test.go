package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.StoreDriver != StoreMongo {
		t.Fatalf("unexpected defaults: port=%s store=%s", cfg.Port, cfg.StoreDriver)
	}
	if cfg.OTP.TTL != 15*time.Minute || cfg.Auth.TokenTTL != 15*time.Minute {
		t.Fatalf("unexpected ttls: otp=%v token=%v", cfg.OTP.TTL, cfg.Auth.TokenTTL)
	}
	if cfg.StoreTimeout != 5*time.Second || cfg.Notifier.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeouts: store=%v notify=%v", cfg.StoreTimeout, cfg.Notifier.Timeout)
	}
	if cfg.OTP.ForgotLimit != 5 || cfg.Redis.Addr != "" {
		t.Fatalf("unexpected throttle defaults: %+v %+v", cfg.OTP, cfg.Redis)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "secret",
		"STORE_DRIVER":       "postgres",
		"POSTGRES_DSN":       "postgres://localhost/users",
		"NOTIFIER_PROVIDER":  "ses",
		"EDGE_VERIFY_TOKENS": "true",
		"OTP_TTL":            "5m",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != StorePostgres || cfg.Notifier.Provider != NotifierSES {
		t.Fatalf("unexpected drivers: %s %s", cfg.StoreDriver, cfg.Notifier.Provider)
	}
	if !cfg.Auth.EdgeCheck || cfg.OTP.TTL != 5*time.Minute {
		t.Fatalf("overrides not applied: %+v", cfg.Auth)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":   {},
		"unknown store":    {"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"},
		"postgres w/o dsn": {"JWT_SECRET": "s", "STORE_DRIVER": "postgres"},
		"unknown notifier": {"JWT_SECRET": "s", "NOTIFIER_PROVIDER": "pigeon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
