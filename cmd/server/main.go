// @title           User Directory API
// @version         1.0
// @description     Customer and admin accounts, login, OTP-based password recovery and role-gated directory routes.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userdir/user-service/internal/api"
	"github.com/userdir/user-service/internal/api/handler"
	"github.com/userdir/user-service/internal/core/ports"
	"github.com/userdir/user-service/internal/core/service"
	mongostore "github.com/userdir/user-service/internal/infrastructure/db/mongo"
	pgstore "github.com/userdir/user-service/internal/infrastructure/db/postgres"
	redisstore "github.com/userdir/user-service/internal/infrastructure/db/redis"
	"github.com/userdir/user-service/internal/infrastructure/notify"
	"github.com/userdir/user-service/internal/pkg/config"
	"github.com/userdir/user-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// store bundles the repositories of the selected driver with its readiness
// probe and cleanup hook.
type store struct {
	customers ports.CustomerRepository
	admins    ports.AdminRepository
	addresses ports.AddressRepository
	otps      ports.OTPRepository
	check     handler.DependencyCheck
	close     func(context.Context) error
}

func main() {
	// A missing .env is fine outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-service",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()
	log.Info().Str("driver", cfg.StoreDriver).Msg("store connected")

	readiness := []handler.DependencyCheck{st.check}

	var limiter ports.RateLimiter
	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.StoreTimeout,
		})
		if err != nil {
			return err
		}
		defer client.Close()

		limiter = redisstore.NewFixedWindowLimiter(client, "", cfg.OTP.ForgotLimit, cfg.OTP.ForgotWindow)
		readiness = append(readiness, handler.DependencyCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("forgot-password throttle enabled")
	} else {
		log.Info().Msg("redis not configured, forgot-password throttle disabled")
	}

	notifier, err := newNotifier(ctx, cfg.Notifier, log)
	if err != nil {
		return err
	}

	hasher := service.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := service.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService := service.NewAuthService(service.AuthDeps{
		Customers: st.customers,
		Admins:    st.admins,
		OTPs:      service.NewOTPManager(st.otps, cfg.OTP.TTL),
		Hasher:    hasher,
		Tokens:    tokens,
		Notifier:  notifier,
		Limiter:   limiter,
		Log:       log,
	})
	directoryService := service.NewDirectoryService(st.customers, st.addresses, st.admins, hasher, log)

	service.NewOTPReaper(st.otps, cfg.OTP.ReapInterval, cfg.OTP.Retention, log).Start(ctx)

	deps := api.RouterDeps{
		Auth:      authService,
		Directory: directoryService,
		Readiness: readiness,
		Log:       log,
	}
	if cfg.Auth.EdgeCheck {
		deps.Verifier = tokens
	}
	e := api.NewRouter(deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &store{
			customers: mongostore.NewCustomerRepository(db, cfg.StoreTimeout),
			admins:    mongostore.NewAdminRepository(db, cfg.StoreTimeout),
			addresses: mongostore.NewAddressRepository(db, cfg.StoreTimeout),
			otps:      mongostore.NewOTPRepository(db, cfg.StoreTimeout),
			check: handler.DependencyCheck{
				Name:  "mongodb",
				Check: func(ctx context.Context) error { return client.Ping(ctx, nil) },
			},
			close: client.Disconnect,
		}, nil

	case config.StorePostgres:
		db, err := pgstore.Connect(ctx, pgstore.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		if err := pgstore.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &store{
			customers: pgstore.NewCustomerRepository(db, cfg.StoreTimeout),
			admins:    pgstore.NewAdminRepository(db, cfg.StoreTimeout),
			addresses: pgstore.NewAddressRepository(db, cfg.StoreTimeout),
			otps:      pgstore.NewOTPRepository(db, cfg.StoreTimeout),
			check: handler.DependencyCheck{
				Name:  "postgres",
				Check: db.PingContext,
			},
			close: func(context.Context) error { return db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func newNotifier(ctx context.Context, cfg config.NotifierConfig, log zerolog.Logger) (ports.Notifier, error) {
	switch cfg.Provider {
	case config.NotifierHTTP:
		return notify.NewHTTPNotifier(cfg.ServiceURL, nil, cfg.Timeout), nil
	case config.NotifierSES:
		client, err := notify.NewSESClient(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return notify.NewSESNotifier(client, cfg.From, cfg.Timeout), nil
	case config.NotifierLog:
		return notify.NewLogNotifier(log), nil
	default:
		return nil, fmt.Errorf("unsupported notifier provider %q", cfg.Provider)
	}
}
