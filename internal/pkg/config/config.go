package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"

	NotifierHTTP = "http"
	NotifierSES  = "ses"
	NotifierLog  = "log"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	StoreDriver  string        `env:"STORE_DRIVER,  default=mongo"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT, default=5s"`

	Auth     AuthConfig
	OTP      OTPConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Notifier NotifierConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"JWT_EXPIRES_IN,     default=15m"`
	EdgeCheck bool          `env:"EDGE_VERIFY_TOKENS, default=false"`
}

type OTPConfig struct {
	TTL          time.Duration `env:"OTP_TTL,                default=15m"`
	ReapInterval time.Duration `env:"OTP_REAP_INTERVAL,      default=1h"`
	Retention    time.Duration `env:"OTP_RETENTION,          default=24h"`
	ForgotLimit  int           `env:"FORGOT_PASSWORD_LIMIT,  default=5"`
	ForgotWindow time.Duration `env:"FORGOT_PASSWORD_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_directory"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN"`
}

// RedisConfig is optional. An empty address disables the throttle.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type NotifierConfig struct {
	Provider   string        `env:"NOTIFIER_PROVIDER, default=http"`
	ServiceURL string        `env:"EMAIL_SERVICE_URL, default=http://localhost:5001"`
	From       string        `env:"EMAIL_FROM,        default=no-reply@localhost"`
	AWSRegion  string        `env:"AWS_REGION,        default=us-east-1"`
	Timeout    time.Duration `env:"NOTIFY_TIMEOUT,    default=5s"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case StoreMongo:
	case StorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.Notifier.Provider {
	case NotifierHTTP, NotifierSES, NotifierLog:
	default:
		return fmt.Errorf("unknown NOTIFIER_PROVIDER %q", c.Notifier.Provider)
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), nil)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom processes the given lookuper, or the OS environment when it is nil.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	c := &envconfig.Config{Target: &cfg}
	if l != nil {
		c.Lookuper = l
	}
	if err := envconfig.ProcessWith(ctx, c); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
