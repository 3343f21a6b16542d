package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port          string        `env:"PORT,           default=8080"`
	Env           string        `env:"ENV,            default=development"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=24h"`
	CookieSecure  bool          `env:"COOKIE_SECURE,  default=false"`
	DemoData      bool          `env:"DEMO_DATA,      default=false"`

	Store         StoreConfig
	Mongo         MongoConfig
	SQL           SQLConfig
	Redis         RedisConfig
	Notifications NotificationConfig
	RateLimit     RateLimitConfig
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=mongo"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=apartment_system"`
}

type SQLConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN"`
	SQLitePath  string `env:"SQLITE_PATH, default=apartment.db"`
}

type RedisConfig struct {
	Addr      string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password  string        `env:"REDIS_PASSWORD"`
	DB        int           `env:"REDIS_DB,        default=0"`
	Namespace string        `env:"REDIS_NAMESPACE, default=societyhub"`
	DedupTTL  time.Duration `env:"APPROVAL_DEDUP_TTL, default=10m"`
}

type NotificationConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
}

type RateLimitConfig struct {
	LoginPerSecond float64 `env:"LOGIN_RATE_PER_SEC, default=1"`
	LoginBurst     int     `env:"LOGIN_BURST,        default=5"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("config: SESSION_SECRET is required in production")
		}
		c.SessionSecret = "development-secret"
	}
	switch c.Store.Driver {
	case DriverMongo, DriverSQLite:
	case DriverPostgres:
		if c.SQL.PostgresDSN == "" {
			return fmt.Errorf("config: POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.RateLimit.LoginPerSecond <= 0 || c.RateLimit.LoginBurst <= 0 {
		return fmt.Errorf("config: login rate limit must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
