package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	LogPretty bool          `env:"LOG_PRETTY, default=false"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Security SecurityConfig
	Activity ActivityConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=adsc_reports"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// AdminConfig seeds the bootstrap administrator.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, default=admin"`
	Password string `env:"ADMIN_PASSWORD, default=admin123"`
	Email    string `env:"ADMIN_EMAIL"`
}

type SecurityConfig struct {
	LockoutAttempts int           `env:"LOCKOUT_ATTEMPTS, default=5"`
	LockoutWindow   time.Duration `env:"LOCKOUT_WINDOW,   default=15m"`
	LockoutDuration time.Duration `env:"LOCKOUT_DURATION, default=30m"`

	LoginRateLimit     int           `env:"LOGIN_RATE_LIMIT,     default=5"`
	LoginRateWindow    time.Duration `env:"LOGIN_RATE_WINDOW,    default=15m"`
	RegisterRateLimit  int           `env:"REGISTER_RATE_LIMIT,  default=3"`
	RegisterRateWindow time.Duration `env:"REGISTER_RATE_WINDOW, default=1h"`

	PermissionCacheTTL time.Duration `env:"PERMISSION_CACHE_TTL, default=5m"`
}

type ActivityConfig struct {
	Workers int `env:"ACTIVITY_WORKERS, default=4"`
}

// IsProduction reports whether ENV selects production behaviour.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(cfg.JWTSecret) < 16 && cfg.IsProduction() {
		return nil, fmt.Errorf("config: JWT_SECRET must be at least 16 characters in production")
	}
	return &cfg, nil
}
