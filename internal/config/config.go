// Package config loads the service configuration from the environment.
// A .env file in the working directory is read first when present;
// real environment variables always win over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// minJWTSecretLength is the shortest accepted HS256 secret (256 bits).
const minJWTSecretLength = 32

// Config is the complete service configuration.
type Config struct {
	Port       int    `env:"PORT" env-default:"8080"`
	AppVersion string `env:"APP_VERSION" env-default:"dev"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`

	Storage    StorageConfig
	Cache      CacheConfig
	Auth       AuthConfig
	HTTP       HTTPConfig
	Pagination PaginationConfig

	DefaultAuthorID int64  `env:"DEFAULT_AUTHOR_ID" env-default:"1"`
	SeedFile        string `env:"SEED_FILE"`
	StatsSchedule   string `env:"STATS_SCHEDULE" env-default:"@every 1m"`
}

// StorageConfig selects and tunes the content store.
type StorageConfig struct {
	Driver          string        `env:"STORAGE_DRIVER" env-default:"memory"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	SQLitePath      string        `env:"SQLITE_PATH" env-default:"content.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
}

// CacheConfig enables the Redis cache when Addr is set.
type CacheConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `env:"CACHE_TTL" env-default:"5m"`
}

// Enabled reports whether a Redis address is configured.
func (c CacheConfig) Enabled() bool { return c.Addr != "" }

// AuthConfig controls bearer verification and token issuance.
type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"1h"`
	Username  string        `env:"AUTH_USERNAME"`
	Password  string        `env:"AUTH_PASSWORD"`
	UserID    int64         `env:"AUTH_USER_ID" env-default:"1"`
}

// JWTEnabled reports whether bearer tokens must be signed JWTs.
func (a AuthConfig) JWTEnabled() bool { return a.JWTSecret != "" }

// TokenIssuanceEnabled reports whether POST /auth/token is served.
func (a AuthConfig) TokenIssuanceEnabled() bool {
	return a.JWTEnabled() && a.Username != "" && a.Password != ""
}

// HTTPConfig tunes the request pipeline.
type HTTPConfig struct {
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" env-default:"10"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" env-default:"20"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`
	MaxBodyBytes   int64         `env:"MAX_BODY_BYTES" env-default:"1048576"`
}

// RateLimitEnabled reports whether mutating routes are rate limited.
func (h HTTPConfig) RateLimitEnabled() bool {
	return h.RateLimitRPS > 0 && h.RateLimitBurst > 0
}

// PaginationConfig bounds list paging.
type PaginationConfig struct {
	DefaultLimit int `env:"PAGINATION_DEFAULT_LIMIT" env-default:"20"`
	MaxLimit     int `env:"PAGINATION_MAX_LIMIT" env-default:"100"`
}

// Load reads .env (if present) and the environment, then validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from process environment variables only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres"))
		}
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required when STORAGE_DRIVER=sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be one of memory, postgres, sqlite, got %q", c.Storage.Driver))
	}
	if c.Storage.MaxOpenConns < 1 {
		errs = append(errs, errors.New("DB_MAX_OPEN_CONNS must be positive"))
	}
	if c.Storage.MaxIdleConns < 0 {
		errs = append(errs, errors.New("DB_MAX_IDLE_CONNS cannot be negative"))
	}

	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < minJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if (c.Auth.Username == "") != (c.Auth.Password == "") {
		errs = append(errs, errors.New("AUTH_USERNAME and AUTH_PASSWORD must be set together"))
	}
	if c.Auth.UserID < 1 {
		errs = append(errs, errors.New("AUTH_USER_ID must be positive"))
	}
	if c.DefaultAuthorID < 0 {
		errs = append(errs, errors.New("DEFAULT_AUTHOR_ID cannot be negative"))
	}

	if c.HTTP.RateLimitRPS < 0 || c.HTTP.RateLimitBurst < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST cannot be negative"))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}

	if c.Pagination.DefaultLimit < 1 || c.Pagination.MaxLimit < 1 {
		errs = append(errs, errors.New("pagination limits must be positive"))
	} else if c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		errs = append(errs, errors.New("PAGINATION_DEFAULT_LIMIT cannot exceed PAGINATION_MAX_LIMIT"))
	}

	if err := ValidateCronSchedule(c.StatsSchedule); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ValidateCronSchedule accepts standard five-field expressions and descriptors
// such as "@every 1m" or "@hourly".
func ValidateCronSchedule(schedule string) error {
	if strings.TrimSpace(schedule) == "" {
		return errors.New("invalid cron schedule: cannot be empty")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}
