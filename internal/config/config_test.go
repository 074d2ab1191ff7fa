package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "dev", cfg.AppVersion)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "content.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 25, cfg.Storage.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.Storage.ConnMaxLifetime)
	assert.False(t, cfg.Cache.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Auth.JWTEnabled())
	assert.False(t, cfg.Auth.TokenIssuanceEnabled())
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, int64(1), cfg.DefaultAuthorID)
	assert.True(t, cfg.HTTP.RateLimitEnabled())
	assert.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodyBytes)
	assert.Equal(t, 20, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 100, cfg.Pagination.MaxLimit)
	assert.Equal(t, "@every 1m", cfg.StatsSchedule)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", " SQLite ")
	t.Setenv("SQLITE_PATH", "/tmp/c.db")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("AUTH_USERNAME", "admin")
	t.Setenv("AUTH_PASSWORD", "secret")
	t.Setenv("RATE_LIMIT_RPS", "0")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/c.db", cfg.Storage.SQLitePath)
	assert.True(t, cfg.Cache.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.True(t, cfg.Auth.TokenIssuanceEnabled())
	assert.False(t, cfg.HTTP.RateLimitEnabled())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mongo"}, "STORAGE_DRIVER must be one of"},
		{"postgres without url", map[string]string{"STORAGE_DRIVER": "postgres"}, "DATABASE_URL is required"},
		{"short jwt secret", map[string]string{"JWT_SECRET": "short"}, "JWT_SECRET must be at least 32"},
		{"username without password", map[string]string{"AUTH_USERNAME": "admin"}, "must be set together"},
		{"bad port", map[string]string{"PORT": "70000"}, "PORT must be between"},
		{"default above max", map[string]string{"PAGINATION_DEFAULT_LIMIT": "500"}, "cannot exceed"},
		{"bad schedule", map[string]string{"STATS_SCHEDULE": "every minute"}, "invalid cron schedule"},
		{"not a number", map[string]string{"PORT": "eighty"}, "read environment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_VERSION=from-dotenv\nLOG_LEVEL=debug\n"), 0o600))

	t.Chdir(dir)

	// real environment wins over .env
	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() { _ = os.Unsetenv("APP_VERSION") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.AppVersion)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidateCronSchedule(t *testing.T) {
	for _, s := range []string{"@every 1m", "@hourly", "*/5 * * * *", "30 5 * * 1-5"} {
		assert.NoError(t, ValidateCronSchedule(s), s)
	}
	for _, s := range []string{"", "   ", "61 * * * *", "* * *"} {
		assert.Error(t, ValidateCronSchedule(s), s)
	}
}
