// Package db opens SQL connection pools and manages the content schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"content-service/internal/resilience/retry"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver names a supported SQL backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// sqlDriverName maps a Driver to the database/sql driver registered by its import.
func (d Driver) sqlDriverName() (string, error) {
	switch d {
	case DriverPostgres:
		return "pgx", nil
	case DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported driver %q", string(d))
	}
}

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,               // Maximum number of open connections
		MaxIdleConns:    10,               // Maximum number of idle connections
		ConnMaxLifetime: 30 * time.Minute, // Maximum lifetime of a connection
		ConnMaxIdleTime: 10 * time.Minute, // Maximum idle time of a connection
	}
}

// Open creates a connection pool for driver, applies pool settings and waits
// until the database answers a ping, retrying with backoff.
// SQLite is limited to a single connection because writers serialize anyway
// and an in-memory database exists per connection.
func Open(ctx context.Context, driver Driver, dsn string, cfg ConnectionConfig) (*sql.DB, error) {
	name, err := driver.sqlDriverName()
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, fmt.Errorf("open %s: empty data source name", driver)
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("driver", string(driver)),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	err = retry.WithBackoff(ctx, retry.DBStartupConfig(), func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	slog.Info("database connection established successfully", slog.String("driver", string(driver)))
	return db, nil
}
