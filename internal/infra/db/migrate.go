package db

import (
	"context"
	"database/sql"
	"fmt"
)

const createContentItemsPostgres = `
CREATE TABLE IF NOT EXISTS content_items (
    id               BIGSERIAL PRIMARY KEY,
    title            TEXT NOT NULL CHECK (length(btrim(title)) > 0),
    content          TEXT NOT NULL CHECK (length(btrim(content)) > 0),
    author_id        BIGINT NOT NULL DEFAULT 1,
    publication_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    tags             TEXT[] NOT NULL DEFAULT '{}'
)`

// AUTOINCREMENT keeps SQLite from reusing the id of a deleted max row.
const createContentItemsSQLite = `
CREATE TABLE IF NOT EXISTS content_items (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    title            TEXT NOT NULL CHECK (length(trim(title)) > 0),
    content          TEXT NOT NULL CHECK (length(trim(content)) > 0),
    author_id        INTEGER NOT NULL DEFAULT 1,
    publication_date TEXT NOT NULL,
    tags             TEXT NOT NULL DEFAULT '[]'
)`

// MigrateUp creates the content schema for driver. It is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB, driver Driver) error {
	switch driver {
	case DriverPostgres:
		return migratePostgres(ctx, db)
	case DriverSQLite:
		return migrateSQLite(ctx, db)
	default:
		return fmt.Errorf("migrate: unsupported driver %q", string(driver))
	}
}

func migratePostgres(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createContentItemsPostgres); err != nil {
		return err
	}

	indexes := []string{
		// tag filter: $1 = ANY(tags)
		`CREATE INDEX IF NOT EXISTS idx_content_items_tags ON content_items USING gin(tags)`,
		`CREATE INDEX IF NOT EXISTS idx_content_items_author_id ON content_items(author_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up ILIKE search; it needs elevated privileges, so failures are ignored.
	_, _ = db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_content_items_title_gin ON content_items USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_content_items_content_gin ON content_items USING gin(content gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		_, _ = db.ExecContext(ctx, idx)
	}
	return nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		createContentItemsSQLite,
		`CREATE INDEX IF NOT EXISTS idx_content_items_author_id ON content_items(author_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown drops the content schema.
// Use with caution: this deletes all stored content.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS content_items`)
	return err
}
