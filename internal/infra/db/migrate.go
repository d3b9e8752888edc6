package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id         UUID PRIMARY KEY,
    email      TEXT NOT NULL,
    full_name  TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS notes (
    id         UUID PRIMARY KEY,
    user_id    UUID NOT NULL,
    title      VARCHAR(200) NOT NULL,
    content    TEXT NOT NULL DEFAULT '',
    pinned     BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT chk_notes_content_length CHECK (char_length(content) <= 2000)
)`,
	// owner listing, pinned first then most recent
	`CREATE INDEX IF NOT EXISTS idx_notes_user_listing ON notes(user_id, pinned DESC, updated_at DESC)`,
}

// searchIndexes speed up ILIKE search; they need pg_trgm and are skipped when it is unavailable.
var searchIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_notes_title_gin ON notes USING gin(title gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_content_gin ON notes USING gin(content gin_trgm_ops)`,
}

// MigrateUp creates the users and notes tables and their indexes. It is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}

	// pg_trgm may be missing or require superuser; search still works without it
	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS pg_trgm`); err != nil {
		slog.Warn("pg_trgm unavailable, note search runs without trigram indexes", slog.Any("error", err))
		return nil
	}
	for _, idx := range searchIndexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			slog.Warn("skipping search index", slog.String("statement", idx), slog.Any("error", err))
		}
	}
	return nil
}

// MigrateDown drops the notes and users tables. All data in them is lost.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS notes CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateDown: %w", err)
		}
	}
	return nil
}
