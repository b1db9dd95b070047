package store

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	version uint16
	name    string
	script  string
}

var migrations = []migration{
	{
		version: 1,
		name:    "frame table",
		script: `
	CREATE TABLE IF NOT EXISTS frame (
		id TEXT PRIMARY KEY,
		data_url TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)
		`,
	},
	{
		version: 2,
		name:    "frame names",
		script: `
	ALTER TABLE frame ADD COLUMN name TEXT NOT NULL DEFAULT '';
		`,
	},
}

func applyMigrations(ctx context.Context, db *sql.DB) error {
	const versionsTable = `
	CREATE TABLE IF NOT EXISTS migration (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
	`
	if _, err := db.ExecContext(ctx, versionsTable); err != nil {
		return fmt.Errorf("store: create migration table: %w", err)
	}

	var current uint16
	row := db.QueryRowContext(ctx, "SELECT coalesce(max(version), 0) FROM migration")
	if err := row.Scan(&current); err != nil {
		return fmt.Errorf("store: read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: migration %d: %w", m.version, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.ExecContext(ctx, m.script); err != nil {
		return fmt.Errorf("store: migration %d (%s): %w", m.version, m.name, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO migration (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
		return fmt.Errorf("store: migration %d: %w", m.version, err)
	}
	return tx.Commit()
}
