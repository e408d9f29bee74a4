package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS datasets (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL,
					source_file TEXT,
					row_count INTEGER NOT NULL DEFAULT 0,
					imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS rows (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					dataset_id INTEGER NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
					position INTEGER NOT NULL,
					cells TEXT NOT NULL
				)`,
				`CREATE INDEX idx_rows_dataset ON rows(dataset_id)`,

				`CREATE TABLE IF NOT EXISTS field_mappings (
					dataset_id INTEGER NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
					field TEXT NOT NULL,
					column_key TEXT NOT NULL,
					PRIMARY KEY (dataset_id, field)
				)`,

				`CREATE TABLE IF NOT EXISTS vendor_clusters (
					dataset_id INTEGER NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
					master_name TEXT NOT NULL,
					variants TEXT NOT NULL,
					total_spend REAL NOT NULL DEFAULT 0,
					transaction_count INTEGER NOT NULL DEFAULT 0,
					contract_status TEXT NOT NULL DEFAULT 'NONE',
					PRIMARY KEY (dataset_id, master_name)
				)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("failed to execute %q: %w", q[:40], err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Analysis snapshots",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS analysis_snapshots (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					dataset_id INTEGER NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
					view_model TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_snapshots_dataset ON analysis_snapshots(dataset_id, created_at)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("failed to execute %q: %w", q[:40], err)
				}
			}
			return nil
		},
	},
}

// SchemaVersion returns the database's current schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= version {
			continue
		}

		slog.Info("Applying migration", "version", m.Version, "description", m.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
