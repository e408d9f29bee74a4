package storage

import (
	"context"
	"fmt"

	"github.com/spendlens/spendlens/internal/model"
)

// SaveMapping replaces the field mapping for a dataset.
func (s *SQLiteStorage) SaveMapping(ctx context.Context, datasetID int64, mapping model.FieldMapping) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(datasetID, "datasetID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM field_mappings WHERE dataset_id = ?`, datasetID); err != nil {
		return fmt.Errorf("failed to clear mapping: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO field_mappings (dataset_id, field, column_key) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for field, column := range mapping {
		if column == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, datasetID, field, column); err != nil {
			return fmt.Errorf("failed to insert mapping %s: %w", field, err)
		}
	}

	return tx.Commit()
}

// GetMapping loads the stored field mapping for a dataset. A dataset
// without a stored mapping yields an empty mapping, which downstream code
// treats as "auto-detect everything".
func (s *SQLiteStorage) GetMapping(ctx context.Context, datasetID int64) (model.FieldMapping, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(datasetID, "datasetID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT field, column_key FROM field_mappings WHERE dataset_id = ?`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mapping: %w", err)
	}
	defer func() { _ = rows.Close() }()

	mapping := make(model.FieldMapping)
	for rows.Next() {
		var field, column string
		if err := rows.Scan(&field, &column); err != nil {
			return nil, fmt.Errorf("failed to scan mapping: %w", err)
		}
		mapping[field] = column
	}
	return mapping, rows.Err()
}
