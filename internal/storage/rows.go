package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spendlens/spendlens/internal/model"
)

// SaveRows persists imported rows for a dataset in one transaction. Cells
// are stored as a JSON object per row: the schema is open, so a column per
// field is not an option.
func (s *SQLiteStorage) SaveRows(ctx context.Context, datasetID int64, rows []model.Row) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(datasetID, "datasetID"); err != nil {
		return err
	}
	if err := validateRows(rows); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Callers may save in batches; positions continue where the last batch
	// stopped so imported order survives.
	var base int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM rows WHERE dataset_id = ?`, datasetID).Scan(&base); err != nil {
		return fmt.Errorf("failed to read row positions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rows (dataset_id, position, cells) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, row := range rows {
		cells, marshalErr := json.Marshal(row)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal row %d: %w", i, marshalErr)
		}
		if _, err := stmt.ExecContext(ctx, datasetID, base+i, string(cells)); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE datasets SET row_count = row_count + ? WHERE id = ?`, len(rows), datasetID); err != nil {
		return fmt.Errorf("failed to update row count: %w", err)
	}

	return tx.Commit()
}

// GetRows loads all rows of a dataset in their imported order.
func (s *SQLiteStorage) GetRows(ctx context.Context, datasetID int64) ([]model.Row, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(datasetID, "datasetID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT cells FROM rows WHERE dataset_id = ? ORDER BY position`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]model.Row, 0)
	for rows.Next() {
		var cells string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var row model.Row
		if err := json.Unmarshal([]byte(cells), &row); err != nil {
			return nil, fmt.Errorf("failed to unmarshal row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
