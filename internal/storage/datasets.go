package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spendlens/spendlens/internal/common"
	"github.com/spendlens/spendlens/internal/model"
)

// CreateDataset registers a new imported dataset by name.
func (s *SQLiteStorage) CreateDataset(ctx context.Context, name, sourceFile string) (*model.Dataset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO datasets (name, source_file) VALUES (?, ?)`, name, sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset id: %w", err)
	}

	return s.getDatasetByID(ctx, id)
}

// GetDataset looks a dataset up by name.
func (s *SQLiteStorage) GetDataset(ctx context.Context, name string) (*model.Dataset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var d model.Dataset
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, source_file, row_count, imported_at FROM datasets WHERE name = ?`, name).
		Scan(&d.ID, &d.Name, &d.SourceFile, &d.RowCount, &d.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dataset %q: %w", name, common.ErrUnknownDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset %q: %w", name, err)
	}
	return &d, nil
}

func (s *SQLiteStorage) getDatasetByID(ctx context.Context, id int64) (*model.Dataset, error) {
	var d model.Dataset
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, source_file, row_count, imported_at FROM datasets WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.SourceFile, &d.RowCount, &d.ImportedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset %d: %w", id, err)
	}
	return &d, nil
}

// ListDatasets returns all datasets, newest first.
func (s *SQLiteStorage) ListDatasets(ctx context.Context) ([]model.Dataset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, source_file, row_count, imported_at FROM datasets ORDER BY imported_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Dataset
	for rows.Next() {
		var d model.Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.SourceFile, &d.RowCount, &d.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDataset removes a dataset and everything hanging off it.
func (s *SQLiteStorage) DeleteDataset(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete dataset %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("dataset %q: %w", name, common.ErrUnknownDataset)
	}
	return nil
}
