package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spendlens/spendlens/internal/common"
	"github.com/spendlens/spendlens/internal/model"
)

// SaveSnapshot stores a computed view-model for later inspection. Snapshots
// are a convenience for the CLI; the engine never reads them back into a
// computation.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, datasetID int64, viewModel *model.ViewModel) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(datasetID, "datasetID"); err != nil {
		return err
	}
	if viewModel == nil {
		return fmt.Errorf("%w: viewModel", ErrNilParameter)
	}

	payload, err := json.Marshal(viewModel)
	if err != nil {
		return fmt.Errorf("failed to marshal view model: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_snapshots (dataset_id, view_model) VALUES (?, ?)`,
		datasetID, string(payload)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetLatestSnapshot returns the most recent stored view-model for a dataset.
func (s *SQLiteStorage) GetLatestSnapshot(ctx context.Context, datasetID int64) (*model.ViewModel, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(datasetID, "datasetID"); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT view_model FROM analysis_snapshots
		WHERE dataset_id = ? ORDER BY created_at DESC, id DESC LIMIT 1
	`, datasetID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var vm model.ViewModel
	if err := json.Unmarshal([]byte(payload), &vm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &vm, nil
}
