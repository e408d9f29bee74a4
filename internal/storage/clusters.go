package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spendlens/spendlens/internal/common"
	"github.com/spendlens/spendlens/internal/model"
)

// SaveClusters replaces the vendor clusters attached to a dataset. Clusters
// are validated on the way in so a malformed upstream feed is rejected
// before it can poison stored state.
func (s *SQLiteStorage) SaveClusters(ctx context.Context, datasetID int64, clusters []model.VendorCluster) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(datasetID, "datasetID"); err != nil {
		return err
	}
	for i := range clusters {
		if err := clusters[i].Validate(); err != nil {
			return &common.ClusterError{Err: err, Master: clusters[i].MasterName, Index: i}
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM vendor_clusters WHERE dataset_id = ?`, datasetID); err != nil {
		return fmt.Errorf("failed to clear clusters: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vendor_clusters (dataset_id, master_name, variants, total_spend, transaction_count, contract_status)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range clusters {
		variants, marshalErr := json.Marshal(c.Variants)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal variants for %q: %w", c.MasterName, marshalErr)
		}
		if _, err := stmt.ExecContext(ctx, datasetID, c.MasterName, string(variants),
			c.TotalSpend, c.TransactionCount, string(c.ContractStatus)); err != nil {
			return fmt.Errorf("failed to insert cluster %q: %w", c.MasterName, err)
		}
	}

	return tx.Commit()
}

// GetClusters loads the vendor clusters for a dataset.
func (s *SQLiteStorage) GetClusters(ctx context.Context, datasetID int64) ([]model.VendorCluster, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(datasetID, "datasetID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT master_name, variants, total_spend, transaction_count, contract_status
		FROM vendor_clusters WHERE dataset_id = ? ORDER BY total_spend DESC
	`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clusters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]model.VendorCluster, 0)
	for rows.Next() {
		var c model.VendorCluster
		var variants string
		var status string
		if err := rows.Scan(&c.MasterName, &variants, &c.TotalSpend, &c.TransactionCount, &status); err != nil {
			return nil, fmt.Errorf("failed to scan cluster: %w", err)
		}
		if err := json.Unmarshal([]byte(variants), &c.Variants); err != nil {
			return nil, fmt.Errorf("failed to unmarshal variants for %q: %w", c.MasterName, err)
		}
		c.ContractStatus = model.ClusterContractStatus(status)
		out = append(out, c)
	}
	return out, rows.Err()
}
