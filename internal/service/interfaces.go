// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/spendlens/spendlens/internal/model"
)

// Storage defines the contract for the persistence layer. Commands depend
// on this interface, never on the SQLite implementation directly.
type Storage interface {
	// Dataset operations
	CreateDataset(ctx context.Context, name, sourceFile string) (*model.Dataset, error)
	GetDataset(ctx context.Context, name string) (*model.Dataset, error)
	ListDatasets(ctx context.Context) ([]model.Dataset, error)
	DeleteDataset(ctx context.Context, name string) error

	// Row operations
	SaveRows(ctx context.Context, datasetID int64, rows []model.Row) error
	GetRows(ctx context.Context, datasetID int64) ([]model.Row, error)

	// Field mapping operations
	SaveMapping(ctx context.Context, datasetID int64, mapping model.FieldMapping) error
	GetMapping(ctx context.Context, datasetID int64) (model.FieldMapping, error)

	// Vendor cluster operations
	SaveClusters(ctx context.Context, datasetID int64, clusters []model.VendorCluster) error
	GetClusters(ctx context.Context, datasetID int64) ([]model.VendorCluster, error)

	// Analysis snapshot operations
	SaveSnapshot(ctx context.Context, datasetID int64, viewModel *model.ViewModel) error
	GetLatestSnapshot(ctx context.Context, datasetID int64) (*model.ViewModel, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RowSource produces open-schema rows from an uploaded file. Implemented by
// the CSV and XLSX readers in internal/ingest.
type RowSource interface {
	Read(ctx context.Context, path string) ([]model.Row, error)
}

// ReportWriter renders a computed view-model plus the filtered row set into
// an export artifact (spreadsheet report).
type ReportWriter interface {
	Write(ctx context.Context, vm *model.ViewModel, rows []model.Row, path string) error
}
