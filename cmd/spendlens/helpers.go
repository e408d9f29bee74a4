package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/spendlens/spendlens/internal/analytics"
	"github.com/spendlens/spendlens/internal/config"
	"github.com/spendlens/spendlens/internal/model"
	"github.com/spendlens/spendlens/internal/service"
	"github.com/spendlens/spendlens/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/spendlens/spendlens.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newEngine builds the analytics engine, applying any threshold overrides
// from the analytics.* config keys.
func newEngine() *analytics.Engine {
	t := analytics.DefaultThresholds()

	if viper.IsSet("analytics.single_source_rate") {
		t.SingleSourceRate = viper.GetFloat64("analytics.single_source_rate")
	}
	if viper.IsSet("analytics.tail_savings_rate") {
		t.TailSavingsRate = viper.GetFloat64("analytics.tail_savings_rate")
	}
	if viper.IsSet("analytics.low_value_cutoff") {
		t.LowValueCutoff = viper.GetFloat64("analytics.low_value_cutoff")
	}
	if viper.IsSet("analytics.tail_supplier_spend_cutoff") {
		t.TailSupplierSpendCutoff = viper.GetFloat64("analytics.tail_supplier_spend_cutoff")
	}
	if viper.IsSet("analytics.top_opportunities") {
		t.TopOpportunities = viper.GetInt("analytics.top_opportunities")
	}

	return analytics.NewWithThresholds(t)
}

// reportCurrency returns the configured currency code for display and export.
func reportCurrency() string {
	if c := viper.GetString("currency"); c != "" {
		return c
	}
	return "INR"
}

// loadDatasetInputs fetches the rows, mapping and clusters a computation needs.
func loadDatasetInputs(ctx context.Context, store service.Storage, name string) (*model.Dataset, []model.Row, model.FieldMapping, []model.VendorCluster, error) {
	ds, err := store.GetDataset(ctx, name)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load dataset %q: %w", name, err)
	}

	rows, err := store.GetRows(ctx, ds.ID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load rows: %w", err)
	}

	mapping, err := store.GetMapping(ctx, ds.ID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load field mapping: %w", err)
	}

	clusters, err := store.GetClusters(ctx, ds.ID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load vendor clusters: %w", err)
	}

	return ds, rows, mapping, clusters, nil
}
