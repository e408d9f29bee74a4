package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spendlens/spendlens/internal/analytics"
	"github.com/spendlens/spendlens/internal/cli"
	"github.com/spendlens/spendlens/internal/config"
	"github.com/spendlens/spendlens/internal/export"
	"github.com/spendlens/spendlens/internal/model"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <dataset> <output.xlsx>",
		Short: "Export the spend analysis as an Excel workbook",
		Long: `Recompute the analysis for a dataset and write a multi-sheet Excel
report: executive summary, supplier and category breakdowns, monthly
trends, savings opportunities, the detailed row data and a data
quality sheet.`,
		Args: cobra.ExactArgs(2),
		RunE: runExport,
	}

	cmd.Flags().String("supplier", "", "Filter rows by supplier name (substring match)")
	cmd.Flags().String("category", "", "Filter rows by category (substring match)")
	cmd.Flags().String("range", "all", "Date range: all, 12m, 6m, ytd")
	cmd.Flags().Int("detail-limit", 0, "Cap the Detailed Data sheet row count (0 = all)")

	_ = viper.BindPFlag("export.supplier", cmd.Flags().Lookup("supplier"))
	_ = viper.BindPFlag("export.category", cmd.Flags().Lookup("category"))
	_ = viper.BindPFlag("export.range", cmd.Flags().Lookup("range"))
	_ = viper.BindPFlag("export.detail_limit", cmd.Flags().Lookup("detail-limit"))

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	outPath := config.ExpandPath(args[1])

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ds, rows, mapping, clusters, err := loadDatasetInputs(ctx, store, args[0])
	if err != nil {
		return err
	}

	filters := model.Filters{
		Supplier: viper.GetString("export.supplier"),
		Category: viper.GetString("export.category"),
	}

	slog.Info(cli.FormatTitle(fmt.Sprintf("Exporting analysis of %q", ds.Name)))

	engine := newEngine()
	vm, err := engine.Compute(analytics.Input{
		Mapping:   mapping,
		Currency:  reportCurrency(),
		Rows:      rows,
		Clusters:  clusters,
		Filters:   filters,
		DateRange: model.ParseDateRange(viper.GetString("export.range")),
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	// The report's detail sheet shows the same rows the analysis saw.
	filtered := analytics.FilterRows(rows, mapping, filters, model.ParseDateRange(viper.GetString("export.range")))

	writer := export.NewWriter(export.Config{
		Currency:    reportCurrency(),
		DetailLimit: viper.GetInt("export.detail_limit"),
	}, slog.Default())

	if err := writer.Write(ctx, vm, filtered, outPath); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Report written to %s", outPath)))
	return nil
}
