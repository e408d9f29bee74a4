package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spendlens/spendlens/internal/cli"
	"github.com/spendlens/spendlens/internal/config"
	"github.com/spendlens/spendlens/internal/ingest"
	"github.com/spendlens/spendlens/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a procurement transaction export",
		Long: `Import a CSV or Excel export of procurement transactions into a dataset.

Rows are stored exactly as found in the file, with no schema validation.
Column semantics are resolved later, at analysis time, via the dataset's
field mapping or automatic header detection.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("name", "n", "", "Dataset name (default: file name without extension)")
	cmd.Flags().Bool("dry-run", false, "Parse the file and show a summary without saving")

	_ = viper.BindPFlag("import.name", cmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := config.ExpandPath(args[0])

	name := viper.GetString("import.name")
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	slog.Info(cli.FormatTitle("Importing transactions"))
	slog.Info("Reading file", "path", path)

	rows, err := ingest.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Parsed %d rows", len(rows))))

	if viper.GetBool("import.dry_run") {
		slog.Info(cli.FormatWarning("Dry run mode - not saving to database"))
		displayImportSummary(name, path, rows)
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close storage", "error", closeErr)
		}
	}()

	ds, err := store.CreateDataset(ctx, name, path)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}

	bar := newImportProgressBar(len(rows))
	const batchSize = 500
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := store.SaveRows(ctx, ds.ID, rows[start:end]); err != nil {
			return fmt.Errorf("failed to save rows: %w", err)
		}
		if err := bar.Add(end - start); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	slog.Info(cli.FormatSuccess("Import complete!"))
	displayImportSummary(name, path, rows)

	return nil
}

func newImportProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Saving rows...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

func displayImportSummary(name, path string, rows []model.Row) {
	if len(rows) == 0 {
		slog.Info(cli.FormatWarning("No data rows found in file"))
		return
	}

	columns := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			columns[k] = struct{}{}
		}
	}

	content := fmt.Sprintf(`Dataset: %s
Source: %s
Rows: %d
Columns: %d
`, name, path, len(rows), len(columns))

	slog.Info(cli.RenderBox("Import Summary", content))
}
