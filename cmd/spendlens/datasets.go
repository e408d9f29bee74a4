package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/cli"
)

func datasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Manage imported datasets",
	}

	cmd.AddCommand(datasetsListCmd())
	cmd.AddCommand(datasetsDeleteCmd())

	return cmd
}

func datasetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all imported datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			datasets, err := store.ListDatasets(ctx)
			if err != nil {
				return fmt.Errorf("failed to list datasets: %w", err)
			}

			if len(datasets) == 0 {
				slog.Info(cli.FormatWarning("No datasets imported yet"))
				return nil
			}

			rows := make([][]string, 0, len(datasets))
			for _, ds := range datasets {
				rows = append(rows, []string{
					ds.Name,
					fmt.Sprintf("%d", ds.RowCount),
					ds.ImportedAt.Format("2006-01-02 15:04"),
					ds.SourceFile,
				})
			}

			fmt.Println(cli.FormatTitle("Datasets"))
			fmt.Print(cli.RenderTable([]string{"Name", "Rows", "Imported", "Source"}, rows))
			return nil
		},
	}
}

func datasetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a dataset and all its rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteDataset(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete dataset %q: %w", args[0], err)
			}

			slog.Info(cli.FormatSuccess(fmt.Sprintf("Deleted dataset %q", args[0])))
			return nil
		},
	}
}
