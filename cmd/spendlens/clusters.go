package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/cli"
	"github.com/spendlens/spendlens/internal/common"
	"github.com/spendlens/spendlens/internal/config"
	"github.com/spendlens/spendlens/internal/model"
)

func clustersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "Manage vendor clusters for a dataset",
		Long: `Vendor clusters come from an external deduplication service that groups
name variants ("ACME Corp", "Acme Corporation") under one master vendor.
Clusters are loaded from a JSON file and attached to a dataset; the
analysis consumes them read-only.`,
	}

	cmd.AddCommand(clustersLoadCmd())
	cmd.AddCommand(clustersShowCmd())

	return cmd
}

func clustersLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <dataset> <file.json>",
		Short: "Load vendor clusters from a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := config.ExpandPath(args[1])

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			var clusters []model.VendorCluster
			if err := json.Unmarshal(data, &clusters); err != nil {
				return fmt.Errorf("failed to parse cluster file: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			ds, err := store.GetDataset(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load dataset %q: %w", args[0], err)
			}

			if err := store.SaveClusters(ctx, ds.ID, clusters); err != nil {
				var clusterErr *common.ClusterError
				if errors.As(err, &clusterErr) {
					return fmt.Errorf("cluster file rejected: %w", err)
				}
				return fmt.Errorf("failed to save clusters: %w", err)
			}

			slog.Info(cli.FormatSuccess(fmt.Sprintf("Loaded %d vendor clusters for %q", len(clusters), ds.Name)))
			return nil
		},
	}
}

func clustersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <dataset>",
		Short: "Show the vendor clusters attached to a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			ds, err := store.GetDataset(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load dataset %q: %w", args[0], err)
			}

			clusters, err := store.GetClusters(ctx, ds.ID)
			if err != nil {
				return fmt.Errorf("failed to load clusters: %w", err)
			}

			if len(clusters) == 0 {
				slog.Info(cli.FormatWarning("No vendor clusters attached"))
				return nil
			}

			currency := reportCurrency()
			rows := make([][]string, 0, len(clusters))
			for _, c := range clusters {
				rows = append(rows, []string{
					c.MasterName,
					fmt.Sprintf("%d", len(c.Variants)),
					string(c.ContractStatus),
					cli.FormatMoney(c.TotalSpend, currency),
					strings.Join(c.Variants, ", "),
				})
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Vendor clusters for %q", ds.Name)))
			fmt.Print(cli.RenderTable([]string{"Master", "Variants", "Contract", "Spend", "Names"}, rows))
			return nil
		},
	}
}
