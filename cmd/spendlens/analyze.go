package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spendlens/spendlens/internal/analytics"
	"github.com/spendlens/spendlens/internal/cli"
	"github.com/spendlens/spendlens/internal/model"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <dataset>",
		Short: "Compute the spend analytics dashboard for a dataset",
		Long: `Recompute the full analytics view for a dataset: KPI cards, spend
distributions, monthly trends, savings opportunities, tail-spend
classification and sourcing insights.

Filters narrow what the metrics and savings heuristics see, but the
tail-spend baseline is always computed from the complete dataset.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().String("supplier", "", "Filter rows by supplier name (substring match)")
	cmd.Flags().String("category", "", "Filter rows by category (substring match)")
	cmd.Flags().Float64("min-amount", 0, "Keep only rows with amount >= this value")
	cmd.Flags().Float64("max-amount", 0, "Keep only rows with amount <= this value")
	cmd.Flags().String("range", "all", "Date range: all, 12m, 6m, ytd")
	cmd.Flags().Bool("no-snapshot", false, "Skip persisting the computed view")

	_ = viper.BindPFlag("analyze.supplier", cmd.Flags().Lookup("supplier"))
	_ = viper.BindPFlag("analyze.category", cmd.Flags().Lookup("category"))
	_ = viper.BindPFlag("analyze.range", cmd.Flags().Lookup("range"))
	_ = viper.BindPFlag("analyze.no_snapshot", cmd.Flags().Lookup("no-snapshot"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ds, rows, mapping, clusters, err := loadDatasetInputs(ctx, store, args[0])
	if err != nil {
		return err
	}

	slog.Info(cli.FormatTitle(fmt.Sprintf("Analyzing %q", ds.Name)))
	slog.Info("Computing", "rows", len(rows), "clusters", len(clusters))

	filters := model.Filters{
		Supplier: viper.GetString("analyze.supplier"),
		Category: viper.GetString("analyze.category"),
	}
	if cmd.Flags().Changed("min-amount") {
		v, _ := cmd.Flags().GetFloat64("min-amount")
		filters.MinAmount = &v
	}
	if cmd.Flags().Changed("max-amount") {
		v, _ := cmd.Flags().GetFloat64("max-amount")
		filters.MaxAmount = &v
	}

	engine := newEngine()
	vm, err := engine.Compute(analytics.Input{
		Mapping:   mapping,
		Currency:  reportCurrency(),
		Rows:      rows,
		Clusters:  clusters,
		Filters:   filters,
		DateRange: model.ParseDateRange(viper.GetString("analyze.range")),
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if !viper.GetBool("analyze.no_snapshot") {
		if err := store.SaveSnapshot(ctx, ds.ID, vm); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
	}

	printDashboard(vm)
	return nil
}

func printDashboard(vm *model.ViewModel) {
	var cards strings.Builder
	for _, card := range vm.Cards {
		cards.WriteString(fmt.Sprintf("%-28s %s\n", card.Label, formatCardValue(card, vm.Currency)))
		for _, sub := range card.SubMetrics {
			cards.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("  %s: %s", sub.Label, sub.Value)))
			cards.WriteString("\n")
		}
	}
	fmt.Println(cli.RenderBox("Dashboard", cards.String()))

	if len(vm.SupplierDistribution) > 0 {
		top := vm.SupplierDistribution
		if len(top) > 10 {
			top = top[:10]
		}
		rows := make([][]string, 0, len(top))
		for i, s := range top {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				s.Name,
				cli.FormatMoney(s.Spend, vm.Currency),
				fmt.Sprintf("%.1f%%", s.Pct),
			})
		}
		fmt.Println(cli.FormatTitle("Top Suppliers"))
		fmt.Print(cli.RenderTable([]string{"#", "Supplier", "Spend", "Share"}, rows))
	}

	if len(vm.Opportunities) > 0 {
		var b strings.Builder
		for i, o := range vm.Opportunities {
			b.WriteString(fmt.Sprintf("%d. %s: save ~%s (%.1f%% of %s)\n",
				i+1, o.Label,
				cli.FormatMoney(o.Savings, vm.Currency),
				o.SavingsPct,
				cli.FormatMoney(o.Spend, vm.Currency)))
			b.WriteString(cli.SubtleStyle.Render("   " + o.Recommendation))
			b.WriteString("\n")
		}
		fmt.Println(cli.RenderBox("Top Savings Opportunities", b.String()))
	}

	if len(vm.Tail.FinalTail) > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"%d tail suppliers hold %s in spend, consider consolidation",
			len(vm.Tail.FinalTail), cli.FormatMoney(vm.Tail.TailSpend, vm.Currency))))
	}
}

func formatCardValue(card model.KPICard, currency string) string {
	switch card.Kind {
	case model.KPICurrency:
		return cli.FormatMoney(card.Value, currency)
	case model.KPIPercent:
		return fmt.Sprintf("%.1f%%", card.Value)
	default:
		return fmt.Sprintf("%.0f", card.Value)
	}
}
