package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/cli"
	"github.com/spendlens/spendlens/internal/model"
)

func mappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage field mappings for a dataset",
		Long: `Field mappings bind semantic fields (amount, supplier, date, ...) to
column headers of the imported file. Fields without an explicit mapping are
auto-detected from the headers at analysis time; an explicit mapping always
wins over detection.`,
	}

	cmd.AddCommand(mappingsShowCmd())
	cmd.AddCommand(mappingsSetCmd())
	cmd.AddCommand(mappingsClearCmd())

	return cmd
}

func mappingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <dataset>",
		Short: "Show the field mapping for a dataset",
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

			mapping, err := store.GetMapping(ctx, ds.ID)
			if err != nil {
				return fmt.Errorf("failed to load mapping: %w", err)
			}

			rows := make([][]string, 0, len(model.SemanticFields))
			for _, field := range model.SemanticFields {
				column := mapping.Column(field)
				if column == "" {
					column = "(auto-detect)"
				}
				rows = append(rows, []string{field, column})
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Field mapping for %q", ds.Name)))
			fmt.Print(cli.RenderTable([]string{"Field", "Column"}, rows))
			return nil
		},
	}
}

func mappingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <dataset> <field> <column>",
		Short: "Bind a semantic field to a column header",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			field := args[1]

			if !isKnownField(field) {
				return fmt.Errorf("unknown field %q, valid fields: %v", args[1], fieldNames())
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

			mapping, err := store.GetMapping(ctx, ds.ID)
			if err != nil {
				return fmt.Errorf("failed to load mapping: %w", err)
			}

			mapping[field] = args[2]
			if err := store.SaveMapping(ctx, ds.ID, mapping); err != nil {
				return fmt.Errorf("failed to save mapping: %w", err)
			}

			slog.Info(cli.FormatSuccess(fmt.Sprintf("Mapped %s to column %q", field, args[2])))
			return nil
		},
	}
}

func mappingsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <dataset>",
		Short: "Remove all explicit mappings, reverting to auto-detection",
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

			if err := store.SaveMapping(ctx, ds.ID, model.FieldMapping{}); err != nil {
				return fmt.Errorf("failed to clear mapping: %w", err)
			}

			slog.Info(cli.FormatSuccess("Mapping cleared, all fields auto-detect"))
			return nil
		},
	}
}

func isKnownField(field string) bool {
	for _, f := range model.SemanticFields {
		if f == field {
			return true
		}
	}
	return false
}

func fieldNames() []string {
	names := make([]string, len(model.SemanticFields))
	copy(names, model.SemanticFields)
	sort.Strings(names)
	return names
}
