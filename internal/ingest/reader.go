// Package ingest reads uploaded transaction files into open-schema rows.
// It performs no schema validation; the analytics engine parses values
// at computation time, and a row with odd cells is still a row worth
// counting.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spendlens/spendlens/internal/model"
)

// ReadFile reads a CSV or XLSX file into rows, picking the reader by file
// extension.
func ReadFile(ctx context.Context, path string) ([]model.Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(ctx, path)
	case ".xlsx", ".xlsm":
		return ReadXLSX(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

// normalizeHeader trims a header cell and collapses inner whitespace so
// "Total  Amount " and "Total Amount" address the same column.
func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(h), " ")
}

// rowFromCells zips headers and cells into a Row. Ragged rows are fine:
// missing cells stay absent, surplus cells get positional keys so no data
// is silently dropped.
func rowFromCells(headers []string, cells []string) model.Row {
	row := make(model.Row, len(headers))
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if i < len(headers) && headers[i] != "" {
			row[headers[i]] = cell
		} else {
			row[fmt.Sprintf("column_%d", i+1)] = cell
		}
	}
	return row
}
