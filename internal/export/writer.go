// Package export renders a computed view-model and the filtered row set
// into a multi-sheet Excel workbook. It is a presentation collaborator of
// the analytics engine: everything it writes is already computed, it only
// lays the numbers out.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/spendlens/spendlens/internal/model"
)

// Config holds report writer options.
type Config struct {
	// Currency is the ISO code shown in sheet headers.
	Currency string

	// DetailLimit caps the Detailed Data sheet's row count. Zero means
	// everything.
	DetailLimit int
}

// Writer generates the spend analysis workbook.
type Writer struct {
	logger *slog.Logger
	config Config

	headerStyle int
	titleStyle  int
	moneyStyle  int
	pctStyle    int
}

// NewWriter creates a report writer.
func NewWriter(config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{config: config, logger: logger}
}

// Write renders the workbook to path.
func (w *Writer) Write(ctx context.Context, vm *model.ViewModel, rows []model.Row, path string) error {
	if vm == nil {
		return fmt.Errorf("view model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	w.logger.Info("starting report generation",
		"transactions", vm.TransactionCount,
		"suppliers", len(vm.SupplierDistribution),
		"path", path)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := w.makeStyles(f); err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	sheets := []struct {
		build func(*excelize.File, *model.ViewModel, []model.Row) error
		name  string
	}{
		{w.writeExecutiveSummary, "Executive Summary"},
		{w.writeSupplierAnalysis, "Spend by Supplier"},
		{w.writeCategoryAnalysis, "Spend by Category"},
		{w.writeMonthlyTrends, "Monthly Trends"},
		{w.writeOpportunities, "Savings Opportunities"},
		{w.writeDetailedData, "Detailed Data"},
		{w.writeDataQuality, "Data Quality Report"},
	}

	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.name, err)
		}
		if err := sheet.build(f, vm, rows); err != nil {
			return fmt.Errorf("failed to build sheet %q: %w", sheet.name, err)
		}
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("report saved", "path", path)
	return nil
}

func (w *Writer) makeStyles(f *excelize.File) error {
	var err error

	w.headerStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	w.titleStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	money := "#,##0.00"
	w.moneyStyle, err = f.NewStyle(&excelize.Style{CustomNumFmt: &money})
	if err != nil {
		return err
	}

	pct := "0.0\"%\""
	w.pctStyle, err = f.NewStyle(&excelize.Style{CustomNumFmt: &pct})
	return err
}

// writeTable writes a header row plus data rows starting at startRow and
// applies freeze panes and an auto filter, the way every analysis sheet in
// the report behaves.
func (w *Writer) writeTable(f *excelize.File, sheet string, startRow int, headers []string, data [][]any) error {
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, startRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, w.headerStyle); err != nil {
			return err
		}
	}

	for i, record := range data {
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, startRow+1+i)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	last, err := excelize.CoordinatesToCellName(len(headers), startRow+len(data))
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(1, startRow)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, first+":"+last, nil); err != nil {
		return err
	}

	topLeft, err := excelize.CoordinatesToCellName(1, startRow+1)
	if err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      startRow,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
	})
}

// styleColumn applies a number style to a column over the given data rows.
func (w *Writer) styleColumn(f *excelize.File, sheet string, col, firstRow, lastRow, style int) error {
	if lastRow < firstRow {
		return nil
	}
	first, err := excelize.CoordinatesToCellName(col, firstRow)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(col, lastRow)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

// unionHeaders collects the union of column keys across rows, sorted.
func unionHeaders(rows []model.Row) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
