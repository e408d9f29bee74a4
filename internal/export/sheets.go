package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spendlens/spendlens/internal/model"
)

func (w *Writer) writeExecutiveSummary(f *excelize.File, vm *model.ViewModel, _ []model.Row) error {
	const sheet = "Executive Summary"

	if err := f.SetCellValue(sheet, "A1", "SPEND ANALYSIS REPORT"); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "D1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", w.titleStyle); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, 1, 28); err != nil {
		return err
	}

	period := "n/a"
	if n := len(vm.MonthlySpend); n > 0 {
		period = vm.MonthlySpend[0].Label + " to " + vm.MonthlySpend[n-1].Label
	}
	if err := f.SetCellValue(sheet, "A2", "Period: "+period); err != nil {
		return err
	}

	avgTxn := 0.0
	if vm.TransactionCount > 0 {
		avgTxn = vm.TotalSpend / float64(vm.TransactionCount)
	}

	currency := w.config.Currency
	if currency == "" {
		currency = vm.Currency
	}

	metrics := [][]any{
		{fmt.Sprintf("Total Spend (%s)", currency), vm.TotalSpend},
		{"Total Transactions", vm.TransactionCount},
		{"Unique Suppliers", len(vm.SupplierDistribution)},
		{"Unique Categories", len(vm.CategoryDistribution)},
		{fmt.Sprintf("Average Transaction (%s)", currency), avgTxn},
	}
	if err := w.writeTable(f, sheet, 4, []string{"Metric", "Value"}, metrics); err != nil {
		return err
	}
	if err := w.styleColumn(f, sheet, 2, 5, 4+len(metrics), w.moneyStyle); err != nil {
		return err
	}

	// Top suppliers block below the metrics.
	top := vm.SupplierDistribution
	if len(top) > 5 {
		top = top[:5]
	}
	start := 4 + len(metrics) + 2
	title, err := excelize.CoordinatesToCellName(1, start)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, title, "Top 5 Suppliers by Spend"); err != nil {
		return err
	}

	data := make([][]any, 0, len(top))
	for i, s := range top {
		data = append(data, []any{i + 1, s.Name, s.Spend, s.Pct})
	}
	headers := []string{"Rank", "Supplier", "Total Spend", "% of Total"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, start+1)
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
			cell, err := excelize.CoordinatesToCellName(col+1, start+2+i)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	if err := w.styleColumn(f, sheet, 3, start+2, start+1+len(data), w.moneyStyle); err != nil {
		return err
	}
	if err := w.styleColumn(f, sheet, 4, start+2, start+1+len(data), w.pctStyle); err != nil {
		return err
	}

	return f.SetColWidth(sheet, "A", "A", 34)
}

func (w *Writer) writeSupplierAnalysis(f *excelize.File, vm *model.ViewModel, _ []model.Row) error {
	const sheet = "Spend by Supplier"

	data := make([][]any, 0, len(vm.SupplierDistribution))
	for i, s := range vm.SupplierDistribution {
		data = append(data, []any{i + 1, s.Name, s.Spend, s.Pct})
	}
	headers := []string{"Rank", "Supplier", "Total Spend", "% of Total"}
	if err := w.writeTable(f, sheet, 1, headers, data); err != nil {
		return err
	}
	if err := w.styleColumn(f, sheet, 3, 2, 1+len(data), w.moneyStyle); err != nil {
		return err
	}
	if err := w.styleColumn(f, sheet, 4, 2, 1+len(data), w.pctStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 40)
}

func (w *Writer) writeCategoryAnalysis(f *excelize.File, vm *model.ViewModel, _ []model.Row) error {
	const sheet = "Spend by Category"

	data := make([][]any, 0, len(vm.CategoryDistribution))
	for i, c := range vm.CategoryDistribution {
		data = append(data, []any{i + 1, c.Name, c.Spend, c.Pct})
	}
	headers := []string{"Rank", "Category", "Total Spend", "% of Total"}
	if err := w.writeTable(f, sheet, 1, headers, data); err != nil {
		return err
	}
	if err := w.styleColumn(f, sheet, 3, 2, 1+len(data), w.moneyStyle); err != nil {
		return err
	}
	if err := w.styleColumn(f, sheet, 4, 2, 1+len(data), w.pctStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 40)
}

func (w *Writer) writeMonthlyTrends(f *excelize.File, vm *model.ViewModel, _ []model.Row) error {
	const sheet = "Monthly Trends"

	data := make([][]any, 0, len(vm.MonthlySpend))
	for _, m := range vm.MonthlySpend {
		data = append(data, []any{m.Label, m.Spend, m.TransactionCount, m.GrowthPct})
	}
	headers := []string{"Month", "Total Spend", "Transactions", "Growth %"}
	if err := w.writeTable(f, sheet, 1, headers, data); err != nil {
		return err
	}
	if err := w.styleColumn(f, sheet, 2, 2, 1+len(data), w.moneyStyle); err != nil {
		return err
	}
	if err := w.styleColumn(f, sheet, 4, 2, 1+len(data), w.pctStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 14)
}

func (w *Writer) writeOpportunities(f *excelize.File, vm *model.ViewModel, _ []model.Row) error {
	const sheet = "Savings Opportunities"

	data := make([][]any, 0, len(vm.Opportunities))
	for i, o := range vm.Opportunities {
		data = append(data, []any{
			i + 1,
			o.Bucket.Label(),
			o.Spend,
			o.Savings,
			o.SavingsPct,
			o.ProjectedSpend,
			o.Recommendation,
		})
	}
	headers := []string{"Rank", "Opportunity", "Spend in Scope", "Estimated Savings", "Savings %", "Projected Spend", "Recommendation"}
	if err := w.writeTable(f, sheet, 1, headers, data); err != nil {
		return err
	}
	for _, col := range []int{3, 4, 6} {
		if err := w.styleColumn(f, sheet, col, 2, 1+len(data), w.moneyStyle); err != nil {
			return err
		}
	}
	if err := w.styleColumn(f, sheet, 5, 2, 1+len(data), w.pctStyle); err != nil {
		return err
	}

	// Sourcing insight block.
	start := 1 + len(data) + 3
	title, err := excelize.CoordinatesToCellName(1, start)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, title, "Sourcing Insights"); err != nil {
		return err
	}
	lines := []string{
		fmt.Sprintf("Single-sourced items: %d of %d (%.2f in spend)",
			vm.Sourcing.SingleSourced, len(vm.Sourcing.Items), vm.Sourcing.SingleSourceSpend),
		fmt.Sprintf("Tail suppliers identified for consolidation: %d (%.2f in spend)",
			len(vm.Tail.FinalTail), vm.Tail.TailSpend),
	}
	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, start+1+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, line); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 26); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "G", "G", 60)
}

func (w *Writer) writeDetailedData(f *excelize.File, _ *model.ViewModel, rows []model.Row) error {
	const sheet = "Detailed Data"

	limit := len(rows)
	if w.config.DetailLimit > 0 && w.config.DetailLimit < limit {
		limit = w.config.DetailLimit
	}

	headers := unionHeaders(rows)
	if len(headers) == 0 {
		return f.SetCellValue(sheet, "A1", "No rows in scope")
	}

	data := make([][]any, 0, limit)
	for _, row := range rows[:limit] {
		record := make([]any, len(headers))
		for i, h := range headers {
			record[i] = row.Get(h)
		}
		data = append(data, record)
	}
	return w.writeTable(f, sheet, 1, headers, data)
}

func (w *Writer) writeDataQuality(f *excelize.File, _ *model.ViewModel, rows []model.Row) error {
	const sheet = "Data Quality Report"

	headers := unionHeaders(rows)
	total := len(rows)

	data := make([][]any, 0, len(headers))
	for _, h := range headers {
		filled := 0
		for _, row := range rows {
			if strings.TrimSpace(row.GetString(h)) != "" {
				filled++
			}
		}
		pct := 100.0
		if total > 0 {
			pct = float64(filled) / float64(total) * 100
		}
		status := "OK"
		switch {
		case pct < 50:
			status = "CRITICAL"
		case pct < 90:
			status = "WARNING"
		}
		data = append(data, []any{h, filled, total - filled, pct, status})
	}

	cols := []string{"Column", "Filled", "Missing", "Completeness %", "Status"}
	if err := w.writeTable(f, sheet, 1, cols, data); err != nil {
		return err
	}
	if err := w.styleColumn(f, sheet, 4, 2, 1+len(data), w.pctStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 30)
}
