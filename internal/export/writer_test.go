package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spendlens/spendlens/internal/model"
)

func sampleViewModel() *model.ViewModel {
	return &model.ViewModel{
		Currency:         "INR",
		TotalSpend:       683000,
		TransactionCount: 5,
		SupplierDistribution: []model.DistributionEntry{
			{Name: "CloudSoft", Spend: 400000, Pct: 58.57, TransactionCount: 1},
			{Name: "Acme Industrial", Spend: 180000, Pct: 26.35, TransactionCount: 2},
			{Name: "Bolt Works", Spend: 100000, Pct: 14.64, TransactionCount: 1},
			{Name: "Tiny Traders", Spend: 3000, Pct: 0.44, TransactionCount: 1},
		},
		CategoryDistribution: []model.DistributionEntry{
			{Name: "IT Services", Spend: 400000, Pct: 58.57},
			{Name: "Direct Materials", Spend: 280000, Pct: 41.0},
			{Name: "Stationery", Spend: 3000, Pct: 0.44},
		},
		MonthlySpend: []model.MonthBucket{
			{Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Key: "2024-01", Label: "Jan 2024", Spend: 220000, TransactionCount: 2},
			{Start: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), Key: "2024-02", Label: "Feb 2024", Spend: 460000, GrowthPct: 109.09, TransactionCount: 2},
		},
		Opportunities: []model.RankedOpportunity{
			{Bucket: model.BucketPriceVariance, Label: "Price Variance", Spend: 180000, Savings: 30000, SavingsPct: 16.67, ProjectedSpend: 150000, Recommendation: "Negotiate."},
		},
		Sourcing: model.SourcingSummary{SingleSourced: 2, MultiSourced: 1, SingleSourceSpend: 403000, Items: []model.SourcedItem{{Description: "Bolt M8"}}},
		Tail:     model.TailClassification{FinalTail: []string{"Tiny Traders"}, TailSpend: 3000},
	}
}

func sampleRows() []model.Row {
	return []model.Row{
		{"Vendor Name": "Acme Industrial", "Invoice Amount": "120000", "Posting Date": "05/01/2024"},
		{"Vendor Name": "Bolt Works", "Invoice Amount": "100000"},
	}
}

func TestWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	w := NewWriter(Config{Currency: "INR"}, nil)

	err := w.Write(context.Background(), sampleViewModel(), sampleRows(), path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	wantSheets := []string{
		"Executive Summary",
		"Spend by Supplier",
		"Spend by Category",
		"Monthly Trends",
		"Savings Opportunities",
		"Detailed Data",
		"Data Quality Report",
	}
	assert.ElementsMatch(t, wantSheets, f.GetSheetList())

	title, err := f.GetCellValue("Executive Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "SPEND ANALYSIS REPORT", title)

	// Supplier sheet: header then ranked suppliers.
	top, err := f.GetCellValue("Spend by Supplier", "B2")
	require.NoError(t, err)
	assert.Equal(t, "CloudSoft", top)

	month, err := f.GetCellValue("Monthly Trends", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Jan 2024", month)

	opp, err := f.GetCellValue("Savings Opportunities", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Price Variance", opp)

	// Detailed data carries the union of row columns, sorted.
	h1, err := f.GetCellValue("Detailed Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice Amount", h1)

	// Data quality reports per-column completeness.
	status, err := f.GetCellValue("Data Quality Report", "E2")
	require.NoError(t, err)
	assert.NotEmpty(t, status)
}

func TestWriterDetailLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	w := NewWriter(Config{Currency: "INR", DetailLimit: 1}, nil)

	require.NoError(t, w.Write(context.Background(), sampleViewModel(), sampleRows(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Detailed Data")
	require.NoError(t, err)
	assert.Len(t, rows, 2) // header + one data row
}

func TestWriterNilViewModel(t *testing.T) {
	w := NewWriter(Config{}, nil)
	err := w.Write(context.Background(), nil, nil, filepath.Join(t.TempDir(), "x.xlsx"))
	assert.Error(t, err)
}

func TestWriterCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWriter(Config{}, nil)
	err := w.Write(ctx, sampleViewModel(), nil, filepath.Join(t.TempDir(), "x.xlsx"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriterEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	w := NewWriter(Config{}, nil)

	vm := &model.ViewModel{Currency: "USD"}
	require.NoError(t, w.Write(context.Background(), vm, nil, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	note, err := f.GetCellValue("Detailed Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "No rows in scope", note)
}
