package analytics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens/internal/common"
	"github.com/spendlens/spendlens/internal/model"
)

// procurementRows builds a small but fully mapped dataset covering two
// suppliers, two categories and three months.
func procurementRows() []model.Row {
	mkRow := func(vendor, category, item, date, contract string, amount, price, qty float64) model.Row {
		return model.Row{
			"Vendor Name":      vendor,
			"Spend Category":   category,
			"Item Description": item,
			"Posting Date":     date,
			"Contract Number":  contract,
			"Invoice Amount":   amount,
			"Unit Price":       price,
			"Qty":              qty,
		}
	}
	return []model.Row{
		mkRow("Acme Industrial", "Direct Materials", "Bolt M8", "05/01/2024", "CN-1", 120000, 12, 10000),
		mkRow("Bolt Works", "Direct Materials", "Bolt M8", "10/01/2024", "CN-2", 100000, 10, 10000),
		mkRow("Acme Industrial", "Direct Materials", "Bolt M8", "03/02/2024", "CN-1", 60000, 12, 5000),
		mkRow("CloudSoft", "IT Services", "ERP License", "20/02/2024", "", 400000, 0, 0),
		mkRow("Tiny Traders", "Stationery", "Paper A4", "01/03/2024", "", 3000, 3, 1000),
	}
}

func TestEngineComputeEndToEnd(t *testing.T) {
	e := New()
	vm, err := e.Compute(Input{
		Now:      time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Currency: "INR",
		Rows:     procurementRows(),
	})
	require.NoError(t, err)
	require.NotNil(t, vm)

	assert.Equal(t, "INR", vm.Currency)
	assert.Equal(t, 5, vm.TransactionCount)
	assert.InDelta(t, 683000, vm.TotalSpend, 1e-6)

	// Conservation: category and supplier distributions both sum to total.
	var catSum, supSum float64
	for _, e := range vm.CategoryDistribution {
		catSum += e.Spend
	}
	for _, e := range vm.SupplierDistribution {
		supSum += e.Spend
	}
	assert.InDelta(t, vm.TotalSpend, catSum, 1e-6)
	assert.InDelta(t, vm.TotalSpend, supSum, 1e-6)

	// Every mapped column produced its card.
	ids := make(map[string]bool)
	for _, c := range vm.Cards {
		ids[c.ID] = true
	}
	for _, id := range []string{"total_spend", "contract_coverage", "fy_spend", "savings_potential", "tail_spend", "single_source"} {
		assert.True(t, ids[id], "missing card %s", id)
	}

	// The overpriced bolt purchases produce a price variance opportunity.
	require.NotEmpty(t, vm.Opportunities)
	var hasPriceVariance bool
	for _, o := range vm.Opportunities {
		if o.Bucket == model.BucketPriceVariance {
			hasPriceVariance = true
			assert.Positive(t, o.Savings)
		}
	}
	assert.True(t, hasPriceVariance)

	require.Len(t, vm.MonthlySpend, 3)
	assert.Equal(t, "2024-01", vm.MonthlySpend[0].Key)
}

func TestEngineComputeAtMostOneBucketPerRow(t *testing.T) {
	e := New()
	vm, err := e.Compute(Input{
		Now:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Rows: procurementRows(),
	})
	require.NoError(t, err)

	var savingsCard *model.KPICard
	for i := range vm.Cards {
		if vm.Cards[i].ID == "savings_potential" {
			savingsCard = &vm.Cards[i]
		}
	}
	require.NotNil(t, savingsCard)

	buckets, ok := savingsCard.DrillDown.([]model.SavingsOpportunity)
	require.True(t, ok)

	var claimed int
	for _, b := range buckets {
		claimed += b.ItemCount
	}
	assert.LessOrEqual(t, claimed, vm.TransactionCount)
}

func TestEngineComputeTailBaselineIgnoresFilters(t *testing.T) {
	e := New()
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	unfiltered, err := e.Compute(Input{Now: now, Rows: procurementRows()})
	require.NoError(t, err)

	filtered, err := e.Compute(Input{
		Now:     now,
		Rows:    procurementRows(),
		Filters: model.Filters{Supplier: "acme"},
	})
	require.NoError(t, err)

	// The Pareto baseline is global; narrowing the view must not move it.
	assert.Equal(t, unfiltered.Tail, filtered.Tail)

	// The metrics, by contrast, see only the filtered rows.
	assert.Less(t, filtered.TotalSpend, unfiltered.TotalSpend)
	require.Len(t, filtered.SupplierDistribution, 1)
	assert.Equal(t, "Acme Industrial", filtered.SupplierDistribution[0].Name)
}

func TestEngineComputeMissingContractColumnDisablesCompliance(t *testing.T) {
	// Vendor and amount only: no contract column resolves, so the
	// consolidation heuristic must stay silent instead of treating the
	// whole dataset as off-contract spend.
	rows := []model.Row{
		{"Vendor Name": "Acme Industrial", "Invoice Amount": 200000.0},
		{"Vendor Name": "CloudSoft", "Invoice Amount": 100000.0},
	}

	vm, err := New().Compute(Input{Currency: "INR", Rows: rows})
	require.NoError(t, err)

	for _, o := range vm.Opportunities {
		assert.NotEqual(t, model.BucketCompliance, o.Bucket)
	}
	assert.InDelta(t, 300000, vm.TotalSpend, 1e-6)
}

func TestEngineComputeEmptyInput(t *testing.T) {
	e := New()
	vm, err := e.Compute(Input{})
	require.NoError(t, err)
	require.NotNil(t, vm)

	assert.Zero(t, vm.TotalSpend)
	assert.Zero(t, vm.TransactionCount)
	assert.Empty(t, vm.SupplierDistribution)
	assert.Empty(t, vm.MonthlySpend)
	assert.Empty(t, vm.Opportunities)
	assert.NotEmpty(t, vm.Cards) // structural cards render with zeros
}

func TestEngineComputeMalformedClusterIsTypedError(t *testing.T) {
	e := New()
	_, err := e.Compute(Input{
		Rows: procurementRows(),
		Clusters: []model.VendorCluster{
			{MasterName: "Acme Industrial", Variants: []string{"ACME Corp"}},
			{MasterName: "", Variants: []string{"Ghost"}},
		},
	})
	require.Error(t, err)

	var clusterErr *common.ClusterError
	require.True(t, errors.As(err, &clusterErr))
	assert.Equal(t, 1, clusterErr.Index)
	assert.True(t, errors.Is(err, common.ErrInvalidClusters))
}

func TestEngineComputeValidClustersPassThrough(t *testing.T) {
	clusters := []model.VendorCluster{
		{MasterName: "Acme Industrial", Variants: []string{"ACME Corp", "Acme Ind."}, ContractStatus: model.ContractStatusActive, TotalSpend: 180000, TransactionCount: 2},
	}

	e := New()
	vm, err := e.Compute(Input{Rows: procurementRows(), Clusters: clusters})
	require.NoError(t, err)
	assert.Equal(t, clusters, vm.Clusters)
}

func TestEngineComputeDateRange(t *testing.T) {
	e := New()
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	all, err := e.Compute(Input{Now: now, Rows: procurementRows()})
	require.NoError(t, err)

	recent, err := e.Compute(Input{Now: now, Rows: procurementRows(), DateRange: model.Range6M})
	require.NoError(t, err)

	// All five rows fall within six months of the latest date here, so the
	// trimmed view equals the full one.
	assert.Equal(t, all.TotalSpend, recent.TotalSpend)
}

func TestEngineComputeDeterministic(t *testing.T) {
	e := New()
	in := Input{Now: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), Rows: procurementRows()}

	first, err := e.Compute(in)
	require.NoError(t, err)
	second, err := e.Compute(in)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("%+v", first), fmt.Sprintf("%+v", second))
}
