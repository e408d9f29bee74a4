package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens/internal/model"
)

// spendRows builds one row per supplier with the given global spend.
func spendRows(spend map[string]float64) []ViewRow {
	out := make([]ViewRow, 0, len(spend))
	for name, amount := range spend {
		out = append(out, ViewRow{Supplier: name, Amount: amount})
	}
	return out
}

func TestTailClassifyBanding(t *testing.T) {
	// Whale holds 79% of spend; Mid starts at cumulative 0.79 (head band),
	// Small1 starts at 0.94 (mid band), Small2 at 0.99 (long tail).
	all := spendRows(map[string]float64{
		"Whale":  79000,
		"Mid":    15000,
		"Small1": 5000,
		"Small2": 1000,
	})
	global := buildGlobalIndex(all, DefaultThresholds())
	tc := newTailClassifier(DefaultThresholds())

	tail := tc.classify(global)

	assert.Equal(t, []string{"Whale", "Mid"}, tail.Head)
	assert.Equal(t, []string{"Small1"}, tail.MidTail)
	assert.Equal(t, []string{"Small2"}, tail.LongTail)
}

func TestTailClassifyFinalTailAndSpend(t *testing.T) {
	all := spendRows(map[string]float64{
		"Whale":  90000,
		"Small1": 6000,
		"Small2": 4000,
	})
	global := buildGlobalIndex(all, DefaultThresholds())
	tc := newTailClassifier(DefaultThresholds())

	tail := tc.classify(global)

	// Both small suppliers sit past the 80% cumulative cutoff and fall under
	// the absolute spend threshold.
	assert.ElementsMatch(t, []string{"Small1", "Small2"}, tail.FinalTail)
	assert.InDelta(t, 10000, tail.TailSpend, 1e-9)
	assert.True(t, tail.InTail("Small1"))
	assert.False(t, tail.InTail("Whale"))
}

func TestTailClassifyProtectedSuppliersExcluded(t *testing.T) {
	all := spendRows(map[string]float64{
		"Whale":               90000,
		"Safety Supplies Ltd": 6000,
		"Ordinary Tail Co":    4000,
	})
	global := buildGlobalIndex(all, DefaultThresholds())
	tc := newTailClassifier(DefaultThresholds())

	tail := tc.classify(global)

	assert.NotContains(t, tail.FinalTail, "Safety Supplies Ltd")
	assert.Contains(t, tail.FinalTail, "Ordinary Tail Co")
	// Protected suppliers still appear in the Pareto bands.
	assert.Contains(t, append(tail.MidTail, tail.LongTail...), "Safety Supplies Ltd")
}

func TestTailClassifyProtectedCategoryExcluded(t *testing.T) {
	all := []ViewRow{
		{Supplier: "Whale", Amount: 90000},
		{Supplier: "Plain Name Co", Category: "Critical Spares", Amount: 5000},
		{Supplier: "Tail Co", Category: "Stationery", Amount: 5000},
	}
	global := buildGlobalIndex(all, DefaultThresholds())
	tc := newTailClassifier(DefaultThresholds())

	tail := tc.classify(global)

	assert.NotContains(t, tail.FinalTail, "Plain Name Co")
	assert.Contains(t, tail.FinalTail, "Tail Co")
}

func TestTailClassifyParetoCurve(t *testing.T) {
	all := spendRows(map[string]float64{
		"A": 5000,
		"B": 3000,
		"C": 2000,
	})
	global := buildGlobalIndex(all, DefaultThresholds())
	tc := newTailClassifier(DefaultThresholds())

	tail := tc.classify(global)

	require.Len(t, tail.Pareto, 3)
	assert.Equal(t, 1, tail.Pareto[0].Rank)
	assert.Equal(t, "A", tail.Pareto[0].Supplier)
	assert.InDelta(t, 50, tail.Pareto[0].CumulativePct, 1e-9)
	assert.InDelta(t, 80, tail.Pareto[1].CumulativePct, 1e-9)
	assert.InDelta(t, 100, tail.Pareto[2].CumulativePct, 1e-9)

	// Monotonically non-decreasing by construction.
	for i := 1; i < len(tail.Pareto); i++ {
		assert.GreaterOrEqual(t, tail.Pareto[i].CumulativePct, tail.Pareto[i-1].CumulativePct)
	}
}

func TestTailClassifyEmptyDataset(t *testing.T) {
	global := buildGlobalIndex(nil, DefaultThresholds())
	tc := newTailClassifier(DefaultThresholds())

	tail := tc.classify(global)

	assert.Empty(t, tail.Head)
	assert.Empty(t, tail.FinalTail)
	assert.Empty(t, tail.Pareto)
	assert.Zero(t, tail.TailSpend)
}

func TestFlagTailTransactions(t *testing.T) {
	tc := newTailClassifier(DefaultThresholds())
	tail := model.TailClassification{FinalTail: []string{"Tail Co"}}

	view := []ViewRow{
		{Supplier: "Big Co", Item: "Bulk Steel", Amount: 100000},
		{Supplier: "Big Co", Item: "Office Chairs", Amount: 30000},       // small transaction
		{Supplier: "Tail Co", Item: "Misc Parts", Amount: 75000},         // tail supplier
		{Supplier: "Big Co", Item: "Safety Harness", Amount: 10000},      // protected item
		{Supplier: "Tail Co", Item: "Critical Actuator", Amount: 20000},  // protected item
	}

	flags := tc.flagTailTransactions(view, &tail)

	require.Len(t, flags, 2)
	assert.Equal(t, "Big Co", flags[0].Supplier)
	assert.Equal(t, "Office Chairs", flags[0].Item)
	assert.Equal(t, "Tail Co", flags[1].Supplier)
	assert.Equal(t, "Misc Parts", flags[1].Item)
}
