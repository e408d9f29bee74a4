package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSourcing(t *testing.T) {
	view := []ViewRow{
		{Supplier: "Acme", Item: "Bolt M8", Amount: 6000},
		{Supplier: "Bolt Works", Item: "Bolt M8", Amount: 4000},
		{Supplier: "Sole Co", Item: "Custom Valve", Amount: 9000},
		{Supplier: "Acme", Item: "", Amount: 500}, // no item: excluded from sourcing
	}

	s := analyzeSourcing(view)

	assert.Equal(t, 1, s.SingleSourced)
	assert.Equal(t, 1, s.MultiSourced)
	assert.InDelta(t, 9000, s.SingleSourceSpend, 1e-9)

	require.Len(t, s.Items, 2)
	// Items are sorted descending by spend.
	assert.Equal(t, "Bolt M8", s.Items[0].Description)
	assert.False(t, s.Items[0].SingleSource)
	require.Len(t, s.Items[0].Suppliers, 2)
	assert.Equal(t, "Acme", s.Items[0].Suppliers[0].Supplier)
	assert.InDelta(t, 60, s.Items[0].Suppliers[0].SharePct, 1e-9)
	assert.InDelta(t, 40, s.Items[0].Suppliers[1].SharePct, 1e-9)

	assert.Equal(t, "Custom Valve", s.Items[1].Description)
	assert.True(t, s.Items[1].SingleSource)
	assert.InDelta(t, 100, s.Items[1].Suppliers[0].SharePct, 1e-9)
}

func TestAnalyzeSourcingBlankSuppliers(t *testing.T) {
	// An item seen only with blank suppliers is neither single- nor
	// multi-sourced; it still appears in the item list.
	view := []ViewRow{
		{Supplier: "", Item: "Mystery Part", Amount: 1000},
	}

	s := analyzeSourcing(view)

	assert.Zero(t, s.SingleSourced)
	assert.Zero(t, s.MultiSourced)
	require.Len(t, s.Items, 1)
	assert.Empty(t, s.Items[0].Suppliers)
}

func TestAnalyzeSourcingEmptyView(t *testing.T) {
	s := analyzeSourcing(nil)
	assert.Empty(t, s.Items)
	assert.Zero(t, s.SingleSourced)
}
