package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spendlens/spendlens/internal/model"
)

func TestResolverAutoDetection(t *testing.T) {
	rows := []model.Row{{
		"Invoice Amount":   125000.0,
		"Vendor Name":      "Acme Industrial",
		"Posting Date":     "15/04/2024",
		"Spend Category":   "Direct Materials",
		"Unit Price":       125.0,
		"Qty":              1000.0,
		"Contract Number":  "CN-1001",
		"PO Number":        "PO-5001",
		"Payment Terms":    "Net 30",
		"Business Unit":    "Plant A",
		"Site":             "Pune",
		"Item Description": "Steel bolts M8",
	}}

	r := NewResolver(nil, rows)

	tests := []struct {
		field string
		want  string
	}{
		{model.FieldAmount, "Invoice Amount"},
		{model.FieldSupplier, "Vendor Name"},
		{model.FieldDate, "Posting Date"},
		{model.FieldCategoryL1, "Spend Category"},
		{model.FieldUnitPrice, "Unit Price"},
		{model.FieldQuantity, "Qty"},
		{model.FieldContractRef, "Contract Number"},
		{model.FieldPONumber, "PO Number"},
		{model.FieldPaymentTerms, "Payment Terms"},
		{model.FieldBusinessUnit, "Business Unit"},
		{model.FieldLocation, "Site"},
		{model.FieldItemDescription, "Item Description"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.field))
		})
	}
}

func TestResolverExplicitMappingWins(t *testing.T) {
	rows := []model.Row{{
		"Invoice Amount": 100.0,
		"Gross Figure":   120.0,
		"Vendor":         "Acme",
	}}

	mapping := model.FieldMapping{model.FieldAmount: "Gross Figure"}
	r := NewResolver(mapping, rows)

	assert.Equal(t, "Gross Figure", r.Resolve(model.FieldAmount))
	assert.Equal(t, "Vendor", r.Resolve(model.FieldSupplier))
}

func TestResolverUnresolvableField(t *testing.T) {
	rows := []model.Row{{"colA": 1.0, "colB": "x"}}
	r := NewResolver(nil, rows)

	assert.Equal(t, "", r.Resolve(model.FieldContractRef))
	assert.False(t, r.Available(model.FieldContractRef))
}

func TestResolverEmptyDataset(t *testing.T) {
	r := NewResolver(nil, nil)
	assert.Equal(t, "", r.Resolve(model.FieldAmount))
}

func TestResolverMappingToMissingColumnStillWins(t *testing.T) {
	// A mapping that points at a column absent from the data is honored as
	// written; the field then reads as blank for every row.
	rows := []model.Row{{"Amount": 10.0}}
	mapping := model.FieldMapping{model.FieldSupplier: "No Such Column"}
	r := NewResolver(mapping, rows)

	assert.Equal(t, "No Such Column", r.Resolve(model.FieldSupplier))
}
