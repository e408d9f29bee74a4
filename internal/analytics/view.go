package analytics

import (
	"time"

	"github.com/spendlens/spendlens/internal/model"
)

// columns holds the resolved column key for every semantic field. An empty
// key means the field is unavailable in this dataset.
type columns struct {
	amount       string
	supplier     string
	date         string
	category     string
	unitPrice    string
	quantity     string
	contractRef  string
	poNumber     string
	paymentTerms string
	businessUnit string
	location     string
	item         string
}

func resolveColumns(r *Resolver) columns {
	return columns{
		amount:       r.Resolve(model.FieldAmount),
		supplier:     r.Resolve(model.FieldSupplier),
		date:         r.Resolve(model.FieldDate),
		category:     r.Resolve(model.FieldCategoryL1),
		unitPrice:    r.Resolve(model.FieldUnitPrice),
		quantity:     r.Resolve(model.FieldQuantity),
		contractRef:  r.Resolve(model.FieldContractRef),
		poNumber:     r.Resolve(model.FieldPONumber),
		paymentTerms: r.Resolve(model.FieldPaymentTerms),
		businessUnit: r.Resolve(model.FieldBusinessUnit),
		location:     r.Resolve(model.FieldLocation),
		item:         r.Resolve(model.FieldItemDescription),
	}
}

// ViewRow is one transaction with its semantic fields extracted and
// normalized. Rows are normalized exactly once per computation; every later
// stage works from this struct instead of re-reading raw cells.
type ViewRow struct {
	Raw model.Row

	Date         *time.Time
	Supplier     string
	Category     string
	Item         string
	ContractRef  string
	PONumber     string
	PaymentTerms string
	BusinessUnit string
	Location     string

	Amount    float64
	UnitPrice float64
	Quantity  float64
}

// buildView normalizes every row in a single pass.
func buildView(rows []model.Row, cols columns) []ViewRow {
	out := make([]ViewRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ViewRow{
			Raw:          row,
			Date:         ParseDate(row.Get(cols.date)),
			Supplier:     row.GetString(cols.supplier),
			Category:     row.GetString(cols.category),
			Item:         row.GetString(cols.item),
			ContractRef:  row.GetString(cols.contractRef),
			PONumber:     row.GetString(cols.poNumber),
			PaymentTerms: row.GetString(cols.paymentTerms),
			BusinessUnit: row.GetString(cols.businessUnit),
			Location:     row.GetString(cols.location),
			Amount:       ParseAmount(row.Get(cols.amount)),
			UnitPrice:    ParseAmount(row.Get(cols.unitPrice)),
			Quantity:     ParseAmount(row.Get(cols.quantity)),
		})
	}
	return out
}
