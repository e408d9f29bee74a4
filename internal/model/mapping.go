package model

// Semantic field names the analytics engine understands. A FieldMapping binds
// each one to an actual column key in the imported data.
const (
	FieldAmount          = "amount"
	FieldSupplier        = "supplier"
	FieldDate            = "date"
	FieldCategoryL1      = "category_l1"
	FieldUnitPrice       = "unit_price"
	FieldQuantity        = "quantity"
	FieldContractRef     = "contract_ref"
	FieldPONumber        = "po_number"
	FieldPaymentTerms    = "payment_terms"
	FieldBusinessUnit    = "business_unit"
	FieldLocation        = "location"
	FieldItemDescription = "item_description"
)

// SemanticFields lists every semantic field name, in display order.
var SemanticFields = []string{
	FieldAmount,
	FieldSupplier,
	FieldDate,
	FieldCategoryL1,
	FieldUnitPrice,
	FieldQuantity,
	FieldContractRef,
	FieldPONumber,
	FieldPaymentTerms,
	FieldBusinessUnit,
	FieldLocation,
	FieldItemDescription,
}

// FieldMapping maps semantic field names to raw column keys. It may be
// partial; absent entries fall back to header auto-detection.
type FieldMapping map[string]string

// Column returns the mapped column key for a semantic field, or "".
func (m FieldMapping) Column(field string) string {
	if m == nil {
		return ""
	}
	return m[field]
}

// Clone returns a copy of the mapping.
func (m FieldMapping) Clone() FieldMapping {
	out := make(FieldMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
