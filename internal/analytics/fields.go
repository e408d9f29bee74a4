package analytics

import (
	"regexp"

	"github.com/spendlens/spendlens/internal/model"
)

// autoDetect holds the per-field header regexes used when the explicit
// mapping has no entry for a semantic field. Patterns are matched
// case-insensitively against each header of the first row, first hit wins.
var autoDetect = map[string]*regexp.Regexp{
	model.FieldAmount:          regexp.MustCompile(`(?i)^amount$|total.?amount|net.?amount|invoice.?amount|value`),
	model.FieldSupplier:        regexp.MustCompile(`(?i)supplier|vendor|seller|payee`),
	model.FieldDate:            regexp.MustCompile(`(?i)date|posted|invoiced`),
	model.FieldCategoryL1:      regexp.MustCompile(`(?i)category|commodity|spend.?type`),
	model.FieldUnitPrice:       regexp.MustCompile(`(?i)unit.?price|unit.?cost|rate`),
	model.FieldQuantity:        regexp.MustCompile(`(?i)^qty$|quantity|^units?$`),
	model.FieldContractRef:     regexp.MustCompile(`(?i)contract|agreement`),
	model.FieldPONumber:        regexp.MustCompile(`(?i)po.?number|purchase.?order|^po$|invoice.?no`),
	model.FieldPaymentTerms:    regexp.MustCompile(`(?i)payment.?terms?|terms`),
	model.FieldBusinessUnit:    regexp.MustCompile(`(?i)business.?unit|division|department|cost.?center`),
	model.FieldLocation:        regexp.MustCompile(`(?i)location|site|plant|region|city`),
	model.FieldItemDescription: regexp.MustCompile(`(?i)item|material|description|part|sku|product`),
}

// Resolver resolves semantic field names to actual column keys. Explicit
// mapping entries win; absent entries fall back to regex auto-detection
// against the headers of the first sample row. An unresolvable field yields
// "": callers treat that as "feature unavailable", never as zero.
type Resolver struct {
	mapping  model.FieldMapping
	headers  []string
	resolved map[string]string
}

// NewResolver builds a resolver over the explicit mapping and sample rows.
func NewResolver(mapping model.FieldMapping, rows []model.Row) *Resolver {
	r := &Resolver{
		mapping:  mapping,
		resolved: make(map[string]string, len(model.SemanticFields)),
	}
	if len(rows) > 0 {
		r.headers = rows[0].Headers()
	}
	return r
}

// Resolve returns the column key for a semantic field, or "" when neither
// the mapping nor auto-detection can locate one.
func (r *Resolver) Resolve(field string) string {
	if col, ok := r.resolved[field]; ok {
		return col
	}
	col := r.mapping.Column(field)
	if col == "" {
		if re, ok := autoDetect[field]; ok {
			for _, h := range r.headers {
				if re.MatchString(h) {
					col = h
					break
				}
			}
		}
	}
	r.resolved[field] = col
	return col
}

// Available reports whether the field resolves to a column.
func (r *Resolver) Available(field string) bool {
	return r.Resolve(field) != ""
}
