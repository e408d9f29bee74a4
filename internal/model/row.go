// Package model defines the core data structures for the spendlens application.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// Row is a single imported purchase transaction with an open schema.
// Cell values keep whatever type the source file produced; fields are
// located by semantic name through a FieldMapping, never by position.
type Row map[string]any

// Headers returns the column keys present on the row, sorted so that
// consumers iterating them behave deterministically.
func (r Row) Headers() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Get returns the raw cell value for a column key, or nil when absent.
func (r Row) Get(column string) any {
	if column == "" {
		return nil
	}
	return r[column]
}

// GetString returns the cell value coerced to a trimmed string.
// Missing cells and nil values become "".
func (r Row) GetString(column string) string {
	v := r.Get(column)
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// Has reports whether the row carries a non-empty value for the column.
func (r Row) Has(column string) bool {
	return r.GetString(column) != ""
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
