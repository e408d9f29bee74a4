package model

import "strings"

// DateRange selects how far back from the latest transaction the metric
// aggregation looks.
type DateRange string

// Supported date ranges. Ranges are measured backward from the newest date
// present in the filtered view, not from the wall clock.
const (
	RangeAll    DateRange = "ALL"
	Range12M    DateRange = "12M"
	Range6M     DateRange = "6M"
	RangeYTD    DateRange = "YTD"
)

// ParseDateRange normalizes user input to a DateRange, defaulting to ALL.
func ParseDateRange(s string) DateRange {
	switch DateRange(strings.ToUpper(strings.TrimSpace(s))) {
	case Range12M:
		return Range12M
	case Range6M:
		return Range6M
	case RangeYTD:
		return RangeYTD
	default:
		return RangeAll
	}
}

// Filters narrows the active row view. Zero values are no-ops: an empty
// substring matches everything and a nil amount bound is unbounded.
type Filters struct {
	Supplier  string
	Category  string
	MinAmount *float64
	MaxAmount *float64
}

// IsZero reports whether the filters leave the view untouched.
func (f Filters) IsZero() bool {
	return f.Supplier == "" && f.Category == "" && f.MinAmount == nil && f.MaxAmount == nil
}
