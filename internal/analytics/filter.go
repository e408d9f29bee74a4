package analytics

import (
	"strings"
	"time"

	"github.com/spendlens/spendlens/internal/model"
)

// applyFilters produces the active row view. It never mutates its input;
// unmatched filter fields are no-ops.
func applyFilters(view []ViewRow, f model.Filters) []ViewRow {
	if f.IsZero() {
		return view
	}

	supplier := strings.ToLower(strings.TrimSpace(f.Supplier))
	category := strings.ToLower(strings.TrimSpace(f.Category))

	out := make([]ViewRow, 0, len(view))
	for _, vr := range view {
		if supplier != "" && !strings.Contains(strings.ToLower(vr.Supplier), supplier) {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(vr.Category), category) {
			continue
		}
		if f.MinAmount != nil && vr.Amount < *f.MinAmount {
			continue
		}
		if f.MaxAmount != nil && vr.Amount > *f.MaxAmount {
			continue
		}
		out = append(out, vr)
	}
	return out
}

// FilterRows applies the user-selected filters to raw rows and returns the
// surviving raw rows. Collaborators that receive the filtered row set (the
// spreadsheet exporter, drill-down views) use this to stay consistent with
// the engine's own active view.
func FilterRows(rows []model.Row, mapping model.FieldMapping, f model.Filters, dateRange model.DateRange) []model.Row {
	cols := resolveColumns(NewResolver(mapping, rows))
	view := trimToRange(applyFilters(buildView(rows, cols), f), dateRange)
	out := make([]model.Row, 0, len(view))
	for _, vr := range view {
		out = append(out, vr.Raw)
	}
	return out
}

// trimToRange drops rows older than the selected range. The anchor is the
// latest date present in the view, not the wall clock; rows without a
// parseable date always survive trimming so they keep counting toward spend
// totals.
func trimToRange(view []ViewRow, dateRange model.DateRange) []ViewRow {
	if dateRange == model.RangeAll || dateRange == "" {
		return view
	}

	var latest time.Time
	for _, vr := range view {
		if vr.Date != nil && vr.Date.After(latest) {
			latest = *vr.Date
		}
	}
	if latest.IsZero() {
		return view
	}

	var cutoff time.Time
	switch dateRange {
	case model.Range12M:
		cutoff = latest.AddDate(-1, 0, 0)
	case model.Range6M:
		cutoff = latest.AddDate(0, -6, 0)
	case model.RangeYTD:
		cutoff = fiscalYearStart(latest)
	default:
		return view
	}

	out := make([]ViewRow, 0, len(view))
	for _, vr := range view {
		if vr.Date == nil || !vr.Date.Before(cutoff) {
			out = append(out, vr)
		}
	}
	return out
}
