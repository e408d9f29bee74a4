package analytics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Excel serial dates count days from 1899-12-30; serial 25569 is the Unix
// epoch. Serials outside [20000, 60000) (roughly 1954..2064) are treated as
// plain numbers, not dates.
const (
	excelSerialMin   = 20000
	excelSerialMax   = 60000
	excelEpochOffset = 25569
	secondsPerDay    = 86400
)

var (
	amountStripRe = regexp.MustCompile(`[^0-9.\-]`)
	dmyDateRe     = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})$`)
)

// nativeDateLayouts are tried in order after serial and DD/MM parsing fail.
var nativeDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"January 2, 2006",
}

// ParseAmount coerces a raw cell value to a numeric amount. Every character
// that is not a digit, '.' or '-' is stripped before parsing; anything still
// unparseable degrades to 0. Completeness of the row count outranks numeric
// purity, so this never returns an error.
func ParseAmount(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}

	s := amountStripRe.ReplaceAllString(strings.TrimSpace(toString(v)), "")
	if s == "" || s == "-" || s == "." {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseDate extracts a date from a raw cell value. Recognized forms, in
// priority order: Excel serial numbers, DD/MM/YYYY-like strings, then the
// native layouts above. Unparseable values yield nil; the row then drops
// out of time-series and fiscal-year aggregation but still counts toward
// spend totals.
func ParseDate(v any) *time.Time {
	if v == nil {
		return nil
	}
	if t, ok := v.(time.Time); ok {
		if t.IsZero() {
			return nil
		}
		u := t.UTC()
		return &u
	}

	s := strings.TrimSpace(toString(v))
	if s == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial >= excelSerialMin && serial < excelSerialMax {
			t := time.Unix(int64((serial-excelEpochOffset)*secondsPerDay), 0).UTC()
			return &t
		}
	}

	if m := dmyDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		// Tolerate MM/DD inputs by swapping when the middle field cannot
		// be a month.
		if month > 12 && day <= 12 {
			day, month = month, day
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			return &t
		}
	}

	for _, layout := range nativeDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}
