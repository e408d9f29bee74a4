package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input any
		name  string
		want  float64
	}{
		{name: "plain float", input: 1234.56, want: 1234.56},
		{name: "int", input: 42, want: 42},
		{name: "int64", input: int64(7), want: 7},
		{name: "nil", input: nil, want: 0},
		{name: "numeric string", input: "1234.56", want: 1234.56},
		{name: "currency symbol", input: "₹1,234.56", want: 1234.56},
		{name: "dollar and commas", input: "$12,000", want: 12000},
		{name: "negative", input: "-500", want: -500},
		{name: "parenthesized junk", input: "INR 2,500.00", want: 2500},
		{name: "whitespace", input: "  99.9  ", want: 99.9},
		{name: "empty string", input: "", want: 0},
		{name: "garbage", input: "n/a", want: 0},
		{name: "lone dash", input: "-", want: 0},
		{name: "lone dot", input: ".", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseAmount(tt.input), 1e-9)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input any
		want  *time.Time
		name  string
	}{
		{
			name:  "dd/mm/yyyy",
			input: "15/04/2024",
			want:  datePtr(2024, time.April, 15),
		},
		{
			name:  "dd-mm-yyyy",
			input: "15-04-2024",
			want:  datePtr(2024, time.April, 15),
		},
		{
			name:  "two digit year",
			input: "01/02/24",
			want:  datePtr(2024, time.February, 1),
		},
		{
			name:  "mm/dd swap when middle cannot be month",
			input: "25/12/2023",
			want:  datePtr(2023, time.December, 25),
		},
		{
			name:  "swapped american style",
			input: "12/25/2023",
			want:  datePtr(2023, time.December, 25),
		},
		{
			name:  "iso date",
			input: "2024-04-15",
			want:  datePtr(2024, time.April, 15),
		},
		{
			name:  "named month",
			input: "Apr 15, 2024",
			want:  datePtr(2024, time.April, 15),
		},
		{
			name:  "excel serial for 2024-01-01",
			input: "45292",
			want:  datePtr(2024, time.January, 1),
		},
		{
			name:  "excel serial as float",
			input: 45292.0,
			want:  datePtr(2024, time.January, 1),
		},
		{
			name:  "small number is not a serial",
			input: "150",
			want:  nil,
		},
		{
			name:  "huge number is not a serial",
			input: "99999",
			want:  nil,
		},
		{
			name:  "garbage",
			input: "not a date",
			want:  nil,
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "nil",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want.Year(), got.Year())
			assert.Equal(t, tt.want.Month(), got.Month())
			assert.Equal(t, tt.want.Day(), got.Day())
		})
	}
}

func TestParseDateNativeTime(t *testing.T) {
	in := time.Date(2024, time.June, 3, 10, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	got := ParseDate(in)
	require.NotNil(t, got)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(in))

	assert.Nil(t, ParseDate(time.Time{}))
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
