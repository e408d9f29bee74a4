package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		input string
		want  DateRange
	}{
		{"all", RangeAll},
		{"ALL", RangeAll},
		{"12m", Range12M},
		{" 12M ", Range12M},
		{"6m", Range6M},
		{"ytd", RangeYTD},
		{"", RangeAll},
		{"bogus", RangeAll},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDateRange(tt.input))
		})
	}
}

func TestFiltersIsZero(t *testing.T) {
	assert.True(t, Filters{}.IsZero())
	assert.False(t, Filters{Supplier: "acme"}.IsZero())
	assert.False(t, Filters{Category: "it"}.IsZero())

	minA := 0.0
	assert.False(t, Filters{MinAmount: &minA}.IsZero())
}
