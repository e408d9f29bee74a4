package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{name: "plain", amount: 1234.5, currency: "INR", want: "INR 1,234.50"},
		{name: "millions", amount: 12345678.91, currency: "INR", want: "INR 12,345,678.91"},
		{name: "small", amount: 42, currency: "USD", want: "USD 42.00"},
		{name: "zero", amount: 0, currency: "INR", want: "INR 0.00"},
		{name: "negative", amount: -1234.56, currency: "INR", want: "INR -1,234.56"},
		{name: "negative fraction", amount: -0.5, currency: "INR", want: "INR -0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.amount, tt.currency))
		})
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Supplier", "Spend"},
		[][]string{
			{"Acme Industrial", "120000"},
			{"Bolt Works", "100000"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Supplier")
	assert.Contains(t, lines[1], "Acme Industrial")
	assert.Contains(t, lines[2], "Bolt Works")
}

func TestRenderTableEmpty(t *testing.T) {
	out := RenderTable([]string{"Name"}, nil)
	assert.Contains(t, out, "Name")
}
