package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a simple left-aligned table with a styled header row.
// Column widths are derived from the widest cell in each column.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(TableHeaderStyle.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			b.WriteString(TableCellStyle.Render(pad(cell, widths[i])))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatMoney formats an amount with thousands separators and a currency code.
func FormatMoney(amount float64, currency string) string {
	whole := int64(amount)
	frac := amount - float64(whole)
	if frac < 0 {
		frac = -frac
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		whole = -whole
	}

	digits := fmt.Sprintf("%d", whole)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	return fmt.Sprintf("%s %s%s.%02d", currency, sign, strings.Join(parts, ","), int(frac*100+0.5))
}

func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
