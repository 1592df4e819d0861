package finance

import (
	"fmt"
	"strings"
)

// FormatCurrency renders an amount as a dollar string with thousands
// separators and two decimals, e.g. -1234.5 -> "-$1,234.50".
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	if negative {
		return "-$" + b.String() + "." + fracPart
	}
	return "$" + b.String() + "." + fracPart
}

// Percentage returns value as a percentage of total, 0 when total is 0.
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total * 100
}

// Growth returns the percentage change from previous to current,
// 0 when previous is 0.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
