package exporter

import (
	"fmt"
	"math"
	"strings"
)

// formatCurrency renders a whole-dollar figure with thousands separators.
func formatCurrency(f float64) string {
	return "$" + groupThousands(fmt.Sprintf("%.0f", math.Round(f)))
}

// formatNumber renders a rounded count with thousands separators.
func formatNumber(f float64) string {
	return groupThousands(fmt.Sprintf("%.0f", math.Round(f)))
}

// formatPercent renders a derived share with two decimals.
func formatPercent(f float64) string {
	return fmt.Sprintf("%.2f%%", f)
}

// formatPrice keeps more precision for small token prices: two decimals at a
// dollar and above, six below.
func formatPrice(f float64) string {
	if f >= 1 {
		return fmt.Sprintf("$%.2f", f)
	}
	return fmt.Sprintf("$%.6f", f)
}

func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}
