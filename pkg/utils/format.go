// Package utils provides shared utility functions.
package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatDollars formats an amount as US dollars with thousands separators, e.g. $1,234.50.
func FormatDollars(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	str := amount.Abs().StringFixed(2)
	parts := strings.Split(str, ".")

	result := "$" + groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPrice formats an optional limit price, or "MKT" when none is set.
func FormatPrice(price decimal.NullDecimal) string {
	if !price.Valid {
		return "MKT"
	}
	return price.Decimal.StringFixed(2)
}

// FormatStrike formats a strike without trailing zeros (100, 102.5).
func FormatStrike(strike decimal.Decimal) string {
	return strike.String()
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
