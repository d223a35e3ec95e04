package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spread-trader/internal/agents"
	"spread-trader/pkg/utils"
)

// FormatDate formats a date.
func FormatDate(t time.Time) string {
	return t.Format("02-Jan-2006")
}

// FormatDateTime formats a datetime in local time.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("02-Jan-2006 15:04:05")
}

// FormatLimit formats an order's price column: "MKT" when absent.
func FormatLimit(price string) string {
	if price == "" {
		return "MKT"
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return price
	}
	return utils.FormatDollars(d)
}

// FormatStrikes joins the strikes of a built order, e.g. "90/95/105/110".
func FormatStrikes(legs []agents.LegResult) string {
	strikes := make([]string, len(legs))
	for i, leg := range legs {
		strikes[i] = leg.Strike
	}
	return strings.Join(strikes, "/")
}

// FormatQuantity formats a per-leg contract quantity.
func FormatQuantity(qty int) string {
	if qty == 1 {
		return "1 contract"
	}
	return fmt.Sprintf("%d contracts", qty)
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
