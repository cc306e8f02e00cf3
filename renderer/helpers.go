package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// formatPrice formats a price in the given currency, e.g. "$1,234.50".
func formatPrice(value decimal.Decimal, code string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, code).Currency()
	return cur.Formatter().Format(value.Shift(int32(cur.Fraction)).IntPart())
}

// formatChange formats a percent change with a direction marker, e.g. "▲ +5.00%".
func formatChange(pct decimal.Decimal) string {
	switch pct.Sign() {
	case 1:
		return "▲ +" + pct.StringFixed(2) + "%"
	case -1:
		return "▼ " + pct.StringFixed(2) + "%"
	default:
		return "= " + pct.StringFixed(2) + "%"
	}
}

// formatOptionalChange is formatChange for a figure that might not exist.
func formatOptionalChange(pct *decimal.Decimal) string {
	if pct == nil {
		return "n/a"
	}
	return formatChange(*pct)
}
