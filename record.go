package pricetrack

import (
	"github.com/etnz/pricetrack/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Uncategorized is the main category given to products that come without one.
const Uncategorized = "Sin categoría"

// Record is the price of a product on a given day, as stored in the ledger.
type Record struct {
	ProductID    string
	SKU          string
	EAN          string
	Name         string
	Brand        string
	Category     string
	MainCategory string
	CurrentPrice decimal.NullDecimal // selling price, possibly discounted
	RegularPrice decimal.Decimal     // list price, always positive
	Date         date.Date
}

// round2 rounds to two decimal places, half away from zero.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

var hundred = decimal.NewFromInt(100)
