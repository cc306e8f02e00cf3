package pricetrack

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Ranked is the published projection of a Variation.
type Ranked struct {
	ProductID         string              `json:"product_id"`
	Name              string              `json:"name"`
	Brand             string              `json:"brand"`
	Category          string              `json:"category"`
	PriceBefore       decimal.Decimal     `json:"price_before"`
	PriceAfter        decimal.Decimal     `json:"price_after"`
	PriceAfterCurrent decimal.NullDecimal `json:"price_after_current"`
	DiffAbs           decimal.Decimal     `json:"diff_abs"`
	DiffPct           decimal.Decimal     `json:"diff_pct"`
}

// TopN returns the first n variations sorted by DiffPct.
//
// Descending order (ascending=false) lists the largest increases first,
// ascending order lists the largest decreases first. Equal DiffPct keep the
// order of vs.
func TopN(vs []Variation, n int, ascending bool) []Ranked {
	sorted := slices.Clone(vs)
	slices.SortStableFunc(sorted, func(a, b Variation) int {
		if ascending {
			return a.DiffPct.Cmp(b.DiffPct)
		}
		return b.DiffPct.Cmp(a.DiffPct)
	})
	if n < len(sorted) {
		sorted = sorted[:max(n, 0)]
	}
	ranked := make([]Ranked, 0, len(sorted))
	for _, v := range sorted {
		ranked = append(ranked, Ranked{
			ProductID:         v.ProductID,
			Name:              v.Name,
			Brand:             v.Brand,
			Category:          v.Category,
			PriceBefore:       v.PriceBefore,
			PriceAfter:        v.PriceAfter,
			PriceAfterCurrent: v.PriceAfterCurrent,
			DiffAbs:           v.DiffAbs,
			DiffPct:           v.DiffPct,
		})
	}
	return ranked
}
