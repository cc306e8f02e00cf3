package pricetrack

import (
	"github.com/shopspring/decimal"
)

// Variation is the price move of one product between two snapshots.
type Variation struct {
	ProductID         string
	Name              string
	Brand             string
	Category          string
	MainCategory      string
	PriceBefore       decimal.Decimal
	PriceAfter        decimal.Decimal
	PriceAfterCurrent decimal.NullDecimal
	DiffAbs           decimal.Decimal // PriceAfter - PriceBefore, rounded to 2 decimals
	DiffPct           decimal.Decimal // DiffAbs in percent of PriceBefore, rounded to 2 decimals
}

// Compare computes the variation of every product present in both snapshots.
//
// Descriptive fields come from 'after'. Variations are in the order of 'after'.
// Products missing on either side are ignored, so the result is empty if the
// snapshots do not overlap.
func Compare(after, before Snapshot) []Variation {
	pairs := joinByKey(after.Records, before.Records, func(r Record) string { return r.ProductID })
	vs := make([]Variation, 0, len(pairs))
	for _, p := range pairs {
		a, b := p.left, p.right
		if !a.RegularPrice.IsPositive() || !b.RegularPrice.IsPositive() {
			continue
		}
		diff := round2(a.RegularPrice.Sub(b.RegularPrice))
		vs = append(vs, Variation{
			ProductID:         a.ProductID,
			Name:              a.Name,
			Brand:             a.Brand,
			Category:          a.Category,
			MainCategory:      a.MainCategory,
			PriceBefore:       b.RegularPrice,
			PriceAfter:        a.RegularPrice,
			PriceAfterCurrent: a.CurrentPrice,
			DiffAbs:           diff,
			DiffPct:           round2(diff.Div(b.RegularPrice).Mul(hundred)),
		})
	}
	return vs
}

// MeanPct returns the average DiffPct, unrounded, or false if there is no variation.
func MeanPct(vs []Variation) (decimal.Decimal, bool) {
	if len(vs) == 0 {
		return decimal.Zero, false
	}
	sum := decimal.Zero
	for _, v := range vs {
		sum = sum.Add(v.DiffPct)
	}
	return sum.Div(decimal.NewFromInt(int64(len(vs)))), true
}

// Moves counts products whose price went up, down or stayed flat.
type Moves struct {
	Up, Down, Flat int
}

// CountMoves counts the direction of each variation.
func CountMoves(vs []Variation) Moves {
	var m Moves
	for _, v := range vs {
		switch v.DiffPct.Sign() {
		case 1:
			m.Up++
		case -1:
			m.Down++
		default:
			m.Flat++
		}
	}
	return m
}

type pair[T any] struct{ left, right T }

// joinByKey pairs the elements of left and right sharing the same key, in the order of left.
// When right has several elements with the same key, the first one is used.
func joinByKey[T any](left, right []T, key func(T) string) []pair[T] {
	index := make(map[string]int, len(right))
	for i, r := range right {
		k := key(r)
		if _, exists := index[k]; !exists {
			index[k] = i
		}
	}
	pairs := make([]pair[T], 0, min(len(left), len(right)))
	for _, l := range left {
		if i, ok := index[key(l)]; ok {
			pairs = append(pairs, pair[T]{l, right[i]})
		}
	}
	return pairs
}
