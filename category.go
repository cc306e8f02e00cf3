package pricetrack

import (
	"slices"

	"github.com/shopspring/decimal"
)

// CategorySummary aggregates the variations of a main category.
type CategorySummary struct {
	Category    string          `json:"category"`
	MeanDiffPct decimal.Decimal `json:"mean_diff_pct"`
	CountUp     int             `json:"count_up"`
	CountDown   int             `json:"count_down"`
	CountFlat   int             `json:"count_flat"`
	Total       int             `json:"total"`
}

// Summarize groups variations by main category.
//
// Categories follow the priority list; categories not in the list come last,
// in order of first appearance. Categories without variation are omitted.
func Summarize(vs []Variation, priority []string) []CategorySummary {
	groups := groupByKey(vs, func(v Variation) string { return v.MainCategory })

	summaries := make([]CategorySummary, 0, len(groups))
	for _, g := range groups {
		mean, _ := MeanPct(g.items)
		moves := CountMoves(g.items)
		summaries = append(summaries, CategorySummary{
			Category:    g.key,
			MeanDiffPct: round2(mean),
			CountUp:     moves.Up,
			CountDown:   moves.Down,
			CountFlat:   moves.Flat,
			Total:       len(g.items),
		})
	}
	sortBy(summaries, func(s CategorySummary) int { return categoryRank(priority, s.Category) })
	return summaries
}

// categoryRank returns the position of category in the priority list, or
// len(priority) for an unlisted category.
func categoryRank(priority []string, category string) int {
	if i := slices.Index(priority, category); i >= 0 {
		return i
	}
	return len(priority)
}

type group[T any] struct {
	key   string
	items []T
}

// groupByKey groups items by key, groups are in order of first appearance.
func groupByKey[T any](items []T, key func(T) string) []group[T] {
	var groups []group[T]
	index := make(map[string]int)
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[T]{key: k})
		}
		groups[i].items = append(groups[i].items, item)
	}
	return groups
}

// sortBy sorts items by an integer rank. The sort is stable: items with the
// same rank keep their relative order.
func sortBy[T any](items []T, rank func(T) int) {
	slices.SortStableFunc(items, func(a, b T) int { return rank(a) - rank(b) })
}
