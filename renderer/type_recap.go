package renderer

import (
	"github.com/etnz/pricetrack"
)

// Recap is the markdown view of a daily run. Values are already formatted.
type Recap struct {
	Date          string         `json:"date"`
	TotalProducts int            `json:"totalProducts"`
	Ingest        *IngestLine    `json:"ingest,omitempty"` // nil when the run did not ingest
	Moves         Moves          `json:"moves"`
	Variations    []Line         `json:"variations"`
	Categories    []CategoryLine `json:"categories"`
	TopUp         []ProductLine  `json:"topUp"`
	TopDown       []ProductLine  `json:"topDown"`
}

// IngestLine sums up the cleaning of an extract.
type IngestLine struct {
	Rows       int `json:"rows"`
	Kept       int `json:"kept"`
	Invalid    int `json:"invalid"`
	Duplicates int `json:"duplicates"`
}

// Moves counts day over day directions.
type Moves struct {
	Up   int `json:"up"`
	Down int `json:"down"`
	Flat int `json:"flat"`
}

// Line is the variation of the catalog over a period.
type Line struct {
	Label    string `json:"label"`
	Baseline string `json:"baseline"`
	Change   string `json:"change"`
}

// CategoryLine is the day over day variation of a main category.
type CategoryLine struct {
	Category string `json:"category"`
	Change   string `json:"change"`
	Up       int    `json:"up"`
	Down     int    `json:"down"`
	Flat     int    `json:"flat"`
	Total    int    `json:"total"`
}

// ProductLine is the price move of a single product.
type ProductLine struct {
	Name   string `json:"name"`
	Brand  string `json:"brand"`
	Before string `json:"before"`
	After  string `json:"after"`
	Change string `json:"change"`
}

// NewRecap creates the recap of a report, listing at most top products per
// direction. stats can be nil.
func NewRecap(r *pricetrack.Report, stats *pricetrack.IngestStats, currency string, top int) *Recap {
	s := r.Summary
	recap := &Recap{
		Date:          s.Date.String(),
		TotalProducts: s.TotalProducts,
		Moves:         Moves{Up: s.Moves.Up, Down: s.Moves.Down, Flat: s.Moves.Flat},
		Variations:    []Line{newLine("Day", s.Day)},
		Categories:    []CategoryLine{},
		TopUp:         []ProductLine{},
		TopDown:       []ProductLine{},
	}
	if stats != nil {
		recap.Ingest = &IngestLine{Rows: stats.Rows, Kept: stats.Kept, Invalid: stats.Invalid, Duplicates: stats.Duplicates}
	}
	for _, wf := range s.Windows {
		recap.Variations = append(recap.Variations, newLine(wf.Window.Key, wf.Figure))
	}
	for _, c := range s.Categories {
		recap.Categories = append(recap.Categories, CategoryLine{
			Category: c.Category,
			Change:   formatChange(c.MeanDiffPct),
			Up:       c.CountUp,
			Down:     c.CountDown,
			Flat:     c.CountFlat,
			Total:    c.Total,
		})
	}
	for _, ranking := range r.Rankings {
		if ranking.Name == "ranking_day" {
			recap.TopUp = newProductLines(ranking.Items, currency, top, func(p pricetrack.Ranked) bool { return p.DiffPct.IsPositive() })
		}
	}
	recap.TopDown = newProductLines(s.RankingDown, currency, top, func(p pricetrack.Ranked) bool { return p.DiffPct.IsNegative() })
	return recap
}

func newLine(label string, f pricetrack.Figure) Line {
	l := Line{Label: label, Baseline: "-", Change: formatOptionalChange(f.Pct)}
	if f.Resolved() {
		l.Baseline = f.Baseline.String()
	}
	return l
}

// newProductLines formats the first top items that match keep.
func newProductLines(items []pricetrack.Ranked, currency string, top int, keep func(pricetrack.Ranked) bool) []ProductLine {
	lines := []ProductLine{}
	for _, p := range items {
		if len(lines) >= top {
			break
		}
		if !keep(p) {
			continue
		}
		lines = append(lines, ProductLine{
			Name:   p.Name,
			Brand:  p.Brand,
			Before: formatPrice(p.PriceBefore, currency),
			After:  formatPrice(p.PriceAfter, currency),
			Change: formatChange(p.DiffPct),
		})
	}
	return lines
}
