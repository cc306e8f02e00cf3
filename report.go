package pricetrack

import (
	"github.com/etnz/pricetrack/date"
	"github.com/shopspring/decimal"
)

// Figure is the variation of the catalog against a baseline day.
type Figure struct {
	Baseline   date.Date        // day actually used as baseline, zero if none
	Pct        *decimal.Decimal // mean DiffPct rounded to 2 decimals, nil if no baseline
	Variations []Variation
}

// Resolved returns true if a baseline with common products was found.
func (f Figure) Resolved() bool { return f.Pct != nil }

// WindowFigure is the Figure of a lookback window.
type WindowFigure struct {
	Window Window
	Figure
}

// Summary is the headline of a daily report.
type Summary struct {
	Date          date.Date
	TotalProducts int
	Day           Figure
	Windows       []WindowFigure
	Moves         Moves             // day over day
	Categories    []CategorySummary // day over day
	RankingDown   []Ranked          // largest day over day decreases
}

// MarshalJSON writes the summary artifact. Each window variation is written
// under its configured summary key.
func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", s.Date.Compact())
	w.Append("total_product_count", s.TotalProducts)
	w.Append("variation_day", s.Day.Pct)
	for _, wf := range s.Windows {
		w.Append(wf.Window.SummaryKey, wf.Pct)
	}
	w.Append("products_up_day", s.Moves.Up)
	w.Append("products_down_day", s.Moves.Down)
	w.Append("products_flat_day", s.Moves.Flat)
	w.Append("categories_day", s.Categories)
	w.Append("ranking_down_day", s.RankingDown)
	return w.MarshalJSON()
}

// Ranking is a named ranking artifact.
type Ranking struct {
	Name  string
	Items []Ranked
}

// Report holds everything published for a day.
type Report struct {
	Summary  Summary
	Rankings []Ranking
	Charts   Charts
}

// NewReport computes the report of day 'today' from the ledger.
//
// The day figure compares today with the latest earlier day in the ledger. Each
// window figure compares today with the latest day on or before today minus
// the window length. A figure without baseline is left unresolved, and its
// ranking is not produced.
func NewReport(l *Ledger, today date.Date, cfg Config) *Report {
	current := l.Snapshot(today)
	r := &Report{
		Summary: Summary{
			Date:          today,
			TotalProducts: current.Len(),
			Windows:       make([]WindowFigure, 0, len(cfg.Windows)),
			Categories:    make([]CategorySummary, 0),
			RankingDown:   make([]Ranked, 0),
		},
		Rankings: make([]Ranking, 0, len(cfg.Windows)+1),
	}

	if previous, ok := l.NearestBefore(today); ok {
		r.Summary.Day = newFigure(current, previous)
	}
	if day := r.Summary.Day; day.Resolved() {
		r.Summary.Moves = CountMoves(day.Variations)
		r.Summary.Categories = Summarize(day.Variations, cfg.Categories)
		r.Summary.RankingDown = TopN(day.Variations, cfg.SummaryRankingSize, true)
		r.Rankings = append(r.Rankings, Ranking{Name: "ranking_day", Items: TopN(day.Variations, cfg.RankingSize, false)})
	}

	for _, w := range cfg.Windows {
		wf := WindowFigure{Window: w}
		if baseline, ok := l.NearestAtOrBefore(today.Add(-w.Days)); ok {
			wf.Figure = newFigure(current, baseline)
		}
		r.Summary.Windows = append(r.Summary.Windows, wf)
		if wf.Resolved() && w.Ranking != "" {
			r.Rankings = append(r.Rankings, Ranking{Name: w.Ranking, Items: TopN(wf.Variations, cfg.RankingSize, false)})
		}
	}

	r.Charts = BuildCharts(l, cfg, today)
	return r
}

// newFigure compares two snapshots. The figure is unresolved if they have no product in common.
func newFigure(current, baseline Snapshot) Figure {
	f := Figure{Baseline: baseline.On, Variations: Compare(current, baseline)}
	if mean, ok := MeanPct(f.Variations); ok {
		pct := round2(mean)
		f.Pct = &pct
	}
	return f
}
