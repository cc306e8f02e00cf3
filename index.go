package pricetrack

import (
	"slices"

	"github.com/etnz/pricetrack/date"
	"github.com/shopspring/decimal"
)

// Point is a value of a cumulative index on a given day.
type Point struct {
	Date date.Date       `json:"date"`
	Pct  decimal.Decimal `json:"pct"`
}

// TimeSeries is a chronological list of points.
type TimeSeries []Point

// CategorySeries is the cumulative index of a single main category.
type CategorySeries struct {
	Category string
	Series   TimeSeries
}

// WindowSeries holds the cumulative indexes of a lookback window.
type WindowSeries struct {
	Total      TimeSeries
	Categories []CategorySeries // in priority order
}

// MarshalJSON writes categories as an object, keeping the priority order.
func (w WindowSeries) MarshalJSON() ([]byte, error) {
	var categories jsonObjectWriter
	for _, c := range w.Categories {
		categories.Append(c.Category, nonNil(c.Series))
	}
	var obj jsonObjectWriter
	obj.Append("total", nonNil(w.Total))
	obj.Append("categories", &categories)
	return obj.MarshalJSON()
}

// WindowChart is the chart data of one window.
type WindowChart struct {
	Window Window
	Series WindowSeries
}

// Charts is the chart data of all windows, in configuration order.
type Charts []WindowChart

// MarshalJSON writes charts as an object keyed by window.
func (c Charts) MarshalJSON() ([]byte, error) {
	var obj jsonObjectWriter
	for _, w := range c {
		obj.Append(w.Window.Key, w.Series)
	}
	return obj.MarshalJSON()
}

// BuildSeries computes the cumulative index of the last 'days' days up to today.
//
// The index starts at 0 on the first available day of the window. Then, for
// each next available day, the mean DiffPct against the previous available day
// is added to the index, and the sum is rounded to 2 decimals. A pair of days
// without common product contributes 0.
//
// The accumulation is additive: it is neither compounded nor the direct change
// since the first day.
//
// If category is not empty, only products of this main category are compared.
func BuildSeries(l *Ledger, days int, today date.Date, category string) TimeSeries {
	dates := l.datesBetween(today.Add(-days), today)
	series := make(TimeSeries, 0, len(dates))
	if len(dates) == 0 {
		return series
	}

	cumulative := decimal.Zero
	series = append(series, Point{Date: dates[0], Pct: cumulative})
	for i := 1; i < len(dates); i++ {
		after := l.Snapshot(dates[i]).Filter(category)
		before := l.Snapshot(dates[i-1]).Filter(category)
		mean, _ := MeanPct(Compare(after, before)) // zero without overlap
		cumulative = round2(cumulative.Add(mean))
		series = append(series, Point{Date: dates[i], Pct: cumulative})
	}
	return series
}

// BuildWindow computes the total index of a window, and the index of each
// category of the priority list that has at least one product in the window.
func BuildWindow(l *Ledger, w Window, today date.Date, priority []string) WindowSeries {
	ws := WindowSeries{
		Total:      BuildSeries(l, w.Days, today, ""),
		Categories: make([]CategorySeries, 0),
	}
	if len(ws.Total) == 0 {
		return ws
	}

	present := make(map[string]bool)
	for _, on := range l.datesBetween(today.Add(-w.Days), today) {
		for _, r := range l.Snapshot(on).Records {
			present[r.MainCategory] = true
		}
	}
	for _, category := range priority {
		if !present[category] {
			continue
		}
		ws.Categories = append(ws.Categories, CategorySeries{
			Category: category,
			Series:   BuildSeries(l, w.Days, today, category),
		})
	}
	return ws
}

// BuildCharts computes the window series of every configured window.
func BuildCharts(l *Ledger, cfg Config, today date.Date) Charts {
	charts := make(Charts, 0, len(cfg.Windows))
	for _, w := range cfg.Windows {
		charts = append(charts, WindowChart{Window: w, Series: BuildWindow(l, w, today, cfg.Categories)})
	}
	return charts
}

// datesBetween returns the ledger days from cutoff to today, both included.
func (l *Ledger) datesBetween(cutoff, today date.Date) []date.Date {
	i, _ := slices.BinarySearchFunc(l.days, cutoff, date.Date.Compare)
	j, found := slices.BinarySearchFunc(l.days, today, date.Date.Compare)
	if found {
		j++
	}
	if j < i {
		return nil
	}
	return slices.Clone(l.days[i:j])
}

// nonNil makes sure an empty series is written as [] and not null.
func nonNil(s TimeSeries) TimeSeries {
	if s == nil {
		return TimeSeries{}
	}
	return s
}
