package pricetrack

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/etnz/pricetrack/date"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// Ledger represents the price history of the catalog: one record per product and per day.
//
// In a Ledger records are always in chronological order, and records of the
// same day keep their ingestion order.
type Ledger struct {
	records   []Record
	days      []date.Date  // distinct days, ascending
	snapshots *cache.Cache // Snapshot by compact day
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		records:   make([]Record, 0),
		snapshots: cache.New(cache.NoExpiration, 0),
	}
}

// Len returns the number of records in the ledger.
func (l *Ledger) Len() int { return len(l.records) }

// Records returns an iterator over all records in chronological order.
func (l *Ledger) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range l.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Dates returns the distinct days present in the ledger, in ascending order.
func (l *Ledger) Dates() []date.Date { return slices.Clone(l.days) }

// Latest returns the most recent day in the ledger, or false if the ledger is empty.
func (l *Ledger) Latest() (date.Date, bool) {
	if len(l.days) == 0 {
		return date.Date{}, false
	}
	return l.days[len(l.days)-1], true
}

// IngestStats reports what happened to the rows of an extract during ingestion.
type IngestStats struct {
	On         date.Date
	Rows       int            // rows in the extract
	Kept       int            // rows stored in the ledger
	Invalid    int            // rows dropped for a missing id or an invalid regular price
	Duplicates int            // rows dropped because the product was already seen that day
	ByCategory map[string]int // kept rows per main category
}

// IngestionError is returned when an extract has no valid row left after cleaning.
type IngestionError struct {
	On      date.Date
	Rows    int
	Invalid int
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion error: no valid rows for %s (%d rows read, %d invalid)", e.On, e.Rows, e.Invalid)
}

// Ingest replaces all the records of day 'on' with the cleaned rows of a daily extract.
//
// Rows without a product id, or with an unparsable or non-positive regular price, are dropped.
// Then only the first occurrence of each product id is kept.
// If no row survives, an *IngestionError is returned and the ledger is left untouched.
// Ingesting the same day twice keeps only the second extract.
func (l *Ledger) Ingest(rows []ExtractRow, on date.Date) (IngestStats, error) {
	records, stats := cleanRows(rows, on)
	if len(records) == 0 {
		return stats, &IngestionError{On: on, Rows: stats.Rows, Invalid: stats.Invalid}
	}
	l.replace(on, records)
	slog.Info("ledger-ingest", "date", on.Compact(), "rows", stats.Rows, "kept", stats.Kept, "invalid", stats.Invalid, "duplicates", stats.Duplicates)
	return stats, nil
}

// cleanRows validates and coerces extract rows into ledger records for day 'on'.
func cleanRows(rows []ExtractRow, on date.Date) ([]Record, IngestStats) {
	stats := IngestStats{On: on, Rows: len(rows), ByCategory: make(map[string]int)}

	valid := make([]Record, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(row.ProductID)
		if id == "" {
			stats.Invalid++
			continue
		}
		regular, err := decimal.NewFromString(strings.TrimSpace(row.RegularPrice))
		if err != nil || !regular.IsPositive() {
			stats.Invalid++
			continue
		}
		var current decimal.NullDecimal
		if c, err := decimal.NewFromString(strings.TrimSpace(row.CurrentPrice)); err == nil {
			current = decimal.NewNullDecimal(c)
		}
		main := strings.TrimSpace(row.MainCategory)
		if main == "" {
			main = Uncategorized
		}
		valid = append(valid, Record{
			ProductID:    id,
			SKU:          strings.TrimSpace(row.SKU),
			EAN:          strings.TrimSpace(row.EAN),
			Name:         strings.TrimSpace(row.Name),
			Brand:        strings.TrimSpace(row.Brand),
			Category:     strings.TrimSpace(row.Category),
			MainCategory: main,
			CurrentPrice: current,
			RegularPrice: regular,
			Date:         on,
		})
	}

	// A product can be listed under several sub categories: keep the first one.
	seen := make(map[string]struct{}, len(valid))
	records := valid[:0]
	for _, r := range valid {
		if _, dup := seen[r.ProductID]; dup {
			stats.Duplicates++
			continue
		}
		seen[r.ProductID] = struct{}{}
		records = append(records, r)
		stats.ByCategory[r.MainCategory]++
	}
	stats.Kept = len(records)
	return records, stats
}

// replace removes all records of day 'on' and appends 'records' instead.
func (l *Ledger) replace(on date.Date, records []Record) {
	l.records = slices.DeleteFunc(l.records, func(r Record) bool { return r.Date == on })
	l.records = append(l.records, records...)
	l.reindex()
}

// reindex restores the chronological order and refreshes the derived indexes.
// It must be called after every mutation.
func (l *Ledger) reindex() {
	slices.SortStableFunc(l.records, func(a, b Record) int { return a.Date.Compare(b.Date) })
	l.days = l.days[:0]
	for _, r := range l.records {
		if n := len(l.days); n == 0 || l.days[n-1] != r.Date {
			l.days = append(l.days, r.Date)
		}
	}
	l.snapshots.Flush()
}
