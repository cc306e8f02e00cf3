package pricetrack

import (
	"testing"

	"github.com/etnz/pricetrack/date"
	"github.com/shopspring/decimal"
)

// D is a helper for test to create a date from a compact or ISO string.
func D(s string) date.Date { return date.MustParse(s) }

// dec is a helper for test to create a decimal from a const.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// row is a helper for test to create an extract row with a regular price.
func row(id, mainCategory, regular string) ExtractRow {
	return ExtractRow{ProductID: id, Name: "product " + id, MainCategory: mainCategory, RegularPrice: regular}
}

// newTestLedger ingests the given extracts, keyed by compact day, into a new ledger.
func newTestLedger(t *testing.T, days map[string][]ExtractRow) *Ledger {
	t.Helper()
	l := NewLedger()
	for on, rows := range days {
		if _, err := l.Ingest(rows, D(on)); err != nil {
			t.Fatalf("Ingest(%s) error = %v", on, err)
		}
	}
	return l
}
