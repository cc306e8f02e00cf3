package export

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/etnz/pricetrack"
	_ "modernc.org/sqlite"
)

// pricesTable is the table holding the ledger records.
const pricesTable = "prices"

var pricesColumns = []struct{ name, kind string }{
	{"product_id", "TEXT NOT NULL"},
	{"sku_id", "TEXT"},
	{"ean", "TEXT"},
	{"name", "TEXT"},
	{"brand", "TEXT"},
	{"category", "TEXT"},
	{"main_category", "TEXT"},
	{"current_price", "REAL"},
	{"regular_price", "REAL NOT NULL"},
	{"date", "TEXT NOT NULL"}, // YYYYMMDD
}

// WriteSQLite mirrors the ledger into a new SQLite database.
//
// Any existing file is replaced. Identifiers and dates are stored as TEXT so
// that leading zeros survive, prices as REAL.
func WriteSQLite(ctx context.Context, path string, l *pricetrack.Ledger) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("export error: cannot replace %q: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("export error: cannot open %q: %w", path, err)
	}
	defer db.Close()

	defs, cols, marks := "", "", ""
	for i, c := range pricesColumns {
		if i > 0 {
			defs, cols, marks = defs+",", cols+",", marks+","
		}
		defs += fmt.Sprintf("%q %s", c.name, c.kind)
		cols += fmt.Sprintf("%q", c.name)
		marks += "?"
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %q (%s)`, pricesTable, defs)); err != nil {
		return fmt.Errorf("export error: cannot create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("export error: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`, pricesTable, cols, marks))
	if err != nil {
		return fmt.Errorf("export error: %w", err)
	}
	defer stmt.Close()

	for r := range l.Records() {
		var current any // NULL
		if r.CurrentPrice.Valid {
			current = r.CurrentPrice.Decimal.InexactFloat64()
		}
		_, err := stmt.ExecContext(ctx,
			r.ProductID, r.SKU, r.EAN, r.Name, r.Brand, r.Category, r.MainCategory,
			current, r.RegularPrice.InexactFloat64(), r.Date.Compact(),
		)
		if err != nil {
			return fmt.Errorf("export error: cannot insert product %q on %s: %w", r.ProductID, r.Date, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export error: %w", err)
	}

	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_prices_product_id ON prices(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_date ON prices(date)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_main_category ON prices(main_category)`,
	} {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("export error: %w", err)
		}
	}
	slog.Info("export-sqlite", "name", path, "records", l.Len())
	return nil
}
