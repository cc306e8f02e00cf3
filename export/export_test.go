package export

import (
	"context"
	"database/sql"
	"path/filepath"
	"slices"
	"testing"

	"github.com/etnz/pricetrack"
	"github.com/etnz/pricetrack/date"
	"github.com/xuri/excelize/v2"
)

func newTestLedger(t *testing.T) *pricetrack.Ledger {
	t.Helper()
	l := pricetrack.NewLedger()
	days := []struct {
		on   string
		rows []pricetrack.ExtractRow
	}{
		{"20240101", []pricetrack.ExtractRow{
			{ProductID: "00123", Name: "Yerba", MainCategory: "Almacén", CurrentPrice: "95", RegularPrice: "100"},
			{ProductID: "2", Name: "Lavandina", MainCategory: "Limpieza", RegularPrice: "50"},
		}},
		{"20240102", []pricetrack.ExtractRow{
			{ProductID: "00123", Name: "Yerba", MainCategory: "Almacén", RegularPrice: "110"},
			{ProductID: "2", Name: "Lavandina", MainCategory: "Limpieza", RegularPrice: "45"},
		}},
	}
	for _, d := range days {
		if _, err := l.Ingest(d.rows, date.MustParse(d.on)); err != nil {
			t.Fatalf("Ingest(%s) error = %v", d.on, err)
		}
	}
	return l
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.db")
	l := newTestLedger(t)

	// Writing twice replaces the database.
	for range 2 {
		if err := WriteSQLite(context.Background(), path, l); err != nil {
			t.Fatalf("WriteSQLite() error = %v", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM prices`).Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if count != 4 {
		t.Errorf("COUNT(*) = %d, want 4", count)
	}

	var current sql.NullFloat64
	var regular float64
	err = db.QueryRow(`SELECT current_price, regular_price FROM prices WHERE product_id = ? AND date = ?`, "00123", "20240101").Scan(&current, &regular)
	if err != nil {
		t.Fatalf("select error = %v", err)
	}
	if !current.Valid || current.Float64 != 95 || regular != 100 {
		t.Errorf("prices = %v, %v, want 95, 100", current, regular)
	}
	err = db.QueryRow(`SELECT current_price FROM prices WHERE product_id = ? AND date = ?`, "00123", "20240102").Scan(&current)
	if err != nil {
		t.Fatalf("select error = %v", err)
	}
	if current.Valid {
		t.Errorf("current_price = %v, want NULL", current.Float64)
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	report := pricetrack.NewReport(newTestLedger(t), date.MustParse("20240102"), pricetrack.DefaultConfig())

	if err := WriteWorkbook(path, report); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("excelize.OpenFile() error = %v", err)
	}
	defer f.Close()

	if got, want := f.GetSheetList(), []string{SummarySheet, "ranking_day"}; !slices.Equal(got, want) {
		t.Errorf("GetSheetList() = %v, want %v", got, want)
	}
	rows, err := f.GetRows("ranking_day")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "product_id" || rows[1][0] != "00123" {
		t.Errorf("ranking_day rows = %v, want a header then product 00123 first", rows)
	}
	rows, err = f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if rows[0][0] != "date" || rows[0][1] != "2024-01-02" {
		t.Errorf("summary first row = %v, want the date", rows[0])
	}
}
