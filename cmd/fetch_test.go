package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/pricetrack/date"
)

func TestReadExtracts(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"carrefour_20240102_090000.csv": "product_id,precio_regular\n2,20\n",
		"carrefour_20240102_080000.csv": "product_id,precio_regular\n1,10\n",
		"carrefour_20240101_080000.csv": "product_id,precio_regular\n0,5\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	pattern := filepath.Join(dir, "carrefour_{date}*.csv")

	rows, err := readExtracts(context.Background(), pattern, "csv", date.MustParse("2024-01-02"))
	if err != nil {
		t.Fatalf("readExtracts() error = %v", err)
	}
	// Files are concatenated in name order.
	if len(rows) != 2 || rows[0].ProductID != "1" || rows[1].ProductID != "2" {
		t.Errorf("readExtracts() = %+v, want products 1 then 2", rows)
	}

	if _, err := readExtracts(context.Background(), pattern, "csv", date.MustParse("2024-01-03")); err == nil {
		t.Errorf("readExtracts() without extract error = nil, want an error")
	}
	if _, err := readExtracts(context.Background(), pattern, "xml", date.MustParse("2024-01-02")); err == nil {
		t.Errorf("readExtracts() with unknown format error = nil, want an error")
	}
}

func TestReadExtracts_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extracts/20240102.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("product_id,regular_price\n7,70\n"))
	}))
	defer srv.Close()

	rows, err := readExtracts(context.Background(), srv.URL+"/extracts/{date}.csv", "csv", date.MustParse("2024-01-02"))
	if err != nil {
		t.Fatalf("readExtracts() error = %v", err)
	}
	if len(rows) != 1 || rows[0].ProductID != "7" || rows[0].RegularPrice != "70" {
		t.Errorf("readExtracts() = %+v, want product 7 at 70", rows)
	}

	if _, err := readExtracts(context.Background(), srv.URL+"/missing.csv", "csv", date.MustParse("2024-01-02")); err == nil {
		t.Errorf("readExtracts() of a missing URL error = nil, want an error")
	}
}
