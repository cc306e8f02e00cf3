package pricetrack

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeLedger(t *testing.T) {
	input := "product_id,sku_id,ean,name,brand,category,main_category,current_price,regular_price,date\n" +
		"00123,55,0779,Yerba 1kg,Playadito,Yerbas,Almacén,950.5,1000,20240102\n" +
		"00123,55,0779,Yerba 1kg,Playadito,Yerbas,Almacén,,990,20240101\n"

	l, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	first := l.Snapshot(D("20240101")).Records[0]
	if first.ProductID != "00123" || first.EAN != "0779" {
		t.Errorf("identifiers = %q, %q, want leading zeros preserved", first.ProductID, first.EAN)
	}
	if first.CurrentPrice.Valid {
		t.Errorf("CurrentPrice = %v, want null", first.CurrentPrice)
	}
	second := l.Snapshot(D("20240102")).Records[0]
	if !second.CurrentPrice.Valid || !second.CurrentPrice.Decimal.Equal(dec("950.5")) {
		t.Errorf("CurrentPrice = %v, want 950.5", second.CurrentPrice)
	}
	if dates := l.Dates(); len(dates) != 2 || dates[0] != D("20240101") {
		t.Errorf("Dates() = %v, want chronological order", dates)
	}
}

func TestDecodeLedger_Uncategorized(t *testing.T) {
	input := "product_id,main_category,regular_price,date\n" +
		"1,,100,20240101\n" +
		"1,,110,20240102\n"

	l, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	if got := l.Snapshot(D("20240101")).Records[0].MainCategory; got != Uncategorized {
		t.Errorf("MainCategory = %q, want %q", got, Uncategorized)
	}
	vs := Compare(l.Snapshot(D("20240102")), l.Snapshot(D("20240101")))
	got := Summarize(vs, DefaultConfig().Categories)
	if len(got) != 1 || got[0].Category != Uncategorized || got[0].Total != 1 {
		t.Errorf("Summarize() = %+v, want a single %q category", got, Uncategorized)
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	header := "product_id,regular_price,date\n"
	testCases := []struct {
		name  string
		input string
	}{
		{"missing column", "product_id,date\n1,20240101\n"},
		{"iso date", header + "1,100,2024-01-01\n"},
		{"short date", header + "1,100,2024011\n"},
		{"invalid day", header + "1,100,20240230\n"},
		{"zero price", header + "1,0,20240101\n"},
		{"text price", header + "1,abc,20240101\n"},
		{"missing product", header + ",100,20240101\n"},
		{"duplicate product", header + "1,100,20240101\n1,100,20240102\n1,200,20240102\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tc.input)); err == nil {
				t.Errorf("DecodeLedger() error = nil, want an error")
			}
		})
	}
}

func TestEncodeLedger_RoundTrip(t *testing.T) {
	l := newTestLedger(t, map[string][]ExtractRow{
		"20240101": {{ProductID: "007", Name: "Arroz, largo fino", MainCategory: "Almacén", CurrentPrice: "80", RegularPrice: "100.25"}},
		"20240102": {row("007", "Almacén", "101")},
	})

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	wantHeader := "product_id,sku_id,ean,name,brand,category,main_category,current_price,regular_price,date\n"
	if !strings.HasPrefix(buf.String(), wantHeader) {
		t.Errorf("EncodeLedger() header = %q, want %q", strings.SplitN(buf.String(), "\n", 2)[0], wantHeader)
	}
	if !strings.Contains(buf.String(), `007,,,"Arroz, largo fino",,,Almacén,80,100.25,20240101`) {
		t.Errorf("EncodeLedger() =\n%s\nwant the first record quoted and in compact date", buf.String())
	}

	got, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	if got.Len() != l.Len() {
		t.Errorf("round trip Len() = %d, want %d", got.Len(), l.Len())
	}
}

func TestSaveLoadLedger(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "data", "precios_compacto.csv")

	if _, err := LoadLedger(filename); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadLedger() error = %v, want fs.ErrNotExist", err)
	}

	l := newTestLedger(t, map[string][]ExtractRow{"20240101": {row("1", "Almacén", "100")}})
	if err := SaveLedger(filename, l); err != nil {
		t.Fatalf("SaveLedger() error = %v", err)
	}
	got, err := LoadLedger(filename)
	if err != nil {
		t.Fatalf("LoadLedger() error = %v", err)
	}
	if got.Len() != 1 {
		t.Errorf("LoadLedger().Len() = %d, want 1", got.Len())
	}
}
