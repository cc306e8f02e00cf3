package pricetrack

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/pricetrack/date"
	"github.com/google/renameio/v2"
	"github.com/shopspring/decimal"
)

// ledgerColumns is the persisted column set, in order.
var ledgerColumns = []string{
	"product_id", "sku_id", "ean", "name", "brand",
	"category", "main_category", "current_price", "regular_price", "date",
}

// DecodeLedger decodes a ledger from its CSV representation.
//
// Identifiers are read as plain strings: "00123" stays "00123". Dates must be
// zero-padded YYYYMMDD, regular prices positive, and a product appear at most
// once per day, otherwise decoding fails. An empty main category decodes as
// Uncategorized, as on ingestion.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return ledger, nil // an empty file is an empty ledger
	}
	if err != nil {
		return nil, fmt.Errorf("ledger error: cannot read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"product_id", "regular_price", "date"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("ledger error: missing column %q in header %q", required, header)
		}
	}

	// one record per product and day
	seen := make(map[string]struct{})
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("ledger error: line %d: %w", line, err)
		}
		get := func(col string) string {
			if i, ok := index[col]; ok && i < len(rec) {
				return rec[i]
			}
			return ""
		}

		on, err := date.ParseCompact(get("date"))
		if err != nil {
			return nil, fmt.Errorf("ledger error: line %d: %w", line, err)
		}
		id := get("product_id")
		if id == "" {
			return nil, fmt.Errorf("ledger error: line %d: missing product_id", line)
		}
		key := on.Compact() + "\x00" + id
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("ledger error: line %d: duplicate product %q on %s", line, id, on)
		}
		seen[key] = struct{}{}
		regular, err := decimal.NewFromString(get("regular_price"))
		if err != nil || !regular.IsPositive() {
			return nil, fmt.Errorf("ledger error: line %d: invalid regular_price %q", line, get("regular_price"))
		}
		var current decimal.NullDecimal
		if s := get("current_price"); s != "" {
			c, err := decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("ledger error: line %d: invalid current_price %q: %w", line, s, err)
			}
			current = decimal.NewNullDecimal(c)
		}
		main := get("main_category")
		if main == "" {
			main = Uncategorized
		}
		ledger.records = append(ledger.records, Record{
			ProductID:    id,
			SKU:          get("sku_id"),
			EAN:          get("ean"),
			Name:         get("name"),
			Brand:        get("brand"),
			Category:     get("category"),
			MainCategory: main,
			CurrentPrice: current,
			RegularPrice: regular,
			Date:         on,
		})
	}

	ledger.reindex()
	return ledger, nil
}

// EncodeLedger persists the ledger in CSV format, in chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerColumns); err != nil {
		return fmt.Errorf("persist error: cannot write header: %w", err)
	}
	for r := range ledger.Records() {
		current := ""
		if r.CurrentPrice.Valid {
			current = r.CurrentPrice.Decimal.String()
		}
		row := []string{
			r.ProductID, r.SKU, r.EAN, r.Name, r.Brand,
			r.Category, r.MainCategory, current, r.RegularPrice.String(), r.Date.Compact(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("persist error: cannot write product %q on %s: %w", r.ProductID, r.Date, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("persist error: %w", err)
	}
	return nil
}

// LoadLedger reads the ledger file. If the file does not exist the returned
// error wraps fs.ErrNotExist.
func LoadLedger(filename string) (*Ledger, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("load error: cannot open ledger %q: %w", filename, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("load error: %q: %w", filename, err)
	}
	slog.Debug("load-ledger", "name", filename, "records", ledger.Len(), "days", len(ledger.days))
	return ledger, nil
}

// SaveLedger writes the whole ledger to filename.
//
// The file is replaced atomically: readers see either the previous or the new ledger.
func SaveLedger(filename string, ledger *Ledger) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("persist error: cannot create ledger folder: %w", err)
	}
	pf, err := renameio.NewPendingFile(filename, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("persist error: cannot create file %q: %w", filename, err)
	}
	defer pf.Cleanup()

	if err := EncodeLedger(pf, ledger); err != nil {
		return err
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("persist error: cannot replace %q: %w", filename, err)
	}
	slog.Info("save-ledger", "name", filename, "records", ledger.Len(), "days", len(ledger.days))
	return nil
}
