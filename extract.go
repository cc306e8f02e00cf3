package pricetrack

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ExtractRow is one product row of a daily extract, as produced by the scraper.
//
// Values are kept raw: cleaning and coercion happen on ingestion.
type ExtractRow struct {
	ProductID    string
	SKU          string
	EAN          string
	Name         string
	Brand        string
	Category     string
	MainCategory string
	CurrentPrice string
	RegularPrice string
}

// extractColumns maps the accepted extract headers to their field.
// The scraper writes spanish headers, they are accepted as aliases.
var extractColumns = map[string]func(*ExtractRow) *string{
	"product_id":     func(r *ExtractRow) *string { return &r.ProductID },
	"sku_id":         func(r *ExtractRow) *string { return &r.SKU },
	"ean":            func(r *ExtractRow) *string { return &r.EAN },
	"name":           func(r *ExtractRow) *string { return &r.Name },
	"nombre":         func(r *ExtractRow) *string { return &r.Name },
	"brand":          func(r *ExtractRow) *string { return &r.Brand },
	"marca":          func(r *ExtractRow) *string { return &r.Brand },
	"category":       func(r *ExtractRow) *string { return &r.Category },
	"categoria":      func(r *ExtractRow) *string { return &r.Category },
	"main_category":  func(r *ExtractRow) *string { return &r.MainCategory },
	"cat_principal":  func(r *ExtractRow) *string { return &r.MainCategory },
	"current_price":  func(r *ExtractRow) *string { return &r.CurrentPrice },
	"precio_actual":  func(r *ExtractRow) *string { return &r.CurrentPrice },
	"regular_price":  func(r *ExtractRow) *string { return &r.RegularPrice },
	"precio_regular": func(r *ExtractRow) *string { return &r.RegularPrice },
}

const utf8BOM = "\ufeff"

// DecodeExtract reads a CSV daily extract with a header line.
//
// Unknown columns are ignored. The product_id and regular_price columns (or
// their aliases) are required.
func DecodeExtract(r io.Reader) ([]ExtractRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("extract error: empty extract")
	}
	if err != nil {
		return nil, fmt.Errorf("extract error: cannot read header: %w", err)
	}

	fields := make([]func(*ExtractRow) *string, len(header))
	var hasID, hasPrice bool
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		fields[i] = extractColumns[name]
		switch name {
		case "product_id":
			hasID = true
		case "regular_price", "precio_regular":
			hasPrice = true
		}
	}
	if !hasID || !hasPrice {
		return nil, fmt.Errorf("extract error: header %q must contain product_id and regular_price", header)
	}

	var rows []ExtractRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("extract error: %w", err)
		}
		var row ExtractRow
		for i, v := range rec {
			if i < len(fields) && fields[i] != nil {
				*fields[i](&row) = strings.TrimSpace(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
