package pricetrack

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

/*
DecodeCatalog reads raw product-search pages of the VTEX catalog API, as saved by
the scraper, one JSON array per page:

	[
	  {
	    "productId": "12345",
	    "productName": "Aceite de girasol 1.5 l",
	    "brand": "Natura",
	    "categories": ["/Almacén/Aceites y vinagres/", "/Almacén/"],
	    "items": [
	      {
	        "itemId": "67890",
	        "ean": "7790060023684",
	        "sellers": [
	          {"commertialOffer": {"Price": 2599.0, "ListPrice": 2899.0, "AvailableQuantity": 120}}
	        ]
	      }
	    ]
	  }
	]
*/

// catalogPaths locates each extract field inside a catalog product.
var catalogPaths = struct {
	productID, name, brand, category         string
	sku, ean, price, listPrice, availableQty string
}{
	productID:    "$.productId",
	name:         "$.productName",
	brand:        "$.brand",
	category:     "$.categories[0]",
	sku:          "$.items[0].itemId",
	ean:          "$.items[0].ean",
	price:        "$.items[0].sellers[0].commertialOffer.Price",
	listPrice:    "$.items[0].sellers[0].commertialOffer.ListPrice",
	availableQty: "$.items[0].sellers[0].commertialOffer.AvailableQuantity",
}

// DecodeCatalog converts a stream of catalog pages into extract rows.
//
// Products without item, seller or stock are skipped, like the scraper does.
// The main category and category are the first and last segment of the
// product's first category path.
func DecodeCatalog(r io.Reader) ([]ExtractRow, error) {
	dec := json.NewDecoder(r)
	var rows []ExtractRow
	for page := 1; dec.More(); page++ {
		var products []any
		if err := dec.Decode(&products); err != nil {
			return nil, fmt.Errorf("catalog error: page %d: %w", page, err)
		}
		for _, p := range products {
			row, ok := catalogRow(p)
			if !ok {
				continue
			}
			rows = append(rows, row)
		}
	}
	slog.Debug("catalog-decoded", "rows", len(rows))
	return rows, nil
}

// catalogRow extracts a single row, reporting false when the product has no stock.
func catalogRow(p any) (ExtractRow, bool) {
	qty, ok := catalogNumber(p, catalogPaths.availableQty)
	if !ok || qty <= 0 {
		return ExtractRow{}, false
	}
	row := ExtractRow{
		ProductID:    catalogString(p, catalogPaths.productID),
		SKU:          catalogString(p, catalogPaths.sku),
		EAN:          catalogString(p, catalogPaths.ean),
		Name:         catalogString(p, catalogPaths.name),
		Brand:        catalogString(p, catalogPaths.brand),
		CurrentPrice: catalogString(p, catalogPaths.price),
		RegularPrice: catalogString(p, catalogPaths.listPrice),
	}
	segments := strings.FieldsFunc(catalogString(p, catalogPaths.category), func(r rune) bool { return r == '/' })
	if len(segments) > 0 {
		row.MainCategory = segments[0]
		row.Category = segments[len(segments)-1]
	}
	return row, true
}

// catalogValue evaluates path on p.
// jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
// the first one is kept if any.
func catalogValue(p any, path string) (any, bool) {
	v, err := jsonpath.Get(path, p)
	if err != nil {
		return nil, false
	}
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil, false
		}
		v = list[0]
	}
	return v, v != nil
}

// catalogString returns the value at path formatted as an extract cell.
func catalogString(p any, path string) string {
	v, ok := catalogValue(p, path)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func catalogNumber(p any, path string) (float64, bool) {
	v, ok := catalogValue(p, path)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}
