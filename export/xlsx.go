package export

import (
	"fmt"
	"log/slog"

	"github.com/etnz/pricetrack"
	"github.com/google/renameio/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SummarySheet is the name of the first sheet of the workbook.
const SummarySheet = "Summary"

var rankingHeader = []any{
	"product_id", "name", "brand", "category",
	"price_before", "price_after", "price_after_current", "diff_abs", "diff_pct",
}

// WriteWorkbook writes a report as an xlsx workbook: a summary sheet with the
// variations and the categories, then one sheet per ranking.
func WriteWorkbook(path string, r *pricetrack.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("export error: %w", err)
	}
	if err := writeSummary(f, r.Summary); err != nil {
		return fmt.Errorf("export error: summary: %w", err)
	}
	for _, ranking := range r.Rankings {
		if err := writeRanking(f, ranking); err != nil {
			return fmt.Errorf("export error: %s: %w", ranking.Name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("export error: %w", err)
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("export error: cannot write %q: %w", path, err)
	}
	slog.Info("export-workbook", "name", path, "rankings", len(r.Rankings))
	return nil
}

func writeSummary(f *excelize.File, s pricetrack.Summary) error {
	rows := [][]any{
		{"date", s.Date.String()},
		{"total_product_count", s.TotalProducts},
		{"variation_day", optionalFloat(s.Day.Pct)},
	}
	for _, wf := range s.Windows {
		rows = append(rows, []any{wf.Window.SummaryKey, optionalFloat(wf.Pct)})
	}
	rows = append(rows,
		[]any{"products_up_day", s.Moves.Up},
		[]any{"products_down_day", s.Moves.Down},
		[]any{"products_flat_day", s.Moves.Flat},
		[]any{},
		[]any{"category", "mean_diff_pct", "count_up", "count_down", "count_flat", "total"},
	)
	for _, c := range s.Categories {
		rows = append(rows, []any{c.Category, c.MeanDiffPct.InexactFloat64(), c.CountUp, c.CountDown, c.CountFlat, c.Total})
	}
	return setRows(f, SummarySheet, rows)
}

func writeRanking(f *excelize.File, ranking pricetrack.Ranking) error {
	if _, err := f.NewSheet(ranking.Name); err != nil {
		return err
	}
	rows := [][]any{rankingHeader}
	for _, p := range ranking.Items {
		var current any
		if p.PriceAfterCurrent.Valid {
			current = p.PriceAfterCurrent.Decimal.InexactFloat64()
		}
		rows = append(rows, []any{
			p.ProductID, p.Name, p.Brand, p.Category,
			p.PriceBefore.InexactFloat64(), p.PriceAfter.InexactFloat64(), current,
			p.DiffAbs.InexactFloat64(), p.DiffPct.InexactFloat64(),
		})
	}
	return setRows(f, ranking.Name, rows)
}

// setRows writes rows from the top left cell of sheet.
func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// optionalFloat returns nil, an empty cell, for a missing figure.
func optionalFloat(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.InexactFloat64()
}
