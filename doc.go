// Package pricetrack keeps the daily price history of a retail catalog and
// computes how prices move over time.
//
// The core functionalities include:
//   - Ingestion: cleaning a daily catalog extract into ledger records, one per
//     product and day.
//   - Ledger: the chronological price history, persisted as a compact CSV file
//     and replaced atomically.
//   - Variations: comparing the catalog of a day with a baseline day, product
//     by product, and aggregating per main category.
//   - Rankings and indexes: the largest moves over a period, and cumulative
//     price indexes per lookback window.
//   - Publication: writing the summary, ranking and chart artifacts read by the
//     web site.
//
// This package serves as the foundational logic for the `ptk` command-line
// tool.
package pricetrack
