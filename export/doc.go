// Package export writes the price ledger and the daily report into formats
// meant for analysis tools: a SQLite mirror of the ledger and an xlsx workbook
// of the report.
package export
