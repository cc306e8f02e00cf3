package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pricetrack"
	"github.com/etnz/pricetrack/date"
	"github.com/etnz/pricetrack/export"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	sqlite string
	xlsx   string
	date   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger and the report for analysis tools" }
func (*exportCmd) Usage() string {
	return `ptk export [-sqlite <file>] [-xlsx <file>] [-d <date>]

  -sqlite mirrors the whole price ledger into a SQLite database (table "prices").
  -xlsx writes the report of a day as a workbook: the summary and every ranking.
  The default day is the most recent day of the ledger.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sqlite, "sqlite", "", "SQLite database to write")
	f.StringVar(&c.xlsx, "xlsx", "", "Workbook to write")
	f.StringVar(&c.date, "d", "", "Day of the workbook report")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.sqlite == "" && c.xlsx == "" {
		fmt.Fprintln(os.Stderr, "Error: at least one of -sqlite or -xlsx is required")
		return subcommands.ExitUsageError
	}

	ledger, err := pricetrack.LoadLedger(ledgerPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.sqlite != "" {
		if err := export.WriteSQLite(ctx, c.sqlite, ledger); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Exported %d records to %s\n", ledger.Len(), c.sqlite)
	}

	if c.xlsx != "" {
		on, ok := ledger.Latest()
		if c.date != "" {
			on, err = date.Parse(c.date)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
				return subcommands.ExitUsageError
			}
			ok = true
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "Error: ledger is empty, no report to export")
			return subcommands.ExitFailure
		}
		if err := export.WriteWorkbook(c.xlsx, pricetrack.NewReport(ledger, on, config())); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Exported the report of %s to %s\n", on, c.xlsx)
	}
	return subcommands.ExitSuccess
}
