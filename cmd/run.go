package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/etnz/pricetrack"
	"github.com/etnz/pricetrack/date"
	"github.com/etnz/pricetrack/renderer"
	"github.com/google/subcommands"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	date    string
	extract string
	format  string
	top     int
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "ingest the daily extract and publish the artifacts" }
func (*runCmd) Usage() string {
	return `ptk run [-d <date>] [-extract <pattern|url>] [-format csv|catalog]

  Ingests the extract of the day into the price ledger, replacing any record
  already stored for that day, then computes and publishes the summary, the
  rankings and the charts.

  The extract is read from every file matching the pattern, in name order,
  or downloaded from an http(s) URL. "{date}" is replaced by the day as
  YYYYMMDD.

  If the extract has no valid row the ledger is left untouched and nothing is
  published.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Day of the extract")
	f.StringVar(&c.extract, "extract", DefaultExtract, "Extract files pattern or URL")
	f.StringVar(&c.format, "format", "csv", "Extract format: csv or catalog")
	f.IntVar(&c.top, "top", 5, "Number of products listed per direction in the recap")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	rows, err := readExtracts(ctx, c.extract, c.format, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading extract: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	stats, err := ledger.Ingest(rows, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error ingesting extract: %v\n", err)
		return subcommands.ExitFailure
	}
	for category, count := range stats.ByCategory {
		slog.Debug("ingest-category", "category", category, "products", count)
	}

	if err := pricetrack.SaveLedger(ledgerPath(), ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	cfg := config()
	report := pricetrack.NewReport(ledger, on, cfg)
	if err := pricetrack.Publish(artifactsDir(), report); err != nil {
		fmt.Fprintf(os.Stderr, "Error publishing artifacts: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderRecap(renderer.NewRecap(report, &stats, cfg.Currency, c.top)))
	return subcommands.ExitSuccess
}
