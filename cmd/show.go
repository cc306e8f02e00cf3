package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pricetrack"
	"github.com/etnz/pricetrack/date"
	"github.com/etnz/pricetrack/renderer"
	"github.com/google/subcommands"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	date string
	top  int
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the price recap of a day" }
func (*showCmd) Usage() string {
	return `ptk show [-d <date>] [-top <n>]

  Displays the variations, the categories and the largest moves of a day,
  computed from the price ledger. Nothing is written.
  The default day is the most recent day of the ledger.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day to display")
	f.IntVar(&c.top, "top", 5, "Number of products listed per direction")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := pricetrack.LoadLedger(ledgerPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

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
		fmt.Println("Ledger is empty, nothing to show.")
		return subcommands.ExitSuccess
	}

	cfg := config()
	report := pricetrack.NewReport(ledger, on, cfg)
	printMarkdown(renderer.RenderRecap(renderer.NewRecap(report, nil, cfg.Currency, c.top)))
	return subcommands.ExitSuccess
}
