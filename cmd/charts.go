package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pricetrack"
	"github.com/google/subcommands"
)

type chartsCmd struct{}

func (*chartsCmd) Name() string     { return "charts" }
func (*chartsCmd) Synopsis() string { return "recompute the artifacts from the ledger" }
func (*chartsCmd) Usage() string {
	return `ptk charts

  Recomputes and publishes the summary, the rankings and the charts from the
  existing price ledger, without ingesting anything. The most recent day of the
  ledger is used as today.
`
}

func (c *chartsCmd) SetFlags(f *flag.FlagSet) {}

func (c *chartsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// The ledger must exist: charts are never published from nothing.
	ledger, err := pricetrack.LoadLedger(ledgerPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	on, ok := ledger.Latest()
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: ledger %q is empty\n", ledgerPath())
		return subcommands.ExitFailure
	}

	report := pricetrack.NewReport(ledger, on, config())
	if err := pricetrack.Publish(artifactsDir(), report); err != nil {
		fmt.Fprintf(os.Stderr, "Error publishing artifacts: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Published artifacts of %s to %s\n", on, artifactsDir())
	return subcommands.ExitSuccess
}
