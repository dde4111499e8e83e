package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/gainers/date"
	"github.com/etnz/gainers/renderer"
	"github.com/google/subcommands"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	date string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "scan today's gainers, open positions and revalue every ledger" }
func (*runCmd) Usage() string {
	return `gainers run [-d <date>]

  Lists the day gainers, classifies them into the watchlists, opens a
  position per watchlist in the ledger of the day, then values every
  position of every ledger at current prices and rewrites the summary.

  Tickers without data are skipped and reported, they do not fail the run.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Ledger date of the run. Defaults to today in the market timezone. Returns are computed from the daily bars up to that date, quotes are the latest available.")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	on, err := a.day(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	md, err := runReport(ctx, a, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running the scan: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// runReport runs the scan of day on and renders its report.
func runReport(ctx context.Context, a *app, on date.Date) (string, error) {
	rep, err := a.runner().Run(ctx, on)
	if err != nil {
		return "", err
	}
	return renderer.RenderReport(renderer.NewReport(rep)), nil
}
