package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/gainers"
	"github.com/etnz/gainers/date"
	"github.com/etnz/gainers/renderer"
	"github.com/google/subcommands"
)

// classifyCmd holds the flags for the 'classify' subcommand.
type classifyCmd struct {
	date string
}

func (*classifyCmd) Name() string     { return "classify" }
func (*classifyCmd) Synopsis() string { return "show the watchlists of some tickers, or of a past scan" }
func (*classifyCmd) Usage() string {
	return `gainers classify [-d <date>] [<ticker>...]

  With tickers, looks up their current metrics and shows the watchlists they
  belong to. Nothing is recorded and no position is opened.

  Without tickers, shows the scan recorded on the date.
`
}

func (c *classifyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the recorded scan. Defaults to today in the market timezone. Returns are computed from the daily bars up to that date, quotes are the latest available.")
}

func (c *classifyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var records []gainers.ScanRecord
	if f.NArg() == 0 {
		records, err = a.store.LoadScan(on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading scan: %v\n", err)
			return subcommands.ExitFailure
		}
	} else {
		var missing []string
		records, missing, err = classify(ctx, a, on, f.Args())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error classifying: %v\n", err)
			return subcommands.ExitFailure
		}
		if len(missing) > 0 {
			fmt.Fprintf(os.Stderr, "No data for %s\n", strings.Join(missing, ", "))
		}
	}

	printMarkdown(renderer.RenderWatchlists(renderer.NewWatchlists(on, records)))
	return subcommands.ExitSuccess
}

// classify looks up and classifies tickers.
func classify(ctx context.Context, a *app, on date.Date, tickers []string) (records []gainers.ScanRecord, missing []string, err error) {
	for i, t := range tickers {
		tickers[i] = strings.ToUpper(strings.TrimSpace(t))
	}
	snaps, missing, err := a.snapshots(ctx, on, tickers)
	if err != nil {
		return nil, missing, err
	}
	for _, s := range snaps {
		records = append(records, gainers.ScanRecord{Snapshot: s, Tags: gainers.Classify(s)})
	}
	return records, missing, nil
}
