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

// revalueCmd holds the flags for the 'revalue' subcommand.
type revalueCmd struct {
	date string
}

func (*revalueCmd) Name() string     { return "revalue" }
func (*revalueCmd) Synopsis() string { return "value every ledger at current prices without scanning" }
func (*revalueCmd) Usage() string {
	return `gainers revalue [-d <date>]

  Values every position of every ledger at current prices and rewrites the
  summary. No gainers are scanned and no position is opened.
`
}

func (c *revalueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date. Defaults to today in the market timezone. Quotes are the latest available.")
}

func (c *revalueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	md, err := revalueReport(ctx, a, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error revaluing ledgers: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

func revalueReport(ctx context.Context, a *app, on date.Date) (string, error) {
	rep, err := a.runner().Revalue(ctx, on)
	if err != nil {
		return "", err
	}
	return renderer.RenderReport(renderer.NewReport(rep)), nil
}
