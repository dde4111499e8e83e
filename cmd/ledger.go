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

// ledgerCmd holds the flags for the 'ledger' subcommand.
type ledgerCmd struct {
	date string
	all  bool
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "display the positions opened on a day" }
func (*ledgerCmd) Usage() string {
	return `gainers ledger [-d <date>] [-all]

  Displays the positions of the ledger of a day with their last valuation.
  Positions not valued on the date are marked stale.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Ledger date. Defaults to today in the market timezone.")
	f.BoolVar(&c.all, "all", false, "Display every ledger, valued as of the date.")
}

func (c *ledgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	md, err := ledgers(a, on, c.all)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledgers: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// ledgers renders the ledger of day on, or all ledgers as of day on.
func ledgers(a *app, on date.Date, all bool) (string, error) {
	if !all {
		l, err := a.store.LoadLedger(on)
		if err != nil {
			return "", err
		}
		return renderer.RenderLedger(renderer.NewLedger(l, on)), nil
	}

	book, warnings, err := a.store.LoadBook(gainers.M(a.cfg.Run.Invested))
	if err != nil {
		return "", err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", w)
	}
	var b strings.Builder
	for _, l := range book.Ledgers() {
		b.WriteString(renderer.RenderLedger(renderer.NewLedger(l, on)))
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "No ledger.\n", nil
	}
	return b.String(), nil
}
