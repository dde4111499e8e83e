package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/etnz/gainers"
	"github.com/etnz/gainers/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	refresh bool
	json    bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the paper book performance per ticker" }
func (*summaryCmd) Usage() string {
	return `gainers summary [-refresh] [-json]

  Displays the summary written by the last run: per ticker, its watchlists,
  positions, invested amount, value and return. Without a summary file, or
  with -refresh, the summary is computed from the ledgers as they are.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "Compute the summary from the ledgers instead of reading summary.json.")
	f.BoolVar(&c.json, "json", false, "Print the summary as JSON.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	sum, err := summary(a, c.refresh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading summary: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		if err := gainers.EncodeSummary(os.Stdout, sum); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding summary: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderSummary(renderer.NewSummary(sum)))
	return subcommands.ExitSuccess
}

// summary reads the summary file, or computes it from the ledgers if refresh
// is set or the file does not exist.
func summary(a *app, refresh bool) (gainers.Summary, error) {
	if !refresh {
		sum, err := a.store.LoadSummary()
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return sum, err
		}
	}
	book, warnings, err := a.store.LoadBook(gainers.M(a.cfg.Run.Invested))
	if err != nil {
		return gainers.Summary{}, err
	}
	if len(warnings) > 0 {
		var b strings.Builder
		for _, w := range warnings {
			fmt.Fprintf(&b, "Warning: %v\n", w)
		}
		fmt.Fprint(os.Stderr, b.String())
	}
	return gainers.NewSummary(a.today(), book), nil
}
