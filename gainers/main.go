// Command gainers scans the day gainers into watchlists and keeps a paper
// trading ledger of them.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/gainers/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers the shell when it asks for completions, and exits.
	cmd.Completion().Complete("gainers")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if flag.NArg() == 0 {
		// run is the default subcommand.
		flag.CommandLine.Parse(append(os.Args[1:], "run"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
