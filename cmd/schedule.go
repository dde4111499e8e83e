package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/gainers"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// scheduleCmd holds the flags for the 'schedule' subcommand.
type scheduleCmd struct {
	spec string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "run the scan periodically until interrupted" }
func (*scheduleCmd) Usage() string {
	return `gainers schedule [-cron <spec>]

  Runs the scan on a cron schedule, in the market timezone, until
  interrupted. A run due while the previous one is still going is skipped,
  two runs never write the ledgers at the same time.

  The default schedule, 30 16 * * 1-5, runs after the close on weekdays.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.spec, "cron", "", "Cron schedule (minute hour day month weekday). Defaults to the configuration.")
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	spec := c.spec
	if spec == "" {
		spec = a.cfg.Cron.Schedule
	}
	sched, err := newScheduler(ctx, a, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scheduling %q: %v\n", spec, err)
		return subcommands.ExitUsageError
	}

	sched.Start()
	for _, e := range sched.Entries() {
		a.log.Info("scheduler started",
			zap.String("cron", spec),
			zap.Stringer("timezone", a.loc),
			zap.Time("next", e.Schedule.Next(time.Now().In(a.loc))))
	}
	<-ctx.Done()
	<-sched.Stop().Done()
	a.log.Info("scheduler stopped")
	return subcommands.ExitSuccess
}

// newScheduler returns a cron running the scan on spec. Runs are skipped
// while the previous one is still going.
func newScheduler(ctx context.Context, a *app, spec string) (*cron.Cron, error) {
	l := cronLogger{a.log.Named("cron").Sugar()}
	c := cron.New(
		cron.WithLocation(a.loc),
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
	runner := a.runner()
	_, err := c.AddFunc(spec, func() { scheduledRun(ctx, a, runner) })
	if err != nil {
		return nil, err
	}
	return c, nil
}

// scheduledRun runs the scan of today and logs its outcome.
func scheduledRun(ctx context.Context, a *app, runner *gainers.Runner) {
	if ctx.Err() != nil {
		return
	}
	rep, err := runner.Run(ctx, a.today())
	if err != nil {
		a.log.Error("scheduled run failed", zap.Error(err))
		return
	}
	a.log.Info("scheduled run done",
		zap.String("run_id", rep.RunID),
		zap.Int("opened", rep.Opened),
		zap.Int("revalued", rep.Revalued),
		zap.Int("skipped", rep.Skipped()))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
