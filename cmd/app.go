// Package cmd implements the CLI application scanning gainers and keeping the paper trading ledgers.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/gainers"
	"github.com/etnz/gainers/alpaca"
	"github.com/etnz/gainers/config"
	"github.com/etnz/gainers/date"
	"github.com/etnz/gainers/eodhd"
	"github.com/etnz/gainers/logger"
	"github.com/etnz/gainers/market"
	"github.com/etnz/gainers/yahoo"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "watchlists")
	c.Register(&classifyCmd{}, "watchlists")
	c.Register(&scheduleCmd{}, "watchlists")

	c.Register(&revalueCmd{}, "ledgers")
	c.Register(&ledgerCmd{}, "ledgers")
	c.Register(&summaryCmd{}, "ledgers")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML configuration file")
var storeRoot = flag.String("store", "", "Folder holding Portfolios/, Daily_Scans/ and summary.json. Overrides the configuration.")
var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

// app is what a command needs to run: the configuration, the logger, the
// store and the market.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	store    gainers.Store
	loc      *time.Location
	gainers  gainers.GainersSource
	provider gainers.SnapshotProvider
	asOf     date.Date // set by a -d flag
}

// newApp loads the configuration and connects the market sources.
func newApp() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load configuration: %w", err)
	}
	if *storeRoot != "" {
		cfg.Store.Root = *storeRoot
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("cannot create logger: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Cron.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Cron.Timezone, err)
	}
	a := &app{
		cfg:   cfg,
		log:   log,
		store: gainers.Store{Root: cfg.Store.Root},
		loc:   loc,
	}
	a.gainers, a.provider = a.market()
	return a, nil
}

// Close flushes the logger.
func (a *app) Close() { _ = a.log.Sync() }

// today returns the current day of the market timezone.
func (a *app) today() date.Date {
	if a.loc == nil {
		return date.Today()
	}
	return date.Of(time.Now().In(a.loc))
}

// day parses a -d flag value, the empty string being today. The market
// computes its history windows up to that day.
func (a *app) day(s string) (date.Date, error) {
	if s == "" {
		return a.today(), nil
	}
	on, err := date.Parse(s)
	if err != nil {
		return on, err
	}
	a.asOf = on
	return on, nil
}

// marketDay is the last day of the daily bars the snapshots are computed from.
func (a *app) marketDay() date.Date {
	if a.asOf.IsZero() {
		return a.today()
	}
	return a.asOf
}

func (a *app) guard(name string) *market.Guard {
	p := a.cfg.Provider
	return market.NewGuard(market.GuardConfig{
		Name:        name,
		RPS:         p.RPS,
		Burst:       p.Burst,
		MaxFailures: p.MaxFailures,
		Cooldown:    p.Cooldown,
	}, a.log)
}

// market connects the gainers source and the snapshot provider.
//
// Yahoo gives the gainers and the quotes. Daily bars come from Alpaca when
// keys are configured, else from EODHD, else from the Yahoo chart. finance-go
// completes the fundamentals Yahoo chart does not have (market cap, PE, EPS).
func (a *app) market() (gainers.GainersSource, gainers.SnapshotProvider) {
	y := yahoo.New(a.cfg.Store.CacheDir, a.log.Named("yahoo"))
	if a.cfg.Yahoo.GainersURL != "" {
		y.GainersURL = a.cfg.Yahoo.GainersURL
	}
	if a.cfg.Yahoo.ChartURL != "" {
		y.ChartURL = a.cfg.Yahoo.ChartURL
	}
	yg := a.guard("yahoo")

	c := &market.Composite{
		Fundamentals: []gainers.FundamentalsSource{yg.Fundamentals(y)},
		Today:        a.marketDay,
		Log:          a.log.Named("market"),
	}
	if a.cfg.Alpaca.Enabled() {
		src := alpaca.New(a.cfg.Alpaca.APIKey, a.cfg.Alpaca.APISecret)
		ag := a.guard("alpaca")
		c.History = ag.History(src)
		c.Fundamentals = append(c.Fundamentals, ag.Fundamentals(src))
	}
	if a.cfg.EODHD.Enabled() {
		src := eodhd.New(a.cfg.EODHD.APIKey)
		if a.cfg.EODHD.BaseURL != "" {
			src.BaseURL = a.cfg.EODHD.BaseURL
		}
		eg := a.guard("eodhd")
		if c.History == nil {
			c.History = eg.History(src)
		}
		c.Fundamentals = append(c.Fundamentals, eg.Fundamentals(src))
	}
	if c.History == nil {
		a.log.Debug("no alpaca or eodhd keys, daily bars read from yahoo")
		c.History = yg.History(y)
	}
	if a.cfg.Yahoo.Equity {
		c.Fundamentals = append(c.Fundamentals, a.guard("equity").Fundamentals(yahoo.NewEquity()))
	}
	return yg.Gainers(y), c
}

// runner returns the Runner of the configured store and market.
func (a *app) runner() *gainers.Runner {
	return &gainers.Runner{
		Store:      a.store,
		Gainers:    a.gainers,
		Provider:   a.provider,
		Invested:   gainers.M(a.cfg.Run.Invested),
		MaxTickers: a.cfg.Run.MaxTickers,
		Logger:     a.log,
	}
}

// snapshots returns the snapshots of tickers, in order, and the tickers that
// have none.
func (a *app) snapshots(ctx context.Context, on date.Date, tickers []string) ([]gainers.Snapshot, []string, error) {
	var snaps []gainers.Snapshot
	var missing []string
	for _, t := range tickers {
		if err := ctx.Err(); err != nil {
			return snaps, missing, err
		}
		s, err := a.provider.Snapshot(ctx, t)
		if err != nil {
			a.log.Warn("snapshot unavailable", zap.String("ticker", t), zap.Error(err))
			missing = append(missing, t)
			continue
		}
		if s.Ticker == "" {
			s.Ticker = t
		}
		s.On = on
		snaps = append(snaps, s)
	}
	return snaps, missing, nil
}
