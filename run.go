package gainers

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/gainers/date"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxTickers is the number of gainers scanned per run.
const DefaultMaxTickers = 25

// Runner sequences a run: gainers, snapshots, classification, scan record,
// new positions, revaluation of all ledgers, and summary.
type Runner struct {
	Store    Store
	Gainers  GainersSource
	Provider SnapshotProvider
	// Invested is the amount of each new position, DefaultInvestedAmount if zero.
	Invested Money
	// MaxTickers caps the number of gainers scanned, DefaultMaxTickers if zero.
	MaxTickers int
	Logger     *zap.Logger
}

// Report is the outcome of a run.
type Report struct {
	RunID string
	On    date.Date

	Scanned     int // gainers looked up
	Unavailable int // gainers without a snapshot
	Classified  int // gainers in at least one watchlist
	Opened      int // new positions
	Revalued    int // positions valued at today's price
	Stale       int // positions keeping an older valuation
	Saved       int // ledger files written

	Records  []ScanRecord // today's scan in gainers order
	Totals   Totals       // whole book after revaluation
	Warnings Warnings
}

// Skipped returns the number of errors the run skipped over.
func (r *Report) Skipped() int { return len(r.Warnings) }

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Runner) invested() Money {
	if r.Invested.IsZero() {
		return DefaultInvestedAmount
	}
	return r.Invested
}

func (r *Runner) maxTickers() int {
	if r.MaxTickers <= 0 {
		return DefaultMaxTickers
	}
	return r.MaxTickers
}

// open prepares a run: the store must exist and its ledgers be readable.
// Errors returned here are fatal to the run.
func (r *Runner) open(on date.Date) (*Report, *Book, *zap.Logger, error) {
	rep := &Report{RunID: uuid.NewString(), On: on}
	log := r.logger().With(zap.String("run_id", rep.RunID), zap.Stringer("date", on))
	if err := r.Store.Init(); err != nil {
		return nil, nil, log, err
	}
	book, warnings, err := r.Store.LoadBook(r.invested())
	if err != nil {
		return nil, nil, log, err
	}
	for _, w := range warnings {
		log.Warn("ledger skipped", zap.Error(w))
	}
	rep.Warnings = append(rep.Warnings, warnings...)
	log.Debug("book loaded", zap.Int("ledgers", len(book.Ledgers())), zap.Int("positions", book.Totals().Positions))
	return rep, book, log, nil
}

// Run scans today's gainers, opens positions for the classified ones in the
// ledger of day on, then revalues every ledger.
//
// Per ticker and per file failures are collected in the report warnings. The
// error is only set when the store cannot be accessed or ctx is done.
func (r *Runner) Run(ctx context.Context, on date.Date) (*Report, error) {
	rep, book, log, err := r.open(on)
	if err != nil {
		return nil, err
	}

	tickers, err := r.Gainers.Gainers(ctx)
	if err != nil {
		err = fmt.Errorf("cannot list gainers: %w: %w", ErrDataUnavailable, err)
		log.Warn("no gainers", zap.Error(err))
		rep.Warnings.Add(err)
	}
	tickers = normalizeTickers(tickers, r.maxTickers())
	log.Info("scanning gainers", zap.Int("tickers", len(tickers)))

	snapshots := make(map[string]Snapshot, len(tickers))
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Scanned++
		s, err := r.Provider.Snapshot(ctx, ticker)
		if err != nil {
			rep.Unavailable++
			rep.Warnings.Add(fmt.Errorf("%s: %w", ticker, err))
			log.Warn("snapshot unavailable", zap.String("ticker", ticker), zap.Error(err))
			continue
		}
		if s.Ticker == "" {
			s.Ticker = ticker
		}
		s.On = on
		snapshots[ticker] = s

		tags := Classify(s)
		rep.Records = append(rep.Records, ScanRecord{Snapshot: s, Tags: tags})
		if tags.IsEmpty() {
			continue
		}
		rep.Classified++
		for _, tag := range tags.Tags() {
			p, opened, err := book.OpenPosition(on, ticker, tag, s)
			switch {
			case err != nil:
				rep.Warnings.Add(err)
				log.Warn("position not opened", zap.String("ticker", ticker), zap.Stringer("tag", tag), zap.Error(err))
			case opened:
				rep.Opened++
				log.Info("position opened",
					zap.String("ticker", ticker),
					zap.Stringer("tag", tag),
					zap.String("price", p.OpenPrice.Persisted()),
					zap.String("shares", p.Shares.String()))
			default:
				log.Debug("position already open", zap.String("ticker", ticker), zap.Stringer("tag", tag))
			}
		}
	}

	if len(rep.Records) > 0 {
		if err := r.Store.RecordScan(on, rep.Records); err != nil {
			rep.Warnings.Add(err)
			log.Error("scan not recorded", zap.Error(err))
		}
	}

	if err := r.revalue(ctx, rep, book, snapshots, log); err != nil {
		return rep, err
	}
	return rep, nil
}

// Revalue values every ledger at current prices without scanning gainers.
func (r *Runner) Revalue(ctx context.Context, on date.Date) (*Report, error) {
	rep, book, log, err := r.open(on)
	if err != nil {
		return nil, err
	}
	if err := r.revalue(ctx, rep, book, make(map[string]Snapshot), log); err != nil {
		return rep, err
	}
	return rep, nil
}

// revalue fetches the snapshots still missing for the book tickers, revalues
// the book, writes the modified ledgers and the summary.
func (r *Runner) revalue(ctx context.Context, rep *Report, book *Book, snapshots map[string]Snapshot, log *zap.Logger) error {
	for _, ticker := range book.Tickers() {
		if _, ok := snapshots[ticker]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := r.Provider.Snapshot(ctx, ticker)
		if err != nil {
			// RevalueAll reports the positions left stale.
			log.Debug("no current snapshot", zap.String("ticker", ticker), zap.Error(err))
			continue
		}
		snapshots[ticker] = s
	}

	rv := book.RevalueAll(rep.On, snapshots)
	rep.Revalued, rep.Stale = rv.Revalued, rv.Stale
	rep.Warnings = append(rep.Warnings, rv.Warnings...)
	for _, w := range rv.Warnings {
		log.Warn("position not revalued", zap.Error(w))
	}

	saved, warnings := r.Store.SaveBook(book)
	rep.Saved = saved
	rep.Warnings = append(rep.Warnings, warnings...)
	for _, w := range warnings {
		log.Error("ledger not saved", zap.Error(w))
	}

	rep.Totals = book.Totals()
	if err := r.Store.SaveSummary(NewSummary(rep.On, book)); err != nil {
		rep.Warnings.Add(err)
		log.Error("summary not saved", zap.Error(err))
	}

	log.Info("run complete",
		zap.Int("scanned", rep.Scanned),
		zap.Int("classified", rep.Classified),
		zap.Int("opened", rep.Opened),
		zap.Int("revalued", rep.Revalued),
		zap.Int("stale", rep.Stale),
		zap.Int("skipped", rep.Skipped()))
	return nil
}

// normalizeTickers upper-cases, removes blanks and duplicates keeping the
// first occurrence, and keeps at most max tickers.
func normalizeTickers(tickers []string, max int) []string {
	var out []string
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
		if len(out) == max {
			break
		}
	}
	return out
}
