package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/gainers"
	"github.com/etnz/gainers/date"
	"go.uber.org/zap"
)

// Composite computes snapshots from a price history source and any number
// of fundamentals sources.
//
// Fundamentals are merged field by field: the first source knowing a field
// wins. A failing source only leaves its fields unknown. Snapshot fails with
// gainers.ErrDataUnavailable when no source gives a price.
type Composite struct {
	History      gainers.HistorySource
	Fundamentals []gainers.FundamentalsSource
	// Today returns the snapshot day, date.Today if nil.
	Today func() date.Date
	Log   *zap.Logger
}

func (c *Composite) today() date.Date {
	if c.Today == nil {
		return date.Today()
	}
	return c.Today()
}

func (c *Composite) log() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

// Snapshot implements gainers.SnapshotProvider.
func (c *Composite) Snapshot(ctx context.Context, ticker string) (gainers.Snapshot, error) {
	on := c.today()
	log := c.log().With(zap.String("ticker", ticker))
	var errs []error

	var f gainers.Fundamentals
	for _, src := range c.Fundamentals {
		q, err := src.Fundamentals(ctx, ticker)
		if err != nil {
			log.Debug("fundamentals unavailable", zap.Error(err))
			errs = append(errs, err)
			continue
		}
		f = Merge(f, q)
	}

	var bars []gainers.Bar
	if c.History != nil {
		var err error
		bars, err = c.History.DailyBars(ctx, ticker, gainers.HistoryStart(on), on)
		if err != nil {
			log.Debug("history unavailable", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return gainers.Snapshot{}, err
	}

	s, err := gainers.ComputeSnapshot(ticker, on, bars, f)
	if err != nil && len(errs) > 0 {
		return gainers.Snapshot{}, fmt.Errorf("%w: %w", err, errors.Join(errs...))
	}
	if err != nil {
		return gainers.Snapshot{}, err
	}
	return s, nil
}

// Merge returns a with its unknown fields taken from b.
func Merge(a, b gainers.Fundamentals) gainers.Fundamentals {
	pick := func(x, y gainers.Metric) gainers.Metric {
		if x.IsKnown() {
			return x
		}
		return y
	}
	return gainers.Fundamentals{
		Price:     pick(a.Price, b.Price),
		ChangePct: pick(a.ChangePct, b.ChangePct),
		Volume:    pick(a.Volume, b.Volume),
		MarketCap: pick(a.MarketCap, b.MarketCap),
		PERatio:   pick(a.PERatio, b.PERatio),
		EPS:       pick(a.EPS, b.EPS),

		Week52Low:  pick(a.Week52Low, b.Week52Low),
		Week52High: pick(a.Week52High, b.Week52High),
	}
}
