package gainers

import (
	"fmt"
	"slices"

	"github.com/etnz/gainers/date"
)

// Bar is one daily price bar.
type Bar struct {
	On     date.Date
	Open   float64
	Close  float64
	Volume float64
}

// Lookbacks, in trading days.
const (
	weekBars  = 5
	monthBars = 21
	rsiPeriod = 14
)

// HistoryStart is the first day of price history ComputeSnapshot needs for a snapshot on day on.
func HistoryStart(on date.Date) date.Date { return date.Year(on).From }

// ComputeSnapshot derives the snapshot of ticker on day on from up to one
// year of daily bars and the quote fundamentals.
//
// The price is the fundamentals price when known, or the last close. A return
// is Unknown when the history is too short or its reference price is not
// positive. It returns ErrDataUnavailable if there is neither a bar nor a price.
func ComputeSnapshot(ticker string, on date.Date, bars []Bar, f Fundamentals) (Snapshot, error) {
	window := date.Year(on)
	bars = slices.DeleteFunc(slices.Clone(bars), func(b Bar) bool { return !window.Contains(b.On) })
	slices.SortStableFunc(bars, func(a, b Bar) int { return date.Compare(a.On, b.On) })

	price := f.Price
	if !price.IsKnown() && len(bars) > 0 {
		price = Known(bars[len(bars)-1].Close)
	}
	p, ok := price.Get()
	if !ok {
		return Snapshot{}, fmt.Errorf("%s: no price and no history: %w", ticker, ErrDataUnavailable)
	}

	s := Snapshot{
		Ticker:    ticker,
		On:        on,
		Price:     price,
		ChangePct: f.ChangePct,
		Volume:    f.Volume,
		MarketCap: f.MarketCap,
		PERatio:   f.PERatio,
		EPS:       f.EPS,

		Week52Low:  f.Week52Low,
		Week52High: f.Week52High,
	}
	if !s.Volume.IsKnown() && len(bars) > 0 {
		s.Volume = Known(bars[len(bars)-1].Volume)
	}

	n := len(bars)
	if n > weekBars {
		s.WeeklyReturn = change(bars[n-1-weekBars].Close, p)
	}
	if n > monthBars {
		s.MonthlyReturn = change(bars[n-1-monthBars].Close, p)
	}
	if n > 0 {
		s.Week52Return = change(bars[0].Close, p)
		// Without a quoted range, the range of the closes.
		if !s.Week52Low.IsKnown() || !s.Week52High.IsKnown() {
			c := closes(bars)
			s.Week52Low, s.Week52High = Known(slices.Min(c)), Known(slices.Max(c))
		}
	}
	yearStart := on.StartOfYear()
	if i := slices.IndexFunc(bars, func(b Bar) bool { return !b.On.Before(yearStart) }); i >= 0 {
		s.YTDReturn = change(bars[i].Open, p)
	}
	s.RSI14 = RSI(closes(bars), rsiPeriod)
	return s, nil
}

// change returns the change from ref to p in percent.
func change(ref, p float64) Metric {
	if ref <= 0 {
		return Unknown
	}
	return Known((p - ref) / ref * 100)
}

func closes(bars []Bar) []float64 {
	c := make([]float64, len(bars))
	for i, b := range bars {
		c[i] = b.Close
	}
	return c
}

// RSI returns the relative strength index of the last period price changes,
// using simple means of gains and losses.
//
// It is 100 when there are gains and no losses, 50 when prices did not move,
// and Unknown with fewer than period+1 prices.
func RSI(prices []float64, period int) Metric {
	if period <= 0 || len(prices) < period+1 {
		return Unknown
	}
	var gain, loss float64
	for i := len(prices) - period; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}
	gain /= float64(period)
	loss /= float64(period)
	if loss == 0 {
		if gain > 0 {
			return Known(100)
		}
		return Known(50)
	}
	rs := gain / loss
	return Known(100 - 100/(1+rs))
}
