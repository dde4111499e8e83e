package yahoo

import (
	"context"
	"fmt"

	"github.com/etnz/gainers"
	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"
)

// Equity reads quote fundamentals (market cap, PE, EPS) through finance-go.
type Equity struct {
	get func(symbol string) (*finance.Equity, error)
}

// NewEquity returns an Equity source calling the finance-go quote API.
func NewEquity() *Equity { return &Equity{get: equity.Get} }

// Fundamentals implements gainers.FundamentalsSource. Fields the API leaves
// empty are Unknown.
func (e *Equity) Fundamentals(ctx context.Context, ticker string) (gainers.Fundamentals, error) {
	if err := ctx.Err(); err != nil {
		return gainers.Fundamentals{}, err
	}
	q, err := e.get(ticker)
	if err != nil {
		return gainers.Fundamentals{}, fmt.Errorf("%s: cannot get equity quote: %w", ticker, err)
	}
	if q == nil {
		return gainers.Fundamentals{}, fmt.Errorf("%s: no equity quote: %w", ticker, gainers.ErrDataUnavailable)
	}
	return gainers.Fundamentals{
		Price:     nonZero(q.RegularMarketPrice),
		ChangePct: nonZero(q.RegularMarketChangePercent),
		Volume:    nonZero(float64(q.RegularMarketVolume)),
		MarketCap: nonZero(float64(q.MarketCap)),
		PERatio:   nonZero(q.TrailingPE),
		EPS:       nonZero(q.EpsTrailingTwelveMonths),

		Week52Low:  nonZero(q.FiftyTwoWeekLow),
		Week52High: nonZero(q.FiftyTwoWeekHigh),
	}, nil
}

// nonZero treats the zero value of an omitted field as unknown.
func nonZero(v float64) gainers.Metric {
	if v == 0 {
		return gainers.Unknown
	}
	return gainers.Known(v)
}
