// Package alpaca reads daily bars and latest trades from the Alpaca market
// data API.
package alpaca

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/etnz/gainers"
	"github.com/etnz/gainers/date"
)

// client is the part of marketdata.Client used here.
type client interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
	GetLatestTrade(symbol string, req marketdata.GetLatestTradeRequest) (*marketdata.Trade, error)
}

// Source reads split adjusted daily bars from the free IEX feed.
type Source struct {
	md   client
	feed marketdata.Feed
}

// New returns a Source authenticated with the API key pair.
func New(apiKey, apiSecret string) *Source {
	return &Source{
		md: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		feed: marketdata.IEX,
	}
}

// DailyBars implements gainers.HistorySource.
func (s *Source) DailyBars(ctx context.Context, ticker string, from, to date.Date) ([]gainers.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bars, err := s.md.GetBars(ticker, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.Split,
		Start:      from.Time(),
		End:        to.Add(1).Time().Add(-time.Second),
		Feed:       s.feed,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: cannot get bars: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: no bars from %s to %s: %w", ticker, from, to, gainers.ErrDataUnavailable)
	}
	out := make([]gainers.Bar, 0, len(bars))
	for _, b := range bars {
		out = append(out, gainers.Bar{
			On:     date.Of(b.Timestamp.UTC()),
			Open:   b.Open,
			Close:  b.Close,
			Volume: float64(b.Volume),
		})
	}
	return out, nil
}

// Fundamentals implements gainers.FundamentalsSource with the price of the
// latest trade. Other fields are Unknown.
func (s *Source) Fundamentals(ctx context.Context, ticker string) (gainers.Fundamentals, error) {
	if err := ctx.Err(); err != nil {
		return gainers.Fundamentals{}, err
	}
	trade, err := s.md.GetLatestTrade(ticker, marketdata.GetLatestTradeRequest{Feed: s.feed})
	if err != nil {
		return gainers.Fundamentals{}, fmt.Errorf("%s: cannot get latest trade: %w", ticker, err)
	}
	if trade == nil || trade.Price <= 0 {
		return gainers.Fundamentals{}, fmt.Errorf("%s: no latest trade: %w", ticker, gainers.ErrDataUnavailable)
	}
	return gainers.Fundamentals{Price: gainers.Known(trade.Price)}, nil
}
