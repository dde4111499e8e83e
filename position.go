package gainers

import (
	"fmt"

	"github.com/etnz/gainers/date"
	"github.com/shopspring/decimal"
)

// DefaultInvestedAmount is the amount invested in each simulated position.
var DefaultInvestedAmount = M(1000)

// minPrice is the smallest price a position can be opened or valued at.
var minPrice = M(decimal.New(1, -9))

// Position is one simulated fixed-amount investment in a ticker under a watchlist.
//
// Ticker, Tag, OpenDate, OpenPrice, Shares and Invested are set when the
// position is opened and never change. The valuation fields are overwritten
// by every revaluation.
type Position struct {
	Ticker    string
	Tag       Tag
	OpenDate  date.Date
	OpenPrice Money
	Shares    Quantity
	Invested  Money

	CurrentPrice Money
	CurrentValue Money
	PnL          Money
	PnLPct       Percent
	// LastUpdated is the day of the last successful valuation.
	LastUpdated date.Date
}

// NewPosition opens a position of invested at price.
//
// It returns ErrInvalidNumeric if price is not strictly positive or invested is not positive.
func NewPosition(on date.Date, ticker string, tag Tag, price, invested Money) (Position, error) {
	if price.LessThan(minPrice) {
		return Position{}, fmt.Errorf("cannot open %s (%s) at %s: %w", ticker, tag, price.Persisted(), ErrInvalidNumeric)
	}
	if !invested.IsPositive() {
		return Position{}, fmt.Errorf("cannot invest %s in %s: %w", invested.Persisted(), ticker, ErrInvalidNumeric)
	}
	p := Position{
		Ticker:    ticker,
		Tag:       tag,
		OpenDate:  on,
		OpenPrice: price,
		Shares:    invested.DivPrice(price),
		Invested:  invested,

		CurrentPrice: price,
		CurrentValue: invested,
		LastUpdated:  on,
	}
	return p, nil
}

// value sets the valuation fields at price.
func (p *Position) value(price Money, on date.Date) {
	p.CurrentPrice = price
	p.CurrentValue = price.Mul(p.Shares)
	p.PnL = p.CurrentValue.Sub(p.Invested)
	p.PnLPct = p.PnL.Ratio(p.Invested)
	p.LastUpdated = on
}

// Revalue updates the valuation fields at price.
//
// It returns ErrInvalidNumeric and leaves p unchanged when the price or the
// position's own figures cannot produce a valuation.
func (p *Position) Revalue(price Money, on date.Date) error {
	if price.LessThan(minPrice) {
		return fmt.Errorf("cannot value %s at %s: %w", p.Ticker, price.Persisted(), ErrInvalidNumeric)
	}
	if !p.Shares.IsPositive() || !p.Invested.IsPositive() {
		return fmt.Errorf("position %s (%s) opened on %s has shares %s for %s: %w", p.Ticker, p.Tag, p.OpenDate, p.Shares.Persisted(), p.Invested.Persisted(), ErrInvalidNumeric)
	}
	p.value(price, on)
	return nil
}

// IsStale reports whether the valuation is older than on.
func (p Position) IsStale(on date.Date) bool { return p.LastUpdated.Before(on) }
