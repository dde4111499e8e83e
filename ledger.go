package gainers

import (
	"fmt"
	"slices"

	"github.com/etnz/gainers/date"
)

// key identifies a Position within a Ledger.
type key struct {
	ticker string
	tag    Tag
}

// Ledger is the list of positions opened on one calendar day.
//
// Positions keep the order they were opened in, and a Ledger holds at most
// one Position per (ticker, tag).
type Ledger struct {
	on        date.Date
	positions []Position
	index     map[key]int
}

// NewLedger creates an empty ledger for day on.
func NewLedger(on date.Date) *Ledger {
	return &Ledger{
		on:    on,
		index: make(map[key]int),
	}
}

// Date returns the day the ledger was created for.
func (l *Ledger) Date() date.Date { return l.on }

// Len returns the number of positions.
func (l *Ledger) Len() int { return len(l.positions) }

// Positions returns a copy of the positions in opening order.
func (l *Ledger) Positions() []Position { return slices.Clone(l.positions) }

// Position returns the position of ticker in watchlist tag.
func (l *Ledger) Position(ticker string, tag Tag) (Position, bool) {
	i, ok := l.index[key{ticker, tag}]
	if !ok {
		return Position{}, false
	}
	return l.positions[i], true
}

// Has reports whether ticker was opened in watchlist tag.
func (l *Ledger) Has(ticker string, tag Tag) bool {
	_, ok := l.index[key{ticker, tag}]
	return ok
}

// Append adds p at the end of the ledger.
//
// It returns ErrDuplicatePosition if the ledger already holds (p.Ticker, p.Tag).
func (l *Ledger) Append(p Position) error {
	k := key{p.Ticker, p.Tag}
	if _, exists := l.index[k]; exists {
		return fmt.Errorf("%s (%s) on %s: %w", p.Ticker, p.Tag, l.on, ErrDuplicatePosition)
	}
	l.index[k] = len(l.positions)
	l.positions = append(l.positions, p)
	return nil
}

// Tickers returns the distinct tickers of the ledger in opening order.
func (l *Ledger) Tickers() []string {
	tickers := make([]string, 0, len(l.positions))
	for _, p := range l.positions {
		if !slices.Contains(tickers, p.Ticker) {
			tickers = append(tickers, p.Ticker)
		}
	}
	return tickers
}

// Totals aggregates the ledger positions.
func (l *Ledger) Totals() Totals {
	var t Totals
	for _, p := range l.positions {
		t.add(p)
	}
	return t
}

// Totals aggregates a set of positions.
type Totals struct {
	Positions int
	Invested  Money
	Value     Money
}

func (t *Totals) add(p Position) {
	t.Positions++
	t.Invested = t.Invested.Add(p.Invested)
	t.Value = t.Value.Add(p.CurrentValue)
}

// Merge returns the sum of t and u.
func (t Totals) Merge(u Totals) Totals {
	return Totals{
		Positions: t.Positions + u.Positions,
		Invested:  t.Invested.Add(u.Invested),
		Value:     t.Value.Add(u.Value),
	}
}

// PnL returns the value gained over the invested amount.
func (t Totals) PnL() Money { return t.Value.Sub(t.Invested) }

// Return returns the PnL in percent of the invested amount, 0 if nothing was invested.
func (t Totals) Return() Percent {
	if !t.Invested.IsPositive() {
		return 0
	}
	return t.PnL().Ratio(t.Invested)
}
