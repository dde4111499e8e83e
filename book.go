package gainers

import (
	"fmt"
	"slices"

	"github.com/etnz/gainers/date"
)

// Book is the set of all daily ledgers.
//
// A Book is not safe for concurrent use. Runs against the same store must be
// serialized: at most one run at a time.
type Book struct {
	invested Money
	ledgers  []*Ledger // sorted by date
	dirty    map[date.Date]bool
	broken   map[date.Date]error // days whose ledger file could not be loaded
}

// NewBook creates an empty book opening positions of invested each.
func NewBook(invested Money) *Book {
	return &Book{
		invested: invested,
		dirty:    make(map[date.Date]bool),
		broken:   make(map[date.Date]error),
	}
}

// markBroken records that the ledger file of day on exists but could not be
// loaded. The book never opens positions in it, so it is never written over.
func (b *Book) markBroken(on date.Date, err error) { b.broken[on] = err }

// InvestedAmount returns the amount invested in each new position.
func (b *Book) InvestedAmount() Money { return b.invested }

// Ledgers returns the ledgers in chronological order.
func (b *Book) Ledgers() []*Ledger { return slices.Clone(b.ledgers) }

// Ledger returns the ledger of day on, or nil.
func (b *Book) Ledger(on date.Date) *Ledger {
	i, found := b.search(on)
	if !found {
		return nil
	}
	return b.ledgers[i]
}

func (b *Book) search(on date.Date) (int, bool) {
	return slices.BinarySearchFunc(b.ledgers, on, func(l *Ledger, on date.Date) int {
		return date.Compare(l.on, on)
	})
}

// Add inserts a loaded ledger. It fails if the book already has a ledger for that day.
func (b *Book) Add(l *Ledger) error {
	i, found := b.search(l.on)
	if found {
		return fmt.Errorf("ledger for %s is already loaded", l.on)
	}
	b.ledgers = slices.Insert(b.ledgers, i, l)
	return nil
}

// OpenPosition opens a position in ticker for watchlist tag in the ledger of
// day on, at the snapshot price.
//
// The ledger is created with its first position. If the ledger already holds
// (ticker, tag) nothing changes and OpenPosition returns the existing position
// and false: reopening is a no-op, not an error. It returns ErrDataUnavailable
// when the price is unknown and ErrInvalidNumeric when it is not positive.
// It returns ErrPersistence when the ledger file of that day could not be
// loaded.
func (b *Book) OpenPosition(on date.Date, ticker string, tag Tag, s Snapshot) (Position, bool, error) {
	if err, broken := b.broken[on]; broken {
		return Position{}, false, fmt.Errorf("cannot open %s (%s): ledger %s not loaded: %w: %w", ticker, tag, on, ErrPersistence, err)
	}
	l := b.Ledger(on)
	if l != nil {
		if p, exists := l.Position(ticker, tag); exists {
			return p, false, nil
		}
	}
	price, ok := s.Price.Get()
	if !ok {
		return Position{}, false, fmt.Errorf("cannot open %s (%s): no price: %w", ticker, tag, ErrDataUnavailable)
	}
	p, err := NewPosition(on, ticker, tag, M(price), b.invested)
	if err != nil {
		return Position{}, false, err
	}
	if l == nil {
		l = NewLedger(on)
		if err := b.Add(l); err != nil {
			return Position{}, false, err
		}
	}
	if err := l.Append(p); err != nil {
		return Position{}, false, err
	}
	b.dirty[on] = true
	return p, true, nil
}

// Revaluation is the outcome of RevalueAll.
type Revaluation struct {
	Revalued int // positions valued at a current price
	Stale    int // positions left with their previous valuation
	Warnings Warnings
}

// RevalueAll values every position of every ledger at the price of the
// snapshot of its ticker.
//
// A position whose ticker has no snapshot, or a snapshot without a usable
// price, keeps its previous valuation fields: a stale value is kept rather
// than erased. Every such position is counted as Stale with a warning, and the
// pass always continues with the next position.
func (b *Book) RevalueAll(on date.Date, snapshots map[string]Snapshot) Revaluation {
	var r Revaluation
	for _, l := range b.ledgers {
		for i := range l.positions {
			p := &l.positions[i]
			s, found := snapshots[p.Ticker]
			if !found {
				r.Stale++
				r.Warnings.Addf("%s (%s) in ledger %s: no current snapshot, keeping valuation of %s: %w", p.Ticker, p.Tag, l.on, p.LastUpdated, ErrDataUnavailable)
				continue
			}
			price, ok := s.Price.Get()
			if !ok {
				r.Stale++
				r.Warnings.Addf("%s (%s) in ledger %s: no current price, keeping valuation of %s: %w", p.Ticker, p.Tag, l.on, p.LastUpdated, ErrDataUnavailable)
				continue
			}
			if err := p.Revalue(M(price), on); err != nil {
				r.Stale++
				r.Warnings.Add(fmt.Errorf("ledger %s: %w", l.on, err))
				continue
			}
			r.Revalued++
			b.dirty[l.on] = true
		}
	}
	return r
}

// Tickers returns every ticker referenced by any ledger, in order of first appearance.
func (b *Book) Tickers() []string {
	var tickers []string
	for _, l := range b.ledgers {
		for _, t := range l.Tickers() {
			if !slices.Contains(tickers, t) {
				tickers = append(tickers, t)
			}
		}
	}
	return tickers
}

// Positions returns every position of every ledger, ledgers in chronological order.
func (b *Book) Positions() []Position {
	var all []Position
	for _, l := range b.ledgers {
		all = append(all, l.positions...)
	}
	return all
}

// Totals aggregates all ledgers.
func (b *Book) Totals() Totals {
	var t Totals
	for _, l := range b.ledgers {
		t = t.Merge(l.Totals())
	}
	return t
}

// Modified returns the ledgers changed since they were loaded, in chronological order.
func (b *Book) Modified() []*Ledger {
	var modified []*Ledger
	for _, l := range b.ledgers {
		if _, broken := b.broken[l.on]; broken {
			continue
		}
		if b.dirty[l.on] {
			modified = append(modified, l)
		}
	}
	return modified
}

// markSaved clears the modified flag of a ledger.
func (b *Book) markSaved(on date.Date) { delete(b.dirty, on) }
