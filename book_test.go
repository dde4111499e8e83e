package gainers

import (
	"errors"
	"testing"
)

func TestNewPosition(t *testing.T) {
	p, err := NewPosition(day("2025-03-03"), "ACME", Rockets, USD(40), USD(1000))
	if err != nil {
		t.Fatalf("NewPosition() error = %v", err)
	}
	if !p.Shares.Equal(Q(25)) {
		t.Errorf("Shares = %v, want 25", p.Shares)
	}
	if !p.CurrentValue.Equal(USD(1000)) || !p.PnL.IsZero() || p.PnLPct != 0 {
		t.Errorf("opening valuation = %v, %v, %v, want 1000, 0, 0", p.CurrentValue, p.PnL, p.PnLPct)
	}
	if p.LastUpdated != p.OpenDate {
		t.Errorf("LastUpdated = %v, want %v", p.LastUpdated, p.OpenDate)
	}

	for _, price := range []Money{USD(0), USD(-1), USD(1e-10)} {
		if _, err := NewPosition(day("2025-03-03"), "ACME", Rockets, price, USD(1000)); !errors.Is(err, ErrInvalidNumeric) {
			t.Errorf("NewPosition(price=%v) error = %v, want ErrInvalidNumeric", price.Persisted(), err)
		}
	}
	if _, err := NewPosition(day("2025-03-03"), "ACME", Rockets, USD(1), USD(0)); !errors.Is(err, ErrInvalidNumeric) {
		t.Errorf("NewPosition(invested=0) error = %v, want ErrInvalidNumeric", err)
	}
}

func TestPosition_Revalue(t *testing.T) {
	p, _ := NewPosition(day("2025-03-03"), "ACME", Rockets, USD(40), USD(1000))
	if err := p.Revalue(USD(50), day("2025-03-04")); err != nil {
		t.Fatalf("Revalue() error = %v", err)
	}
	if !p.CurrentValue.Equal(USD(1250)) {
		t.Errorf("CurrentValue = %v, want 1250", p.CurrentValue)
	}
	if !p.PnL.Equal(USD(250)) {
		t.Errorf("PnL = %v, want 250", p.PnL)
	}
	if !p.PnLPct.Equal(25) {
		t.Errorf("PnLPct = %v, want 25", p.PnLPct)
	}
	if p.LastUpdated != day("2025-03-04") {
		t.Errorf("LastUpdated = %v", p.LastUpdated)
	}

	before := p
	if err := p.Revalue(USD(0), day("2025-03-05")); !errors.Is(err, ErrInvalidNumeric) {
		t.Errorf("Revalue(0) error = %v, want ErrInvalidNumeric", err)
	}
	if p != before {
		t.Errorf("Revalue(0) changed the position")
	}
}

func TestBook_OpenPosition(t *testing.T) {
	b := NewBook(USD(1000))
	on := day("2025-03-03")

	p, opened, err := b.OpenPosition(on, "ACME", Rockets, snap("ACME", 40, 60, 12))
	if err != nil || !opened {
		t.Fatalf("OpenPosition() = %v, %v, want opened", opened, err)
	}
	if !p.Shares.Equal(Q(25)) {
		t.Errorf("Shares = %v, want 25", p.Shares)
	}

	// Reopening the same key at another price is a no-op.
	again, opened, err := b.OpenPosition(on, "ACME", Rockets, snap("ACME", 80, 60, 12))
	if err != nil || opened {
		t.Fatalf("OpenPosition() again = %v, %v, want not opened", opened, err)
	}
	if !again.OpenPrice.Equal(USD(40)) {
		t.Errorf("existing OpenPrice = %v, want 40", again.OpenPrice)
	}

	// Another tag of the same ticker is a different position.
	if _, opened, _ := b.OpenPosition(on, "ACME", Turnarounds, snap("ACME", 40, -5, 12)); !opened {
		t.Errorf("OpenPosition() for another tag not opened")
	}
	// The same key another day is a different position.
	if _, opened, _ := b.OpenPosition(day("2025-03-04"), "ACME", Rockets, snap("ACME", 50, 60, 12)); !opened {
		t.Errorf("OpenPosition() on another day not opened")
	}
	if got := b.Ledger(on).Len(); got != 2 {
		t.Errorf("ledger %v has %d positions, want 2", on, got)
	}
	if got := len(b.Ledgers()); got != 2 {
		t.Errorf("book has %d ledgers, want 2", got)
	}

	if _, _, err := b.OpenPosition(on, "NOPE", Rockets, Snapshot{Ticker: "NOPE"}); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("OpenPosition() without price error = %v, want ErrDataUnavailable", err)
	}
	if _, _, err := b.OpenPosition(on, "ZERO", Rockets, snap("ZERO", 0, 60, 12)); !errors.Is(err, ErrInvalidNumeric) {
		t.Errorf("OpenPosition() at zero error = %v, want ErrInvalidNumeric", err)
	}
	if b.Ledger(on).Has("ZERO", Rockets) {
		t.Errorf("a failed opening left a position")
	}
}

func TestBook_OpenPosition_NoEmptyLedger(t *testing.T) {
	b := NewBook(USD(1000))
	if _, _, err := b.OpenPosition(day("2025-03-03"), "X", Rockets, Snapshot{}); err == nil {
		t.Fatalf("OpenPosition() without price succeeded")
	}
	if len(b.Ledgers()) != 0 || len(b.Modified()) != 0 {
		t.Errorf("a failed opening created a ledger")
	}
}

func TestBook_OpenPosition_BrokenLedger(t *testing.T) {
	b := NewBook(USD(1000))
	on := day("2025-03-03")
	b.markBroken(on, errors.New("line 4: invalid amount"))

	if _, opened, err := b.OpenPosition(on, "RCKT", Rockets, snap("RCKT", 20, 60, 12)); !errors.Is(err, ErrPersistence) || opened {
		t.Errorf("OpenPosition() in an unloaded ledger = %v, %v, want ErrPersistence", opened, err)
	}
	if b.Ledger(on) != nil || len(b.Modified()) != 0 {
		t.Errorf("OpenPosition() created the ledger of an unloaded day")
	}
	// Other days are not affected.
	if _, opened, err := b.OpenPosition(day("2025-03-04"), "RCKT", Rockets, snap("RCKT", 20, 60, 12)); err != nil || !opened {
		t.Errorf("OpenPosition() next day = %v, %v", opened, err)
	}
}

func TestBook_RevalueAll(t *testing.T) {
	b := NewBook(USD(1000))
	d1, d2, today := day("2025-03-03"), day("2025-03-04"), day("2025-03-05")
	b.OpenPosition(d1, "AAA", Rockets, snap("AAA", 10, 60, 12))
	b.OpenPosition(d1, "BBB", Turnarounds, snap("BBB", 20, -5, 12))
	b.OpenPosition(d2, "AAA", SimmeringGrowth, snap("AAA", 20, 15, 6))
	b.OpenPosition(d2, "CCC", Rockets, snap("CCC", 5, 60, 12))

	r := b.RevalueAll(today, map[string]Snapshot{
		"AAA": snap("AAA", 30, 0, 0),
		"CCC": {Ticker: "CCC"}, // no price
	})
	if r.Revalued != 2 || r.Stale != 2 {
		t.Errorf("RevalueAll() = %d revalued %d stale, want 2 and 2", r.Revalued, r.Stale)
	}
	if got := r.Warnings.Count(ErrDataUnavailable); got != 2 {
		t.Errorf("RevalueAll() has %d ErrDataUnavailable warnings, want 2", got)
	}

	aaa1, _ := b.Ledger(d1).Position("AAA", Rockets)
	if !aaa1.CurrentValue.Equal(USD(3000)) || aaa1.LastUpdated != today {
		t.Errorf("AAA Rockets = %v on %v, want 3000 on %v", aaa1.CurrentValue, aaa1.LastUpdated, today)
	}
	aaa2, _ := b.Ledger(d2).Position("AAA", SimmeringGrowth)
	if !aaa2.CurrentValue.Equal(USD(1500)) || !aaa2.PnLPct.Equal(50) {
		t.Errorf("AAA Simmering = %v (%v), want 1500 (50%%)", aaa2.CurrentValue, aaa2.PnLPct)
	}
	// Stale positions keep their previous valuation.
	bbb, _ := b.Ledger(d1).Position("BBB", Turnarounds)
	if !bbb.CurrentValue.Equal(USD(1000)) || bbb.LastUpdated != d1 || !bbb.IsStale(today) {
		t.Errorf("BBB = %v on %v, want unchanged", bbb.CurrentValue, bbb.LastUpdated)
	}
	// Identity fields never change.
	if !aaa1.OpenPrice.Equal(USD(10)) || !aaa1.Shares.Equal(Q(100)) || aaa1.OpenDate != d1 {
		t.Errorf("AAA Rockets identity changed: %+v", aaa1)
	}

	totals := b.Totals()
	if totals.Positions != 4 || !totals.Invested.Equal(USD(4000)) || !totals.Value.Equal(USD(6500)) {
		t.Errorf("Totals() = %+v", totals)
	}
	if !totals.Return().Equal(62.5) {
		t.Errorf("Totals().Return() = %v, want 62.5", totals.Return())
	}
}

func TestBook_RevalueAll_KeepsLastValuation(t *testing.T) {
	b := NewBook(USD(1000))
	d1, d2, d3 := day("2025-03-03"), day("2025-03-04"), day("2025-03-05")
	b.OpenPosition(d1, "AAA", Rockets, snap("AAA", 10, 60, 12))
	if r := b.RevalueAll(d2, map[string]Snapshot{"AAA": snap("AAA", 15, 0, 0)}); r.Revalued != 1 {
		t.Fatalf("RevalueAll(%v) = %+v, want one revalued", d2, r)
	}

	// The quote is gone the next day: the revaluation of d2 stays, not the opening one.
	r := b.RevalueAll(d3, map[string]Snapshot{"AAA": {Ticker: "AAA"}})
	if r.Stale != 1 {
		t.Errorf("RevalueAll(%v) = %+v, want one stale", d3, r)
	}
	p, _ := b.Ledger(d1).Position("AAA", Rockets)
	if !p.CurrentPrice.Equal(USD(15)) || !p.CurrentValue.Equal(USD(1500)) || !p.PnL.Equal(USD(500)) || !p.PnLPct.Equal(50) {
		t.Errorf("stale AAA = %v at %v (%v, %v%%), want 1500 at 15 (500, 50%%)", p.CurrentValue, p.CurrentPrice, p.PnL, p.PnLPct)
	}
	if p.LastUpdated != d2 || !p.IsStale(d3) {
		t.Errorf("stale AAA last updated %v, want %v", p.LastUpdated, d2)
	}
}

func TestBook_RevalueAll_InvalidShares(t *testing.T) {
	b := NewBook(USD(1000))
	l := NewLedger(day("2025-03-03"))
	l.Append(Position{Ticker: "BAD", Tag: Rockets, OpenDate: day("2025-03-03"), OpenPrice: USD(1), Invested: USD(1000)})
	if err := b.Add(l); err != nil {
		t.Fatal(err)
	}
	r := b.RevalueAll(day("2025-03-04"), map[string]Snapshot{"BAD": snap("BAD", 2, 0, 0)})
	if r.Stale != 1 || r.Warnings.Count(ErrInvalidNumeric) != 1 {
		t.Errorf("RevalueAll() = %+v, want one ErrInvalidNumeric stale position", r)
	}
	if len(b.Modified()) != 0 {
		t.Errorf("a failed revaluation marked the ledger modified")
	}
}

func TestBook_Add(t *testing.T) {
	b := NewBook(USD(1000))
	for _, s := range []string{"2025-03-05", "2025-03-03", "2025-03-04"} {
		if err := b.Add(NewLedger(day(s))); err != nil {
			t.Fatalf("Add(%s) error = %v", s, err)
		}
	}
	if err := b.Add(NewLedger(day("2025-03-04"))); err == nil {
		t.Errorf("Add() of a duplicate day succeeded")
	}
	ledgers := b.Ledgers()
	for i := 1; i < len(ledgers); i++ {
		if !ledgers[i-1].Date().Before(ledgers[i].Date()) {
			t.Errorf("ledgers not sorted: %v before %v", ledgers[i-1].Date(), ledgers[i].Date())
		}
	}
}
