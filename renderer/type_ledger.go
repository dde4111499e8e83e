package renderer

import (
	"github.com/etnz/gainers"
	"github.com/etnz/gainers/date"
)

// Ledger is the rendering view of a daily ledger.
type Ledger struct {
	Date      date.Date
	AsOf      date.Date // positions valued before AsOf are stale
	Positions []LedgerPosition
	Totals    gainers.Totals
}

// LedgerPosition is a position and whether its valuation is stale.
type LedgerPosition struct {
	gainers.Position
	Stale bool
}

// NewLedger creates the view of l as of day asOf.
func NewLedger(l *gainers.Ledger, asOf date.Date) *Ledger {
	v := &Ledger{Date: l.Date(), AsOf: asOf, Totals: l.Totals()}
	for _, p := range l.Positions() {
		v.Positions = append(v.Positions, LedgerPosition{Position: p, Stale: p.IsStale(asOf)})
	}
	return v
}

// Summary is the rendering view of the book summary.
type Summary struct {
	gainers.Summary
}

// NewSummary creates the view of s.
func NewSummary(s gainers.Summary) *Summary { return &Summary{Summary: s} }
