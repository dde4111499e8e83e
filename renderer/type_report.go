package renderer

import (
	"github.com/etnz/gainers"
	"github.com/etnz/gainers/date"
)

// Report is the rendering view of a run report.
type Report struct {
	RunID string
	Date  date.Date

	Scanned     int
	Unavailable int
	Classified  int
	Opened      int
	Revalued    int
	Stale       int
	Skipped     int

	Positions int
	Invested  gainers.Money
	Value     gainers.Money
	PnL       gainers.Money
	Return    gainers.Percent

	Watchlists []Watchlist
	Warnings   []string
}

// Watchlists is the rendering view of a scan.
type Watchlists struct {
	Date       date.Date
	Watchlists []Watchlist
}

// Watchlist is the scan records of one watchlist.
type Watchlist struct {
	Name string
	Rule string
	Rows []gainers.ScanRecord
}

// NewReport creates the view of a run report.
func NewReport(r *gainers.Report) *Report {
	v := &Report{
		RunID:       r.RunID,
		Date:        r.On,
		Scanned:     r.Scanned,
		Unavailable: r.Unavailable,
		Classified:  r.Classified,
		Opened:      r.Opened,
		Revalued:    r.Revalued,
		Stale:       r.Stale,
		Skipped:     r.Skipped(),
		Positions:   r.Totals.Positions,
		Invested:    r.Totals.Invested,
		Value:       r.Totals.Value,
		PnL:         r.Totals.PnL(),
		Return:      r.Totals.Return(),
		Watchlists:  group(r.Records),
	}
	for _, w := range r.Warnings {
		v.Warnings = append(v.Warnings, w.Error())
	}
	return v
}

// NewWatchlists creates the view of the scan of day on.
func NewWatchlists(on date.Date, records []gainers.ScanRecord) *Watchlists {
	return &Watchlists{Date: on, Watchlists: group(records)}
}

// group returns one Watchlist per tag, in display order, and a last one for
// records in no watchlist if any. A record appears in every watchlist of its tags.
func group(records []gainers.ScanRecord) []Watchlist {
	var lists []Watchlist
	for _, rule := range gainers.Rules() {
		w := Watchlist{Name: rule.Tag.String(), Rule: rule.Description}
		for _, rec := range records {
			if rec.Tags.Has(rule.Tag) {
				w.Rows = append(w.Rows, rec)
			}
		}
		lists = append(lists, w)
	}
	other := Watchlist{Name: gainers.TagSet(0).String(), Rule: "No watchlist rule matches"}
	for _, rec := range records {
		if rec.Tags.IsEmpty() {
			other.Rows = append(other.Rows, rec)
		}
	}
	if len(other.Rows) > 0 {
		lists = append(lists, other)
	}
	return lists
}
