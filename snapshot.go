package gainers

import (
	"github.com/etnz/gainers/date"
)

// Snapshot is the point-in-time metric bundle of one ticker.
//
// Returns are signed percentages: 15 means +15%. A Snapshot is a value, it is
// never modified once returned by a provider.
type Snapshot struct {
	Ticker string
	On     date.Date

	Price         Metric
	ChangePct     Metric // session change in percent
	WeeklyReturn  Metric
	MonthlyReturn Metric
	YTDReturn     Metric
	Week52Return  Metric
	Week52Low     Metric // lowest price of the last 52 weeks
	Week52High    Metric
	RSI14         Metric
	Volume        Metric
	MarketCap     Metric
	PERatio       Metric
	EPS           Metric
}

// Week52Range returns the 52 weeks range as "low - high", "N/A" if unknown.
func (s Snapshot) Week52Range() string { return formatRange(s.Week52Low, s.Week52High) }

// Fundamentals are the quote fields that are not derived from the price
// history. Any of them may be Unknown.
type Fundamentals struct {
	Price     Metric
	ChangePct Metric
	Volume    Metric
	MarketCap Metric
	PERatio   Metric
	EPS       Metric

	Week52Low  Metric
	Week52High Metric
}
