package gainers

import "github.com/etnz/gainers/date"

// USD is a helper for test to create money from const.
func USD(v float64) Money { return M(v) }

// day is a helper for test to parse dates.
func day(s string) date.Date { return date.MustParse(s) }

// snap returns a snapshot of ticker with the given price, 52-week and monthly returns.
func snap(ticker string, price, week52, monthly float64) Snapshot {
	return Snapshot{
		Ticker:        ticker,
		Price:         Known(price),
		Week52Return:  Known(week52),
		MonthlyReturn: Known(monthly),
	}
}
