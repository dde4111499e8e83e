package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// Year returns the year ending on d: from the same day one year earlier.
func Year(d Date) Range { return Range{From: d.AddYears(-1), To: d} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of days in the range.
func (r Range) Days() int {
	if r.To.Before(r.From) {
		return 0
	}
	return int(r.To.time().Sub(r.From.time())/Day) + 1
}

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
