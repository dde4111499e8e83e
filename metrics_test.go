package gainers

import (
	"errors"
	"math"
	"testing"

	"github.com/etnz/gainers/date"
)

// bars returns one bar per day ending on last, with the given closes.
func bars(last date.Date, closes ...float64) []Bar {
	out := make([]Bar, len(closes))
	for i, c := range closes {
		out[i] = Bar{On: last.Add(i - len(closes) + 1), Open: c, Close: c, Volume: 1000 + float64(i)}
	}
	return out
}

func near(m Metric, want float64) bool {
	v, ok := m.Get()
	return ok && math.Abs(v-want) < 1e-9
}

func TestComputeSnapshot(t *testing.T) {
	on := day("2025-06-30")
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	// last close is 129, 5 bars before is 124, 21 bars before is 108, first is 100.
	s, err := ComputeSnapshot("ACME", on, bars(on, closes...), Fundamentals{PERatio: Known(12)})
	if err != nil {
		t.Fatalf("ComputeSnapshot() error = %v", err)
	}
	if !near(s.Price, 129) {
		t.Errorf("Price = %v, want 129", s.Price)
	}
	if !near(s.WeeklyReturn, (129.0-124)/124*100) {
		t.Errorf("WeeklyReturn = %v", s.WeeklyReturn)
	}
	if !near(s.MonthlyReturn, (129.0-108)/108*100) {
		t.Errorf("MonthlyReturn = %v", s.MonthlyReturn)
	}
	if !near(s.Week52Return, 29) {
		t.Errorf("Week52Return = %v, want 29", s.Week52Return)
	}
	if !near(s.YTDReturn, 29) {
		t.Errorf("YTDReturn = %v, want 29", s.YTDReturn)
	}
	if !near(s.RSI14, 100) {
		t.Errorf("RSI14 = %v, want 100", s.RSI14)
	}
	if !near(s.Volume, 1029) {
		t.Errorf("Volume = %v, want last bar volume", s.Volume)
	}
	if !near(s.PERatio, 12) || s.EPS.IsKnown() {
		t.Errorf("fundamentals not carried: PE %v EPS %v", s.PERatio, s.EPS)
	}
}

func TestComputeSnapshot_ShortHistory(t *testing.T) {
	on := day("2025-06-30")
	s, err := ComputeSnapshot("ACME", on, bars(on, 10, 11, 12), Fundamentals{Price: Known(13), Volume: Known(5)})
	if err != nil {
		t.Fatalf("ComputeSnapshot() error = %v", err)
	}
	if s.WeeklyReturn.IsKnown() || s.MonthlyReturn.IsKnown() || s.RSI14.IsKnown() {
		t.Errorf("returns computed on a short history: %+v", s)
	}
	if !near(s.Week52Return, 30) {
		t.Errorf("Week52Return = %v, want 30", s.Week52Return)
	}
	if !near(s.Price, 13) || !near(s.Volume, 5) {
		t.Errorf("quote fields not preferred: price %v volume %v", s.Price, s.Volume)
	}
	if !near(s.Week52Low, 10) || !near(s.Week52High, 12) {
		t.Errorf("52W range = %v - %v, want the closes range 10 - 12", s.Week52Low, s.Week52High)
	}
	if Classify(s) != 0 {
		t.Errorf("Classify() of a short history = %v, want none", Classify(s))
	}
}

func TestComputeSnapshot_Window(t *testing.T) {
	on := day("2025-01-03")
	in := []Bar{
		{On: day("2023-12-01"), Open: 1, Close: 1},   // too old
		{On: day("2024-12-31"), Open: 50, Close: 50}, // last year
		{On: day("2025-01-02"), Open: 80, Close: 90},
		{On: day("2025-01-03"), Open: 95, Close: 100},
		{On: day("2025-01-06"), Open: 1, Close: 1}, // future
	}
	s, err := ComputeSnapshot("ACME", on, in, Fundamentals{})
	if err != nil {
		t.Fatal(err)
	}
	if !near(s.Week52Return, 100) {
		t.Errorf("Week52Return = %v, want 100", s.Week52Return)
	}
	// YTD is measured from the open of the first bar of the year.
	if !near(s.YTDReturn, 25) {
		t.Errorf("YTDReturn = %v, want 25", s.YTDReturn)
	}
}

func TestComputeSnapshot_QuotedRange(t *testing.T) {
	on := day("2025-06-30")
	s, err := ComputeSnapshot("ACME", on, bars(on, 10, 11, 12), Fundamentals{Week52Low: Known(8.5), Week52High: Known(14)})
	if err != nil {
		t.Fatalf("ComputeSnapshot() error = %v", err)
	}
	if !near(s.Week52Low, 8.5) || !near(s.Week52High, 14) {
		t.Errorf("52W range = %v - %v, want the quoted 8.5 - 14", s.Week52Low, s.Week52High)
	}
}

func TestComputeSnapshot_Unavailable(t *testing.T) {
	if _, err := ComputeSnapshot("ACME", day("2025-06-30"), nil, Fundamentals{}); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("ComputeSnapshot() error = %v, want ErrDataUnavailable", err)
	}
	s, err := ComputeSnapshot("ACME", day("2025-06-30"), nil, Fundamentals{Price: Known(3)})
	if err != nil {
		t.Fatalf("ComputeSnapshot() with a quote only error = %v", err)
	}
	if s.Week52Return.IsKnown() || s.YTDReturn.IsKnown() || s.Week52Low.IsKnown() {
		t.Errorf("returns known without history: %+v", s)
	}
}

func TestComputeSnapshot_ZeroReference(t *testing.T) {
	on := day("2025-06-30")
	s, err := ComputeSnapshot("ACME", on, bars(on, 0, 1, 2), Fundamentals{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Week52Return.IsKnown() {
		t.Errorf("Week52Return = %v from a zero reference, want unknown", s.Week52Return)
	}
}

func TestRSI(t *testing.T) {
	flat := make([]float64, 15)
	for i := range flat {
		flat[i] = 10
	}
	alternating := make([]float64, 15)
	for i := range alternating {
		alternating[i] = float64(10 + i%2)
	}
	testCases := []struct {
		name   string
		prices []float64
		want   Metric
	}{
		{name: "too short", prices: flat[:14], want: Unknown},
		{name: "flat", prices: flat, want: Known(50)},
		// 7 gains and 7 losses of 1.
		{name: "alternating", prices: alternating, want: Known(50)},
		{name: "gains only", prices: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, want: Known(100)},
		{name: "losses only", prices: []float64{15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, want: Known(0)},
	}
	for _, tc := range testCases {
		got := RSI(tc.prices, 14)
		if got.IsKnown() != tc.want.IsKnown() || !near(got, tc.want.Or(0)) && tc.want.IsKnown() {
			t.Errorf("RSI(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
