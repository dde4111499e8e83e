package gainers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/etnz/gainers/date"
)

// ScanRecord is one row of a daily scan: a ticker snapshot and its watchlists.
type ScanRecord struct {
	Snapshot
	Tags TagSet
}

var scanHeader = []string{
	"Date", "Symbol", "Price", "Change%", "Volume", "Market Cap", "PE (TTM)", "EPS (TTM)",
	"RSI (14)", "Weekly Ret %", "Monthly Ret %", "YTD Ret %", "52W Ret %", "52W Range", "List",
}

// rangeSep separates the low and the high of the "52W Range" column.
const rangeSep = " - "

// scanMetrics are the Metric columns of a scan row, in scanHeader order after
// "Symbol", up to the "52W Range".
func scanMetrics(s *Snapshot) []*Metric {
	return []*Metric{
		&s.Price, &s.ChangePct, &s.Volume, &s.MarketCap, &s.PERatio, &s.EPS,
		&s.RSI14, &s.WeeklyReturn, &s.MonthlyReturn, &s.YTDReturn, &s.Week52Return,
	}
}

// EncodeScan writes scan records as CSV. Unknown metrics are written "N/A".
func EncodeScan(w io.Writer, records []ScanRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scanHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{rec.On.String(), rec.Ticker}
		for _, m := range scanMetrics(&rec.Snapshot) {
			row = append(row, m.String())
		}
		row = append(row, rec.Week52Range(), rec.Tags.String())
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write scan of %s: %w", rec.Ticker, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeScan reads scan records written by EncodeScan.
func DecodeScan(r io.Reader) ([]ScanRecord, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	// Scans written before the "52W Range" column have one column less.
	withRange := len(header) == len(scanHeader)
	if !withRange && len(header) != len(scanHeader)-1 {
		return nil, fmt.Errorf("unexpected header %q", header)
	}
	var records []ScanRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		var rec ScanRecord
		if rec.On, err = date.Parse(row[0]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec.Ticker = row[1]
		for i, m := range scanMetrics(&rec.Snapshot) {
			if *m, err = ParseMetric(row[2+i]); err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, scanHeader[2+i], err)
			}
		}
		if withRange {
			col := 2 + len(scanMetrics(&rec.Snapshot))
			if rec.Week52Low, rec.Week52High, err = parseRange(row[col]); err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, scanHeader[col], err)
			}
		}
		if rec.Tags, err = ParseTagSet(row[len(row)-1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
}

// formatRange writes "low - high", or "N/A" when both are unknown.
func formatRange(low, high Metric) string {
	if !low.IsKnown() && !high.IsKnown() {
		return Unknown.String()
	}
	return low.String() + rangeSep + high.String()
}

// parseRange reads what formatRange writes.
func parseRange(s string) (low, high Metric, err error) {
	l, h, found := strings.Cut(s, rangeSep)
	if !found {
		if low, err = ParseMetric(s); err != nil || low.IsKnown() {
			return Unknown, Unknown, fmt.Errorf("invalid range %q", s)
		}
		return Unknown, Unknown, nil
	}
	if low, err = ParseMetric(l); err != nil {
		return Unknown, Unknown, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if high, err = ParseMetric(h); err != nil {
		return Unknown, Unknown, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return low, high, nil
}

// mergeScan replaces the records of the same tickers in old by the new ones
// and appends the others, so that a day holds one row per ticker.
func mergeScan(old, recent []ScanRecord) []ScanRecord {
	merged := make([]ScanRecord, 0, len(old)+len(recent))
	pos := make(map[string]int)
	for _, rec := range slices.Concat(old, recent) {
		if i, ok := pos[rec.Ticker]; ok {
			merged[i] = rec
			continue
		}
		pos[rec.Ticker] = len(merged)
		merged = append(merged, rec)
	}
	return merged
}
