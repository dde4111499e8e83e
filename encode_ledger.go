package gainers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/etnz/gainers/date"
)

// ledgerHeader is the first row of a ledger file.
var ledgerHeader = []string{
	"Date", "Symbol", "List", "Entry Price", "Quantity", "Initial Value",
	"Current Price", "Current Value", "PnL", "Return %", "Last Updated",
}

// EncodeLedger writes the ledger as CSV, one row per position in opening order.
//
// Amounts and quantities are written with all their digits so that decoding
// gives back the exact same positions.
func EncodeLedger(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerHeader); err != nil {
		return err
	}
	for _, p := range l.positions {
		row := []string{
			p.OpenDate.String(),
			p.Ticker,
			p.Tag.String(),
			p.OpenPrice.Persisted(),
			p.Shares.Persisted(),
			p.Invested.Persisted(),
			p.CurrentPrice.Persisted(),
			p.CurrentValue.Persisted(),
			p.PnL.Persisted(),
			Known(float64(p.PnLPct)).Fixed(4),
			p.LastUpdated.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write position %s: %w", p.Ticker, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeLedger reads a ledger of day on written by EncodeLedger.
//
// Columns are found by header name so files with extra or reordered columns
// are accepted. Missing "PnL" and "Last Updated" columns are derived from the
// other ones.
func DecodeLedger(on date.Date, r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return NewLedger(on), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	cols := columns(header)
	for _, name := range ledgerHeader[:8] {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	l := NewLedger(on)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p, err := decodePosition(cols, rec, on)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := l.Append(p); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return l, nil
}

func decodePosition(cols map[string]int, rec []string, on date.Date) (p Position, err error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	if p.OpenDate, err = date.Parse(get("Date")); err != nil {
		return p, err
	}
	p.Ticker = get("Symbol")
	if p.Ticker == "" {
		return p, fmt.Errorf("empty symbol")
	}
	if p.Tag, err = ParseTag(get("List")); err != nil {
		return p, err
	}
	if p.OpenPrice, err = ParseMoney(get("Entry Price")); err != nil {
		return p, err
	}
	if p.Shares, err = ParseQuantity(get("Quantity")); err != nil {
		return p, err
	}
	if p.Invested, err = ParseMoney(get("Initial Value")); err != nil {
		return p, err
	}
	if p.CurrentPrice, err = ParseMoney(get("Current Price")); err != nil {
		return p, err
	}
	if p.CurrentValue, err = ParseMoney(get("Current Value")); err != nil {
		return p, err
	}
	p.PnL = p.CurrentValue.Sub(p.Invested)
	if s := get("PnL"); s != "" {
		if p.PnL, err = ParseMoney(s); err != nil {
			return p, err
		}
	}
	if p.Invested.IsPositive() {
		p.PnLPct = p.PnL.Ratio(p.Invested)
	}
	if s := get("Return %"); s != "" {
		m, err := ParseMetric(s)
		if err != nil {
			return p, fmt.Errorf("invalid return %q: %w", s, err)
		}
		p.PnLPct = Percent(m.Or(float64(p.PnLPct)))
	}
	// Files without the column were last valued when they were opened.
	p.LastUpdated = on
	if s := get("Last Updated"); s != "" {
		if p.LastUpdated, err = date.Parse(s); err != nil {
			return p, err
		}
	}
	return p, nil
}

// columns indexes a CSV header by column name.
func columns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}
