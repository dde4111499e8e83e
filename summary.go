package gainers

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/etnz/gainers/date"
	"github.com/shopspring/decimal"
	"github.com/tidwall/pretty"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Summary is the aggregate view of the whole book, rewritten in full by every run.
type Summary struct {
	Generated date.Date       `json:"generated"`
	Positions int             `json:"positions"`
	Stale     int             `json:"stale"`
	Invested  decimal.Decimal `json:"invested"`
	Value     decimal.Decimal `json:"value"`
	PnL       decimal.Decimal `json:"pnl"`
	Return    float64         `json:"returnPct"`
	Tickers   []TickerSummary `json:"tickers"`
}

// TickerSummary aggregates the positions of one ticker across all ledgers.
type TickerSummary struct {
	Ticker      string          `json:"ticker"`
	Tags        []string        `json:"tags"`
	Positions   int             `json:"positions"`
	FirstOpened date.Date       `json:"firstOpened"`
	LastUpdated date.Date       `json:"lastUpdated"`
	Invested    decimal.Decimal `json:"invested"`
	Value       decimal.Decimal `json:"value"`
	PnL         decimal.Decimal `json:"pnl"`
	Return      float64         `json:"returnPct"`
}

// NewSummary summarizes b as of day on. Tickers are sorted by name.
func NewSummary(on date.Date, b *Book) Summary {
	type acc struct {
		tags   TagSet
		totals Totals
		first  date.Date
		last   date.Date
	}
	byTicker := make(map[string]*acc)
	stale := 0
	for _, p := range b.Positions() {
		a, ok := byTicker[p.Ticker]
		if !ok {
			a = &acc{first: p.OpenDate, last: p.LastUpdated}
			byTicker[p.Ticker] = a
		}
		a.tags = a.tags.With(p.Tag)
		a.totals.add(p)
		if p.OpenDate.Before(a.first) {
			a.first = p.OpenDate
		}
		// The oldest valuation tells how stale the ticker is.
		if p.LastUpdated.Before(a.last) {
			a.last = p.LastUpdated
		}
		if p.IsStale(on) {
			stale++
		}
	}

	totals := b.Totals()
	s := Summary{
		Generated: on,
		Positions: totals.Positions,
		Stale:     stale,
		Invested:  totals.Invested.Decimal().Round(2),
		Value:     totals.Value.Decimal().Round(2),
		PnL:       totals.PnL().Decimal().Round(2),
		Return:    round2(totals.Return()),
		Tickers:   make([]TickerSummary, 0, len(byTicker)),
	}
	for ticker, a := range byTicker {
		tags := make([]string, 0, a.tags.Len())
		for _, t := range a.tags.Tags() {
			tags = append(tags, t.String())
		}
		s.Tickers = append(s.Tickers, TickerSummary{
			Ticker:      ticker,
			Tags:        tags,
			Positions:   a.totals.Positions,
			FirstOpened: a.first,
			LastUpdated: a.last,
			Invested:    a.totals.Invested.Decimal().Round(2),
			Value:       a.totals.Value.Decimal().Round(2),
			PnL:         a.totals.PnL().Decimal().Round(2),
			Return:      round2(a.totals.Return()),
		})
	}
	slices.SortFunc(s.Tickers, func(a, b TickerSummary) int { return strings.Compare(a.Ticker, b.Ticker) })
	return s
}

func round2(p Percent) float64 {
	return decimal.NewFromFloat(float64(p)).Round(2).InexactFloat64()
}

// EncodeSummary writes s as indented JSON.
func EncodeSummary(w io.Writer, s Summary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	_, err = w.Write(pretty.Pretty(data))
	return err
}

// DecodeSummary reads a summary written by EncodeSummary.
func DecodeSummary(r io.Reader) (Summary, error) {
	var s Summary
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Summary{}, fmt.Errorf("invalid summary: %w", err)
	}
	return s, nil
}
