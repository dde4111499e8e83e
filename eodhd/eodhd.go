// Package eodhd reads end of day prices and real-time quotes from the EODHD API.
package eodhd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/gainers"
	"github.com/etnz/gainers/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the EODHD API root.
const DefaultBaseURL = "https://eodhd.com/api/"

// Source reads EODHD. Tickers without an exchange suffix are looked up on
// the US exchanges: ACME is ACME.US.
type Source struct {
	Key     string
	BaseURL string
	HTTP    *http.Client
}

// New returns a Source using the API key.
func New(key string) *Source {
	return &Source{Key: key, BaseURL: DefaultBaseURL, HTTP: &http.Client{Timeout: 20 * time.Second}}
}

func symbol(ticker string) string {
	if strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + ".US"
}

// DailyBars implements gainers.HistorySource with the end of day prices.
// Bounds are included.
func (s *Source) DailyBars(ctx context.Context, ticker string, from, to date.Date) ([]gainers.Bar, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2024-01-01&to=2024-12-31
	// [{"date": "2024-02-13", "open": 675.066, "high": 684.219, "low": 648.659,
	//   "close": 668.445, "adjusted_close": 667.705, "volume": 1000}, ...]
	type info struct {
		Date   date.Date       `json:"date"`
		Open   decimal.Decimal `json:"open"`
		Close  decimal.Decimal `json:"close"`
		Volume decimal.Decimal `json:"volume"`
	}

	query := url.Values{"from": {from.String()}, "to": {to.String()}}
	content := make([]info, 0)
	if err := s.jwget(ctx, "eod/"+symbol(ticker), query, &content); err != nil {
		return nil, fmt.Errorf("%s: cannot get daily prices: %w", ticker, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%s: no daily prices from %s to %s: %w", ticker, from, to, gainers.ErrDataUnavailable)
	}

	bars := make([]gainers.Bar, 0, len(content))
	for _, c := range content {
		bars = append(bars, gainers.Bar{
			On:     c.Date,
			Open:   c.Open.InexactFloat64(),
			Close:  c.Close.InexactFloat64(),
			Volume: c.Volume.InexactFloat64(),
		})
	}
	return bars, nil
}

// value is a number the API replaces by "NA" when unknown.
type value struct {
	gainers.Metric
}

func (v *value) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		v.Metric = gainers.Metric{}
		return nil
	}
	v.Metric = gainers.Known(f)
	return nil
}

// Fundamentals implements gainers.FundamentalsSource with the delayed
// real-time quote: price, session change and volume.
func (s *Source) Fundamentals(ctx context.Context, ticker string) (gainers.Fundamentals, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=demo&fmt=json
	// {"code":"AAPL.US","timestamp":1696622400,"open":173.8,"high":177.99,"low":173.18,
	//  "close":177.49,"volume":57224131,"previousClose":173.66,"change":3.83,"change_p":2.2055}
	var content struct {
		Close   value `json:"close"`
		Volume  value `json:"volume"`
		ChangeP value `json:"change_p"`
	}
	if err := s.jwget(ctx, "real-time/"+symbol(ticker), nil, &content); err != nil {
		return gainers.Fundamentals{}, fmt.Errorf("%s: cannot get quote: %w", ticker, err)
	}
	if p, ok := content.Close.Get(); !ok || p <= 0 {
		return gainers.Fundamentals{}, fmt.Errorf("%s: no quote: %w", ticker, gainers.ErrDataUnavailable)
	}
	return gainers.Fundamentals{
		Price:     content.Close.Metric,
		ChangePct: content.ChangeP.Metric,
		Volume:    content.Volume.Metric,
	}, nil
}

// jwget performs an HTTP GET request to the API path and unmarshals the
// JSON response body into data. A 404 wraps gainers.ErrDataUnavailable.
func (s *Source) jwget(ctx context.Context, path string, query url.Values, data any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("fmt", "json")
	query.Set("api_token", s.Key)
	addr := strings.TrimSuffix(s.BaseURL, "/") + "/" + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("cannot http GET %v: %v: %w", req.URL.Path, resp.Status, gainers.ErrDataUnavailable)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("cannot http GET %v: %v", req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
