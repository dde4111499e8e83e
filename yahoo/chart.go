package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/gainers"
	"github.com/etnz/gainers/date"
)

// chart fetches the chart document of ticker with the given query.
func (c *Client) chart(ctx context.Context, ticker string, query url.Values) (any, error) {
	addr := c.ChartURL + url.PathEscape(ticker) + "?" + query.Encode()
	body, err := c.get(ctx, c.HTTP, addr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil, fmt.Errorf("%s: invalid chart: %w", ticker, err)
	}
	if _, err := jsonpath.Get("$.chart.result[0].meta", jobj); err != nil {
		return nil, fmt.Errorf("%s: empty chart: %w", ticker, gainers.ErrDataUnavailable)
	}
	return jobj, nil
}

// Fundamentals implements gainers.FundamentalsSource with the latest quote
// of the chart: price, session change, volume and 52 weeks range.
func (c *Client) Fundamentals(ctx context.Context, ticker string) (gainers.Fundamentals, error) {
	jobj, err := c.chart(ctx, ticker, url.Values{"range": {"1d"}, "interval": {"1d"}})
	if err != nil {
		return gainers.Fundamentals{}, err
	}
	const meta = "$.chart.result[0].meta."
	f := gainers.Fundamentals{
		Price:      number(jobj, meta+"regularMarketPrice"),
		Volume:     number(jobj, meta+"regularMarketVolume"),
		Week52Low:  number(jobj, meta+"fiftyTwoWeekLow"),
		Week52High: number(jobj, meta+"fiftyTwoWeekHigh"),
	}
	prev, ok := number(jobj, meta+"chartPreviousClose").Get()
	if p, known := f.Price.Get(); ok && known && prev > 0 {
		f.ChangePct = gainers.Known((p - prev) / prev * 100)
	}
	if !f.Price.IsKnown() {
		return f, fmt.Errorf("%s: no regular market price: %w", ticker, gainers.ErrDataUnavailable)
	}
	return f, nil
}

// DailyBars implements gainers.HistorySource with the daily chart.
//
// Days with no close, like trading halts, are skipped.
func (c *Client) DailyBars(ctx context.Context, ticker string, from, to date.Date) ([]gainers.Bar, error) {
	jobj, err := c.chart(ctx, ticker, url.Values{
		"period1":  {fmt.Sprint(from.Time().Unix())},
		"period2":  {fmt.Sprint(to.Add(1).Time().Unix())},
		"interval": {"1d"},
	})
	if err != nil {
		return nil, err
	}
	timestamps := list(jobj, "$.chart.result[0].timestamp")
	opens := list(jobj, "$.chart.result[0].indicators.quote[0].open")
	closes := list(jobj, "$.chart.result[0].indicators.quote[0].close")
	volumes := list(jobj, "$.chart.result[0].indicators.quote[0].volume")

	var bars []gainers.Bar
	for i, ts := range timestamps {
		sec, ok := ts.(float64)
		if !ok {
			continue
		}
		cl, ok := at(closes, i)
		if !ok {
			continue
		}
		op, ok := at(opens, i)
		if !ok {
			op = cl
		}
		vol, _ := at(volumes, i)
		bars = append(bars, gainers.Bar{
			On:     date.Of(time.Unix(int64(sec), 0).UTC()),
			Open:   op,
			Close:  cl,
			Volume: vol,
		})
	}
	return bars, nil
}

// number returns the number at path, or Unknown.
func number(jobj any, path string) gainers.Metric {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return gainers.Unknown
	}
	// jsonpath may return a list of one answer.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	v, ok := jval.(float64)
	if !ok {
		return gainers.Unknown
	}
	return gainers.Known(v)
}

// list returns the array at path, or nil.
func list(jobj any, path string) []any {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil
	}
	jlist, _ := jval.([]any)
	return jlist
}

func at(values []any, i int) (float64, bool) {
	if i >= len(values) {
		return 0, false
	}
	v, ok := values[i].(float64)
	return v, ok
}
