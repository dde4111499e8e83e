package yahoo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/etnz/gainers"
	"go.uber.org/zap"
)

// tickerPattern matches exchange symbols like "AAPL", "BRK.B" or "BF-B".
var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,7}$`)

// Gainers implements gainers.GainersSource by scraping the day gainers page.
func (c *Client) Gainers(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, c.Pages, c.GainersURL)
	if err != nil {
		return nil, err
	}
	tickers, err := ParseGainers(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.Log.Debug("gainers page parsed", zap.Int("tickers", len(tickers)))
	return tickers, nil
}

// ParseGainers returns the symbols listed in a gainers page, in page order
// and without duplicates.
//
// The symbols are read from the "Symbol" column of the first table having
// one. Pages without such a column fall back to the first cell of every row.
// Cells that do not look like a symbol are ignored.
func ParseGainers(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse gainers page: %w", err)
	}

	var tickers []string
	add := func(cell *goquery.Selection) {
		if t, ok := symbolOf(cell); ok && !slices.Contains(tickers, t) {
			tickers = append(tickers, t)
		}
	}

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		col := -1
		table.Find("tr").First().Find("th").EachWithBreak(func(i int, th *goquery.Selection) bool {
			if strings.EqualFold(strings.TrimSpace(th.Text()), "Symbol") {
				col = i
				return false
			}
			return true
		})
		if col < 0 {
			return true
		}
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			add(tr.Find("td").Eq(col))
		})
		return len(tickers) == 0
	})

	if len(tickers) == 0 {
		doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			add(tr.Find("td").First())
		})
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no symbol found in gainers page: %w", gainers.ErrDataUnavailable)
	}
	return tickers, nil
}

// symbolOf returns the symbol of a table cell, preferring its link text.
func symbolOf(cell *goquery.Selection) (string, bool) {
	if cell.Length() == 0 {
		return "", false
	}
	text := cell.Text()
	if a := cell.Find("a").First(); a.Length() > 0 {
		text = a.Text()
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false
	}
	t := fields[0]
	return t, tickerPattern.MatchString(t)
}
