// Package yahoo reads the day gainers, quotes and daily history from Yahoo
// Finance, and quote fundamentals through finance-go.
package yahoo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/etnz/gainers"
	"go.uber.org/zap"
)

const (
	DefaultGainersURL = "https://finance.yahoo.com/markets/stocks/gainers/"
	DefaultChartURL   = "https://query1.finance.yahoo.com/v8/finance/chart/"

	httpTimeout = 20 * time.Second
	userAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client reads Yahoo Finance pages.
//
// The gainers page goes through Pages, a daily cached client, so that runs
// of the same day scan the same list. Quotes and history go through HTTP.
type Client struct {
	HTTP       *http.Client
	Pages      *http.Client
	GainersURL string
	ChartURL   string
	Log        *zap.Logger
}

// New returns a Client caching pages in cacheDir.
func New(cacheDir string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		HTTP:       &http.Client{Timeout: httpTimeout},
		Pages:      Daily(cacheDir, log),
		GainersURL: DefaultGainersURL,
		ChartURL:   DefaultChartURL,
		Log:        log,
	}
}

// get returns the body of addr. A 404 wraps gainers.ErrDataUnavailable.
func (c *Client) get(ctx context.Context, client *http.Client, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot http GET %s: %w", addr, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("cannot read http body of %s: %w", addr, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("cannot http GET %v/%v: %v: %w", req.URL.Host, req.URL.Path, resp.Status, gainers.ErrDataUnavailable)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	return buf.Bytes(), nil
}
