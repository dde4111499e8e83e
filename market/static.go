package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/gainers"
)

// Static is an in-memory market, for tests and offline runs.
type Static struct {
	Tickers   []string
	Snapshots map[string]gainers.Snapshot
}

// Gainers returns the Tickers.
func (s *Static) Gainers(ctx context.Context) ([]string, error) {
	return s.Tickers, nil
}

// Snapshot returns the snapshot of ticker, case insensitive.
func (s *Static) Snapshot(ctx context.Context, ticker string) (gainers.Snapshot, error) {
	snap, ok := s.Snapshots[strings.ToUpper(ticker)]
	if !ok {
		return gainers.Snapshot{}, fmt.Errorf("%s: no static snapshot: %w", ticker, gainers.ErrDataUnavailable)
	}
	return snap, nil
}
