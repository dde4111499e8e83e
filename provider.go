package gainers

import (
	"context"

	"github.com/etnz/gainers/date"
)

// GainersSource lists today's top gaining tickers, best first.
type GainersSource interface {
	Gainers(ctx context.Context) ([]string, error)
}

// SnapshotProvider returns the current snapshot of a ticker.
//
// Implementations wrap ErrDataUnavailable when the ticker has no data.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, ticker string) (Snapshot, error)
}

// HistorySource returns the daily bars of a ticker between two days included.
type HistorySource interface {
	DailyBars(ctx context.Context, ticker string, from, to date.Date) ([]Bar, error)
}

// FundamentalsSource returns the quote fundamentals of a ticker.
type FundamentalsSource interface {
	Fundamentals(ctx context.Context, ticker string) (Fundamentals, error)
}

// GainersFunc adapts a function to a GainersSource.
type GainersFunc func(ctx context.Context) ([]string, error)

func (f GainersFunc) Gainers(ctx context.Context) ([]string, error) { return f(ctx) }

// SnapshotFunc adapts a function to a SnapshotProvider.
type SnapshotFunc func(ctx context.Context, ticker string) (Snapshot, error)

func (f SnapshotFunc) Snapshot(ctx context.Context, ticker string) (Snapshot, error) {
	return f(ctx, ticker)
}
