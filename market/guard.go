// Package market assembles snapshot providers out of data sources: it
// throttles and circuit-breaks remote calls, and merges price history with
// quote fundamentals into gainers.Snapshot.
package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/gainers"
	"github.com/etnz/gainers/date"
	cb "github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// GuardConfig configures a Guard.
type GuardConfig struct {
	Name string
	// RPS is the sustained number of calls per second, unlimited if zero.
	RPS   float64
	Burst int
	// MaxFailures is the number of consecutive failures opening the circuit.
	MaxFailures uint32
	// Cooldown is how long the circuit stays open before a trial call.
	Cooldown time.Duration
}

// Guard throttles calls to a remote service and stops calling it after
// repeated failures, so that one broken service cannot stall a run.
//
// A ticker without data is not a failure of the service: errors wrapping
// gainers.ErrDataUnavailable do not count towards opening the circuit.
type Guard struct {
	name    string
	limiter *rate.Limiter
	breaker *cb.CircuitBreaker
	log     *zap.Logger
}

// NewGuard creates a Guard. A nil log discards logs.
func NewGuard(c GuardConfig, log *zap.Logger) *Guard {
	if log == nil {
		log = zap.NewNop()
	}
	if c.MaxFailures == 0 {
		c.MaxFailures = 3
	}
	if c.Cooldown == 0 {
		c.Cooldown = time.Minute
	}
	limit := rate.Inf
	if c.RPS > 0 {
		limit = rate.Limit(c.RPS)
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	g := &Guard{
		name:    c.Name,
		limiter: rate.NewLimiter(limit, c.Burst),
		log:     log.With(zap.String("service", c.Name)),
	}
	st := cb.Settings{Name: c.Name}
	st.Timeout = c.Cooldown
	st.ReadyToTrip = func(counts cb.Counts) bool {
		return counts.ConsecutiveFailures >= c.MaxFailures
	}
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, gainers.ErrDataUnavailable) || errors.Is(err, context.Canceled)
	}
	st.OnStateChange = func(name string, from, to cb.State) {
		g.log.Warn("circuit state changed", zap.Stringer("from", from), zap.Stringer("to", to))
	}
	g.breaker = cb.NewCircuitBreaker(st)
	return g
}

// Do calls fn once the rate limit allows it and the circuit is closed.
//
// When the circuit is open Do returns an error wrapping
// gainers.ErrDataUnavailable without calling fn.
func (g *Guard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := g.breaker.Execute(func() (any, error) {
		return nil, fn(ctx)
	})
	if errors.Is(err, cb.ErrOpenState) || errors.Is(err, cb.ErrTooManyRequests) {
		return fmt.Errorf("%s is not called: %w: %w", g.name, gainers.ErrDataUnavailable, err)
	}
	return err
}

// Open reports whether calls are currently refused.
func (g *Guard) Open() bool { return g.breaker.State() == cb.StateOpen }

// Gainers guards src.
func (g *Guard) Gainers(src gainers.GainersSource) gainers.GainersSource {
	return gainers.GainersFunc(func(ctx context.Context) (tickers []string, err error) {
		err = g.Do(ctx, func(ctx context.Context) error {
			tickers, err = src.Gainers(ctx)
			return err
		})
		return tickers, err
	})
}

// History guards src.
func (g *Guard) History(src gainers.HistorySource) gainers.HistorySource {
	return guardedHistory{g, src}
}

// Fundamentals guards src.
func (g *Guard) Fundamentals(src gainers.FundamentalsSource) gainers.FundamentalsSource {
	return guardedFundamentals{g, src}
}

type guardedHistory struct {
	g   *Guard
	src gainers.HistorySource
}

func (h guardedHistory) DailyBars(ctx context.Context, ticker string, from, to date.Date) (bars []gainers.Bar, err error) {
	err = h.g.Do(ctx, func(ctx context.Context) error {
		bars, err = h.src.DailyBars(ctx, ticker, from, to)
		return err
	})
	return bars, err
}

type guardedFundamentals struct {
	g   *Guard
	src gainers.FundamentalsSource
}

func (f guardedFundamentals) Fundamentals(ctx context.Context, ticker string) (q gainers.Fundamentals, err error) {
	err = f.g.Do(ctx, func(ctx context.Context) error {
		q, err = f.src.Fundamentals(ctx, ticker)
		return err
	})
	return q, err
}
