// Package gainers sorts the daily top gaining stocks into watchlists and
// follows them in a simulated, paper-only, trading book.
//
// The core functionalities include:
//   - Classification: a pure rule engine mapping a metric Snapshot to the
//     watchlists it belongs to (Simmering Growth, Rockets, Turnarounds).
//   - Ledger Management: every day a Ledger records a fixed-amount Position
//     for each newly classified ticker. A position is opened at most once per
//     (day, ticker, watchlist), and only its valuation ever changes.
//   - Revaluation: every run values all positions of all past ledgers at the
//     current price, keeping the previous valuation when no price is available.
//   - Data Persistence: ledgers, daily scans and a summary live in a Store as
//     human-readable CSV and JSON files, written atomically.
//
// This package serves as the foundational logic for the `gainers` command-line
// tool. Runs against a store must not overlap: at most one run at a time.
package gainers
