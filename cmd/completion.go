package cmd

import (
	"github.com/etnz/gainers"
	"github.com/etnz/gainers/config"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the command line. Dates and
// tickers are completed from the ledgers of the configured store.
func Completion() *complete.Command {
	days := complete.PredictFunc(func(string) []string { return ledgerDays(completionStore()) })
	tickers := complete.PredictFunc(func(string) []string { return bookTickers(completionStore()) })

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"run":      {Flags: map[string]complete.Predictor{"d": days}},
			"revalue":  {Flags: map[string]complete.Predictor{"d": days}},
			"classify": {Flags: map[string]complete.Predictor{"d": days}, Args: tickers},
			"ledger":   {Flags: map[string]complete.Predictor{"d": days, "all": predict.Nothing}},
			"summary":  {Flags: map[string]complete.Predictor{"refresh": predict.Nothing, "json": predict.Nothing}},
			"schedule": {Flags: map[string]complete.Predictor{"cron": predict.Something}},
			"help":     {Args: predict.Set{"run", "revalue", "classify", "ledger", "summary", "schedule"}},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"store":  predict.Dirs("*"),
			"plain":  predict.Nothing,
		},
	}
}

// completionStore is the store of the configuration, flags are not parsed
// while completing.
func completionStore() gainers.Store {
	cfg, err := config.Load("")
	if err != nil {
		return gainers.Store{Root: "."}
	}
	return gainers.Store{Root: cfg.Store.Root}
}

func ledgerDays(s gainers.Store) []string {
	days, err := s.LedgerDays()
	if err != nil {
		return nil
	}
	var out []string
	for _, d := range days {
		out = append(out, d.String())
	}
	return out
}

func bookTickers(s gainers.Store) []string {
	book, _, err := s.LoadBook(gainers.DefaultInvestedAmount)
	if err != nil {
		return nil
	}
	return book.Tickers()
}
