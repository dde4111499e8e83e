package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Root != "." || cfg.Run.Invested != 1000 || cfg.Run.MaxTickers != 25 {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Provider.Cooldown != time.Minute || cfg.Provider.MaxFailures != 3 || cfg.Provider.RPS != 2 {
		t.Errorf("Load().Provider = %+v", cfg.Provider)
	}
	if cfg.Cron.Schedule != "30 16 * * 1-5" || cfg.Log.Level != "info" {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "gainers.yaml")
	yaml := "store:\n  root: /data/gainers\nrun:\n  invested: 500\n  max_tickers: 10\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GAINERS_RUN_MAX_TICKERS", "5")
	t.Setenv("ALPACA_API_KEY", "key")
	t.Setenv("ALPACA_SECRET_KEY", "secret")
	t.Setenv("EODHD_API_KEY", "ekey")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Root != "/data/gainers" || cfg.Run.Invested != 500 {
		t.Errorf("file values not read: %+v", cfg)
	}
	if cfg.Run.MaxTickers != 5 {
		t.Errorf("MaxTickers = %d, want the environment value 5", cfg.Run.MaxTickers)
	}
	if !cfg.Alpaca.Enabled() || cfg.Alpaca.APIKey != "key" || cfg.Alpaca.APISecret != "secret" {
		t.Errorf("Alpaca = %+v", cfg.Alpaca)
	}
	if !cfg.EODHD.Enabled() || cfg.EODHD.BaseURL != "https://eodhd.com/api/" {
		t.Errorf("EODHD = %+v", cfg.EODHD)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GAINERS_LOG_LEVEL=debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("GAINERS_LOG_LEVEL") })
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want the .env value", cfg.Log.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Errorf("Load() of a missing file succeeded")
	}
}
