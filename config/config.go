// Package config loads the gainers configuration from an optional YAML
// file, the environment and a .env file.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Run      RunConfig      `mapstructure:"run"`
	Log      LogConfig      `mapstructure:"log"`
	Provider ProviderConfig `mapstructure:"provider"`
	Alpaca   AlpacaConfig   `mapstructure:"alpaca"`
	Yahoo    YahooConfig    `mapstructure:"yahoo"`
	EODHD    EODHDConfig    `mapstructure:"eodhd"`
	Cron     CronConfig     `mapstructure:"cron"`
}

type StoreConfig struct {
	Root     string `mapstructure:"root"`
	CacheDir string `mapstructure:"cache_dir"`
}

type RunConfig struct {
	Invested   float64 `mapstructure:"invested"`
	MaxTickers int     `mapstructure:"max_tickers"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// ProviderConfig guards every remote service.
type ProviderConfig struct {
	RPS         float64       `mapstructure:"rps"`
	Burst       int           `mapstructure:"burst"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	Cooldown    time.Duration `mapstructure:"cooldown"`
}

// AlpacaConfig holds the market data keys. Without keys the daily history
// is read from Yahoo.
type AlpacaConfig struct {
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

func (c AlpacaConfig) Enabled() bool { return c.APIKey != "" && c.APISecret != "" }

type YahooConfig struct {
	GainersURL string `mapstructure:"gainers_url"`
	ChartURL   string `mapstructure:"chart_url"`
	// Equity enables the finance-go fundamentals (market cap, PE, EPS).
	Equity bool `mapstructure:"equity"`
}

// EODHDConfig holds the EODHD key, used for daily history when Alpaca is
// not configured.
type EODHDConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

func (c EODHDConfig) Enabled() bool { return c.APIKey != "" }

type CronConfig struct {
	Schedule string `mapstructure:"schedule"`
	Timezone string `mapstructure:"timezone"`
}

// Load reads the configuration. Values come, by decreasing priority, from
// GAINERS_ prefixed environment variables (GAINERS_RUN_INVESTED), the file
// at path if not empty, and defaults. A .env file in the working directory is
// loaded into the environment first; the Alpaca and EODHD keys are also read
// from the usual ALPACA_API_KEY, ALPACA_SECRET_KEY and EODHD_API_KEY variables.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("GAINERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("alpaca.api_key", "GAINERS_ALPACA_API_KEY", "ALPACA_API_KEY"); err != nil {
		return Config{}, err
	}
	if err := v.BindEnv("alpaca.api_secret", "GAINERS_ALPACA_API_SECRET", "ALPACA_SECRET_KEY"); err != nil {
		return Config{}, err
	}

	if err := v.BindEnv("eodhd.api_key", "GAINERS_EODHD_API_KEY", "EODHD_API_KEY"); err != nil {
		return Config{}, err
	}

	v.SetDefault("store.root", ".")
	v.SetDefault("store.cache_dir", "")
	v.SetDefault("run.invested", 1000)
	v.SetDefault("run.max_tickers", 25)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("log.disable_caller", true)
	v.SetDefault("log.disable_stacktrace", true)
	v.SetDefault("provider.rps", 2)
	v.SetDefault("provider.burst", 1)
	v.SetDefault("provider.max_failures", 3)
	v.SetDefault("provider.cooldown", "1m")
	v.SetDefault("yahoo.gainers_url", "https://finance.yahoo.com/markets/stocks/gainers/")
	v.SetDefault("yahoo.chart_url", "https://query1.finance.yahoo.com/v8/finance/chart/")
	v.SetDefault("yahoo.equity", true)
	v.SetDefault("eodhd.base_url", "https://eodhd.com/api/")
	v.SetDefault("cron.schedule", "30 16 * * 1-5")
	v.SetDefault("cron.timezone", "America/New_York")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
