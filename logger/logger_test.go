package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/etnz/gainers/config"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		cfg  config.LogConfig
		want zapcore.Level
	}{
		{cfg: config.LogConfig{Level: "debug", Encoding: "json"}, want: zapcore.DebugLevel},
		{cfg: config.LogConfig{Level: "WARN"}, want: zapcore.WarnLevel},
		{cfg: config.LogConfig{Level: "verbose"}, want: zapcore.InfoLevel},
	}
	for _, tc := range testCases {
		log, err := New(tc.cfg)
		if err != nil {
			t.Fatalf("New(%+v) error = %v", tc.cfg, err)
		}
		if !log.Core().Enabled(tc.want) || tc.want > zapcore.DebugLevel && log.Core().Enabled(tc.want-1) {
			t.Errorf("New(%+v) level is not %v", tc.cfg, tc.want)
		}
	}
}
