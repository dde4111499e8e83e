package gainers

import (
	"math"
	"strconv"
	"strings"
)

// Metric is a numeric field of a Snapshot that may be unknown.
//
// The zero value is Unknown. Providers return Unknown rather than zero when a
// value cannot be computed, so that rules depending on it do not fire.
type Metric struct {
	value float64
	known bool
}

// Unknown is the Metric for a value the provider could not supply.
var Unknown = Metric{}

// Known returns a known Metric. NaN and infinities are Unknown.
func Known(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Unknown
	}
	return Metric{value: v, known: true}
}

// Get returns the value and whether it is known.
func (m Metric) Get() (float64, bool) { return m.value, m.known }

// IsKnown reports whether the value is known.
func (m Metric) IsKnown() bool { return m.known }

// Or returns the value or def if unknown.
func (m Metric) Or(def float64) float64 {
	if !m.known {
		return def
	}
	return m.value
}

// String returns "N/A" for an unknown Metric.
func (m Metric) String() string {
	if !m.known {
		return "N/A"
	}
	return strconv.FormatFloat(m.value, 'f', -1, 64)
}

// Fixed formats a known value with prec decimals.
func (m Metric) Fixed(prec int) string {
	if !m.known {
		return "N/A"
	}
	return strconv.FormatFloat(m.value, 'f', prec, 64)
}

// ParseMetric reads what String writes. Empty strings and "N/A" are Unknown.
func ParseMetric(s string) (Metric, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "N/A") || strings.EqualFold(s, "nan") {
		return Unknown, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Unknown, err
	}
	return Known(v), nil
}

// HumanSize formats large numbers the way quote pages do (2.50B, 713.00M).
func (m Metric) HumanSize() string {
	v, ok := m.Get()
	if !ok {
		return "N/A"
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return strconv.FormatFloat(v/1e12, 'f', 2, 64) + "T"
	case abs >= 1e9:
		return strconv.FormatFloat(v/1e9, 'f', 2, 64) + "B"
	case abs >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 2, 64) + "M"
	case abs >= 1e3:
		return strconv.FormatFloat(v/1e3, 'f', 2, 64) + "K"
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}
