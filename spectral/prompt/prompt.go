// Package prompt serializes extracted peak lists into a compact text block
// suitable for annotating a plot or priming a vision-language model.
package prompt

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/cwbudde/algo-peaks/spectral/peaks"
)

// Record is the JSON shape of one serialized peak.
type Record struct {
	Kind   string     `json:"kind"`
	Center float64    `json:"center"`
	Range  [2]float64 `json:"range"`
}

type config struct {
	xUnit   string
	roundTo int
}

func defaultConfig() config {
	return config{
		xUnit:   "cm-1",
		roundTo: 0,
	}
}

// Option configures peak serialization.
type Option func(*config)

// WithXUnit sets the advisory x-axis unit named in the preamble.
func WithXUnit(unit string) Option {
	return func(c *config) {
		if unit != "" {
			c.xUnit = unit
		}
	}
}

// WithRoundTo sets the number of decimal places kept for coordinates.
// The default of 0 rounds to integers.
func WithRoundTo(digits int) Option {
	return func(c *config) {
		c.roundTo = digits
	}
}

// Records converts ranges to their serialized form, rounding coordinates
// to the configured precision.
func Records(ranges []peaks.Range, opts ...Option) []Record {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	records := make([]Record, len(ranges))
	for i, r := range ranges {
		records[i] = Record{
			Kind:   r.Kind.String(),
			Center: roundTo(r.Center, cfg.roundTo),
			Range:  [2]float64{roundTo(r.Left, cfg.roundTo), roundTo(r.Right, cfg.roundTo)},
		}
	}

	return records
}

// Format renders the peak list as an explanatory preamble followed by one
// line of JSON records. The preamble flags the x unit as advisory only,
// since the engine has no knowledge of the trace's real axis.
func Format(ranges []peaks.Range, opts ...Option) (string, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	payload, err := json.Marshal(Records(ranges, opts...))
	if err != nil {
		return "", fmt.Errorf("prompt: failed to encode peaks: %w", err)
	}

	preamble := fmt.Sprintf(
		"The strongest peaks extracted from the raw data, with approximate half-maximum ranges."+
			" The x unit is typically %s; defer to the actual axis.\n",
		cfg.xUnit,
	)

	return preamble + string(payload), nil
}

func roundTo(v float64, digits int) float64 {
	if digits <= 0 {
		return math.Round(v)
	}

	p := math.Pow(10, float64(digits))

	return math.Round(v*p) / p
}
