package peaks

import "math"

// Hint is a raw local-maximum sample, intended for quick annotation hints
// without the cost of the full prominence pipeline.
type Hint struct {
	X     float64
	Y     float64
	Index int
}

type hintConfig struct {
	minProminence float64 // NaN disables the filter
	minDistance   int
}

func defaultHintConfig() hintConfig {
	return hintConfig{
		minProminence: math.NaN(),
		minDistance:   1,
	}
}

// HintOption configures a FindHints call.
type HintOption func(*hintConfig)

// WithHintMinProminence rejects maxima rising less than p above the higher
// of their two immediate neighbors.
func WithHintMinProminence(p float64) HintOption {
	return func(c *hintConfig) {
		c.minProminence = p
	}
}

// WithHintMinDistance suppresses maxima closer than d samples to the
// previously accepted one. Values < 1 are treated as 1.
func WithHintMinDistance(d int) HintOption {
	return func(c *hintConfig) {
		c.minDistance = d
	}
}

// FindHints scans the raw trace for strict local maxima. No smoothing is
// applied and prominence is judged against immediate neighbors only; use
// Extract for ranked, width-annotated results. Mismatched or empty axes
// yield an empty result.
func FindHints(x, y []float64, opts ...HintOption) []Hint {
	cfg := defaultHintConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(x) == 0 || len(y) == 0 || len(x) != len(y) {
		return nil
	}

	minDistance := cfg.minDistance
	if minDistance < 1 {
		minDistance = 1
	}

	var hints []Hint

	lastIdx := -minDistance
	for i := 1; i < len(y)-1; i++ {
		if i-lastIdx < minDistance {
			continue
		}
		if y[i] <= y[i-1] || y[i] <= y[i+1] {
			continue
		}

		if !math.IsNaN(cfg.minProminence) {
			baseline := math.Max(y[i-1], y[i+1])
			if y[i]-baseline < cfg.minProminence {
				continue
			}
		}

		hints = append(hints, Hint{X: x[i], Y: y[i], Index: i})
		lastIdx = i
	}

	return hints
}
