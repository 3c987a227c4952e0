package peaks

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-peaks/spectral/smooth"
	"github.com/cwbudde/algo-peaks/stats/trace"
)

// ErrNegativeWindow is returned by Extract for a negative smoothing window.
var ErrNegativeWindow = errors.New("peaks: smooth window must be >= 0")

// Kind discriminates peaks from troughs.
type Kind int

const (
	// KindMax marks a peak, a local maximum of y.
	KindMax Kind = iota

	// KindMin marks a trough, a local maximum of -y.
	KindMin
)

// String returns "max" or "min".
func (k Kind) String() string {
	if k == KindMin {
		return "min"
	}

	return "max"
}

// Mode selects the polarity of the search.
type Mode int

const (
	// ModeAuto runs both polarities and keeps the set with the higher
	// total prominence. Exact ties keep the max-polarity set.
	ModeAuto Mode = iota

	// ModeMax searches for peaks only.
	ModeMax

	// ModeMin searches for troughs only.
	ModeMin
)

// Range describes one significant peak or trough.
//
// Left and Right bound the half-prominence width after normalization
// (Left <= Right always); either may lie outside the true half-maximum
// crossing when the walk was clipped at a neighboring extremum. Center is
// the x-coordinate of the extremum sample itself, not interpolated, so
// Left <= Center <= Right is not guaranteed. Prominence is measured on
// the smoothed signal and is meaningful for ranking only.
type Range struct {
	Kind       Kind
	Left       float64
	Center     float64
	Right      float64
	Prominence float64
}

type config struct {
	topN               int
	mode               Mode
	smoothWindow       int
	minProminenceRatio float64
}

func defaultConfig() config {
	return config{
		topN:               5,
		mode:               ModeAuto,
		smoothWindow:       7,
		minProminenceRatio: 0.01,
	}
}

// Option configures an extraction call.
type Option func(*config)

// WithTopN limits the number of returned ranges. Values <= 0 yield an
// empty result.
func WithTopN(n int) Option {
	return func(c *config) {
		c.topN = n
	}
}

// WithMode selects the search polarity.
func WithMode(m Mode) Option {
	return func(c *config) {
		c.mode = m
	}
}

// WithSmoothWindow sets the moving-average window length. Even values are
// rounded up to the next odd value; 0 or 1 disables smoothing.
func WithSmoothWindow(w int) Option {
	return func(c *config) {
		c.smoothWindow = w
	}
}

// WithMinProminenceRatio sets the minimum prominence as a fraction of the
// smoothed signal's global range.
func WithMinProminenceRatio(r float64) Option {
	return func(c *config) {
		c.minProminenceRatio = r
	}
}

// Extract returns the most significant peaks of the trace (x, y), ordered
// by descending prominence.
//
// Samples where either coordinate is non-finite are dropped pairwise. A
// trace with mismatched axis lengths or fewer than 3 valid samples yields
// an empty result, never an error; the only failure condition is a
// negative smoothing window.
func Extract(x, y []float64, opts ...Option) ([]Range, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.smoothWindow < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeWindow, cfg.smoothWindow)
	}

	xs, ys := finitePairs(x, y)
	if len(xs) < 3 {
		return nil, nil
	}

	switch cfg.mode {
	case ModeMax:
		return extractSignal(xs, ys, cfg, KindMax)
	case ModeMin:
		return extractSignal(xs, negated(ys), cfg, KindMin)
	}

	peaksMax, err := extractSignal(xs, ys, cfg, KindMax)
	if err != nil {
		return nil, err
	}

	peaksMin, err := extractSignal(xs, negated(ys), cfg, KindMin)
	if err != nil {
		return nil, err
	}

	// Ties keep the max-polarity set.
	if totalProminence(peaksMin) > totalProminence(peaksMax) {
		return peaksMin, nil
	}

	return peaksMax, nil
}

// extractSignal runs the single-polarity pipeline: smooth, find extrema,
// filter by prominence, estimate widths, rank, select.
func extractSignal(x, s []float64, cfg config, kind Kind) ([]Range, error) {
	ss, err := smooth.MovingAverage(s, cfg.smoothWindow)
	if err != nil {
		return nil, err
	}

	indices := localMaxima(ss)
	if len(indices) == 0 {
		return nil, nil
	}

	// The prominence floor is relative to the global smoothed range, so
	// noise-level bumps on low-dynamic-range traces are rejected while a
	// flat-ish trace still keeps its positive-prominence candidates.
	minProminence := 0.0
	if span := trace.Range(ss); span > 0 {
		minProminence = span * cfg.minProminenceRatio
	}

	type candidate struct {
		prominence float64
		r          Range
	}

	var candidates []candidate

	for _, peakI := range indices {
		leftMinI := nearestMinLeft(ss, peakI)
		rightMinI := nearestMinRight(ss, peakI)

		baseline := math.Max(ss[leftMinI], ss[rightMinI])
		prominence := ss[peakI] - baseline
		if prominence <= 0 || prominence < minProminence {
			continue
		}

		leftX, rightX := halfProminenceWidth(x, ss, peakI, leftMinI, rightMinI, baseline, prominence)

		candidates = append(candidates, candidate{
			prominence: prominence,
			r: Range{
				Kind:       kind,
				Left:       math.Min(leftX, rightX),
				Center:     x[peakI],
				Right:      math.Max(leftX, rightX),
				Prominence: prominence,
			},
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].prominence > candidates[j].prominence
	})

	n := cfg.topN
	if n < 0 {
		n = 0
	}
	if n > len(candidates) {
		n = len(candidates)
	}

	if n == 0 {
		return nil, nil
	}

	out := make([]Range, n)
	for i := range out {
		out[i] = candidates[i].r
	}

	return out, nil
}

// finitePairs copies the samples where both coordinates are finite.
// Mismatched axis lengths yield empty slices. Working on copies keeps
// caller-owned buffers untouched through the whole pipeline.
func finitePairs(x, y []float64) ([]float64, []float64) {
	if len(x) != len(y) {
		return nil, nil
	}

	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))

	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			continue
		}
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}

		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}

	return xs, ys
}

func negated(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = -v
	}

	return out
}

func totalProminence(ranges []Range) float64 {
	sum := 0.0
	for _, r := range ranges {
		sum += r.Prominence
	}

	return sum
}
