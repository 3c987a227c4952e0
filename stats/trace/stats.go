// Package trace computes summary statistics for spectral trace axes.
package trace

import "math"

// Stats holds single-pass summary statistics of one trace axis.
type Stats struct {
	Length      int
	FiniteCount int
	Min         float64
	MinPos      int
	Max         float64
	MaxPos      int
	Range       float64 // max - min over finite samples
	Mean        float64
	RMS         float64
	Variance    float64
}

// Calculate computes all statistics in a single pass, skipping non-finite
// samples. Min/Max/Mean/Variance cover finite samples only; an all-NaN or
// empty trace yields a zero-valued Stats.
func Calculate(axis []float64) Stats {
	st := Stats{Length: len(axis)}

	// Welford accumulators over finite samples.
	var (
		mean  float64
		m2    float64
		sumSq float64
	)

	for i, v := range axis {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		if st.FiniteCount == 0 {
			st.Min, st.MinPos = v, i
			st.Max, st.MaxPos = v, i
		} else {
			if v < st.Min {
				st.Min, st.MinPos = v, i
			}
			if v > st.Max {
				st.Max, st.MaxPos = v, i
			}
		}

		st.FiniteCount++
		nf := float64(st.FiniteCount)

		delta := v - mean
		mean += delta / nf
		m2 += delta * (v - mean)

		sumSq += v * v
	}

	if st.FiniteCount == 0 {
		return st
	}

	nf := float64(st.FiniteCount)
	st.Range = st.Max - st.Min
	st.Mean = mean
	st.RMS = math.Sqrt(sumSq / nf)
	st.Variance = m2 / nf

	return st
}

// Range returns max - min over the finite samples of axis, or 0 if no
// finite samples exist.
func Range(axis []float64) float64 {
	var (
		lo, hi float64
		seen   bool
	)

	for _, v := range axis {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		if !seen {
			lo, hi = v, v
			seen = true
			continue
		}

		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if !seen {
		return 0
	}

	return hi - lo
}

// Mean returns the arithmetic mean of the finite samples of axis.
// Uses Kahan summation for numerical stability.
func Mean(axis []float64) float64 {
	var sum, c float64
	count := 0

	for _, v := range axis {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		y := v - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		count++
	}

	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

// RMS returns the root-mean-square of the finite samples of axis.
func RMS(axis []float64) float64 {
	var sumSq float64
	count := 0

	for _, v := range axis {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		sumSq += v * v
		count++
	}

	if count == 0 {
		return 0
	}

	return math.Sqrt(sumSq / float64(count))
}
