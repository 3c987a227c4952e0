package testutil

import (
	"math"
	"math/rand"
)

// GaussianBump generates a Gaussian peak of the given height and sigma
// (in samples) centered at center, sitting on a flat baseline.
func GaussianBump(length int, center, sigma, height, baseline float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		d := (float64(i) - center) / sigma
		out[i] = baseline + height*math.Exp(-0.5*d*d)
	}
	return out
}

// DeterministicNoise generates white noise in [-amplitude, amplitude]
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp returns [0, 1, 2, ...] of length n, the default sample axis for
// synthetic traces.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Add returns the elementwise sum of a and b. Panics if lengths differ.
func Add(a, b []float64) []float64 {
	if len(a) != len(b) {
		panic("testutil: length mismatch")
	}
	out := make([]float64, len(a))
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// Negate returns a sign-flipped copy of s.
func Negate(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = -v
	}
	return out
}
