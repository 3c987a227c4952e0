// Package smooth provides moving-average smoothing for spectral traces.
//
// The smoother convolves a signal with a normalized boxcar kernel using
// "same"-length, zero-padded semantics: the output has the length of the
// input, and samples near the edges are averaged against implicit zeros
// outside the signal. Short windows use direct convolution; long windows
// switch to an FFT-based path.
package smooth

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrNegativeWindow is returned when a negative window length is requested.
var ErrNegativeWindow = errors.New("smooth: window must be >= 0")

// Direct convolution is cheaper than an FFT round-trip for short kernels.
const fftThreshold = 64

// Kernels shorter than this are accumulated with plain scalar loops.
const simdThreshold = 4

// MovingAverage returns a same-length boxcar-smoothed copy of s.
//
// The effective window is window rounded up to the next odd value. A
// window <= 1 disables smoothing, and a signal shorter than the effective
// window is returned as-is; both cases yield an unmodified copy of the
// input. The input slice is never mutated.
func MovingAverage(s []float64, window int) ([]float64, error) {
	if window < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeWindow, window)
	}

	w := window
	if w%2 == 0 {
		w++
	}

	if window <= 1 || len(s) < w {
		out := make([]float64, len(s))
		copy(out, s)
		return out, nil
	}

	if w >= fftThreshold {
		return movingAverageFFT(s, w)
	}

	return movingAverageDirect(s, w), nil
}

// movingAverageDirect computes the windowed mean sample by sample.
// Zero padding at the edges is implicit: out-of-range samples contribute
// nothing to the sum, but the divisor stays the full window length.
func movingAverageDirect(s []float64, w int) []float64 {
	n := len(s)
	h := (w - 1) / 2
	inv := 1.0 / float64(w)

	out := make([]float64, n)

	if w < simdThreshold {
		for i := range out {
			lo := max(i-h, 0)
			hi := min(i+h+1, n)

			sum := 0.0
			for j := lo; j < hi; j++ {
				sum += s[j]
			}

			out[i] = sum * inv
		}

		return out
	}

	// Vectorized inner product against the normalized kernel.
	kernel := make([]float64, w)
	for i := range kernel {
		kernel[i] = inv
	}

	scratch := make([]float64, w)

	for i := range out {
		lo := max(i-h, 0)
		hi := min(i+h+1, n)
		m := hi - lo

		vecmath.MulBlock(scratch[:m], s[lo:hi], kernel[:m])

		sum := 0.0
		for _, v := range scratch[:m] {
			sum += v
		}

		out[i] = sum
	}

	return out
}

// movingAverageFFT convolves s with the boxcar kernel in the frequency
// domain and extracts the centered same-length region.
func movingAverageFFT(s []float64, w int) ([]float64, error) {
	n := len(s)
	h := (w - 1) / 2
	inv := 1.0 / float64(w)

	fullLen := n + w - 1
	fftSize := nextPowerOf2(fullLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("smooth: failed to create FFT plan: %w", err)
	}

	signalFFT := make([]complex128, fftSize)
	for i, v := range s {
		signalFFT[i] = complex(v, 0)
	}

	kernelFFT := make([]complex128, fftSize)
	for i := 0; i < w; i++ {
		kernelFFT[i] = complex(inv, 0)
	}

	if err := plan.Forward(signalFFT, signalFFT); err != nil {
		return nil, fmt.Errorf("smooth: forward FFT failed: %w", err)
	}

	if err := plan.Forward(kernelFFT, kernelFFT); err != nil {
		return nil, fmt.Errorf("smooth: forward FFT failed: %w", err)
	}

	for i := range signalFFT {
		signalFFT[i] *= kernelFFT[i]
	}

	if err := plan.Inverse(signalFFT, signalFFT); err != nil {
		return nil, fmt.Errorf("smooth: inverse FFT failed: %w", err)
	}

	// "same" mode keeps the n samples centered in the full convolution.
	out := make([]float64, n)
	for i := range out {
		out[i] = real(signalFFT[h+i])
	}

	return out, nil
}

// nextPowerOf2 returns the smallest power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
