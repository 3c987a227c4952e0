// Package peaks extracts the most significant peaks or absorption troughs
// from a two-column (x, y) spectral trace.
//
// The extraction pipeline smooths the signal with a moving average, finds
// local maxima, ranks them by topographic prominence relative to their
// nearest flanking local minima, and estimates an approximate width at the
// half-prominence level via linear interpolation. Troughs are handled as
// peaks on the sign-flipped signal; an automatic mode runs both polarities
// and keeps whichever set carries more total prominence.
//
// The entry point is [Extract]:
//
//	ranges, err := peaks.Extract(x, y, peaks.WithTopN(5), peaks.WithMode(peaks.ModeAuto))
//
// Extraction is a pure function of its inputs: caller slices are never
// mutated, no state is retained between calls, and concurrent calls on
// independent inputs need no coordination. Malformed numeric content
// (NaN/Inf samples, mismatched lengths, too few samples, flat traces)
// degrades to an empty result rather than an error; only contract
// violations such as a negative smoothing window fail.
//
// [FindHints] offers a cheaper raw local-maximum scan for quick annotation
// hints without smoothing or prominence ranking.
package peaks
