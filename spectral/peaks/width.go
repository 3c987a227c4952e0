package peaks

// halfProminenceWidth estimates the x-range of the peak at the level
// halfway between its baseline and apex.
//
// Each side walks outward from the peak while the next sample still
// strictly exceeds the half level and the flanking minimum has not been
// reached. If the immediate neighbor is already at or below the level the
// boundary collapses to the peak's own x (degenerate single-point width).
// Otherwise the boundary is the linear interpolation of the crossing
// segment; when the walk was clipped at the flanking minimum before
// crossing, the interpolation extrapolates past it, so the boundary may
// lie outside the true half-maximum crossing.
func halfProminenceWidth(x, s []float64, peakI, leftMinI, rightMinI int, baseline, prominence float64) (float64, float64) {
	level := baseline + 0.5*prominence

	li := peakI
	for li > leftMinI && s[li-1] > level {
		li--
	}

	var leftX float64
	switch {
	case li == peakI:
		leftX = x[peakI]
	case li == leftMinI:
		leftX = interpXAtLevel(x, s, li, li+1, level)
	default:
		leftX = interpXAtLevel(x, s, li-1, li, level)
	}

	ri := peakI
	for ri < rightMinI && s[ri+1] > level {
		ri++
	}

	var rightX float64
	switch {
	case ri == peakI:
		rightX = x[peakI]
	case ri == rightMinI:
		rightX = interpXAtLevel(x, s, ri-1, ri, level)
	default:
		rightX = interpXAtLevel(x, s, ri, ri+1, level)
	}

	return leftX, rightX
}

// interpXAtLevel returns the x-coordinate where the line through samples
// i0 and i1 crosses level. A flat segment returns x[i0] rather than
// dividing by zero.
func interpXAtLevel(x, s []float64, i0, i1 int, level float64) float64 {
	x0, x1 := x[i0], x[i1]
	y0, y1 := s[i0], s[i1]

	if y0 == y1 {
		return x0
	}

	t := (level - y0) / (y1 - y0)

	return x0 + t*(x1-x0)
}
