package peaks

// localMaxima returns the indices i (0 < i < n-1) where s[i] is greater
// than or equal to both neighbors and strictly greater than at least one.
// Interior samples of flat plateaus fail the strictness requirement, so a
// plateau contributes at most its entry and exit samples.
func localMaxima(s []float64) []int {
	if len(s) < 3 {
		return nil
	}

	var indices []int

	for i := 1; i < len(s)-1; i++ {
		left, mid, right := s[i-1], s[i], s[i+1]
		if mid >= left && mid >= right && (mid > left || mid > right) {
			indices = append(indices, i)
		}
	}

	return indices
}

// nearestMinLeft returns the index of the nearest local minimum left of i,
// or 0 if the signal falls monotonically to the start.
func nearestMinLeft(s []float64, i int) int {
	for j := i - 1; j > 0; j-- {
		if s[j] <= s[j-1] && s[j] <= s[j+1] {
			return j
		}
	}

	return 0
}

// nearestMinRight returns the index of the nearest local minimum right of
// i, or n-1 if the signal falls monotonically to the end.
func nearestMinRight(s []float64, i int) int {
	n := len(s)
	for j := i + 1; j < n-1; j++ {
		if s[j] <= s[j-1] && s[j] <= s[j+1] {
			return j
		}
	}

	return n - 1
}
