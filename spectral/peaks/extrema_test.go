package peaks

import (
	"reflect"
	"testing"
)

func TestLocalMaxima(t *testing.T) {
	tests := []struct {
		name string
		s    []float64
		want []int
	}{
		{
			name: "single interior maximum",
			s:    []float64{0, 1, 0},
			want: []int{1},
		},
		{
			name: "plateau keeps entry and exit only",
			s:    []float64{0, 1, 1, 1, 0},
			want: []int{1, 3},
		},
		{
			name: "two-sample plateau keeps both",
			s:    []float64{0, 1, 1, 0},
			want: []int{1, 2},
		},
		{
			name: "flat signal has no maxima",
			s:    []float64{2, 2, 2, 2},
			want: nil,
		},
		{
			name: "monotonic rise has no interior maxima",
			s:    []float64{0, 1, 2, 3},
			want: nil,
		},
		{
			name: "multiple maxima",
			s:    []float64{0, 2, 0, 3, 0, 1, 0},
			want: []int{1, 3, 5},
		},
		{
			name: "too short",
			s:    []float64{1, 2},
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := localMaxima(tc.s)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNearestMinWalks(t *testing.T) {
	s := []float64{3, 1, 2, 0, 5}

	if got := nearestMinLeft(s, 2); got != 1 {
		t.Fatalf("left: got %d, want 1", got)
	}
	if got := nearestMinRight(s, 2); got != 3 {
		t.Fatalf("right: got %d, want 3", got)
	}
}

func TestNearestMinClipsAtBoundaries(t *testing.T) {
	// Monotonic on both flanks: the walks must terminate at the boundary
	// samples rather than loop.
	s := []float64{1, 2, 3, 4, 3}

	if got := nearestMinLeft(s, 3); got != 0 {
		t.Fatalf("left: got %d, want 0", got)
	}
	if got := nearestMinRight(s, 3); got != 4 {
		t.Fatalf("right: got %d, want 4", got)
	}
}
