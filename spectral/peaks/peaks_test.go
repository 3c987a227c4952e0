package peaks

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cwbudde/algo-peaks/internal/testutil"
	"github.com/cwbudde/algo-peaks/spectral/smooth"
)

func TestExtractNoisyGaussianBump(t *testing.T) {
	const (
		center = 50.0
		sigma  = 6.0
		height = 10.0
	)

	x := testutil.Ramp(100)
	y := testutil.Add(
		testutil.GaussianBump(100, center, sigma, height, 0),
		testutil.DeterministicNoise(1, 0.3, 100),
	)

	ranges, err := Extract(x, y,
		WithTopN(1),
		WithMode(ModeMax),
		WithSmoothWindow(7),
		WithMinProminenceRatio(0.01),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(ranges))
	}

	r := ranges[0]
	if r.Kind != KindMax {
		t.Fatalf("kind: got %v", r.Kind)
	}
	if math.Abs(r.Center-center) > 2 {
		t.Fatalf("center: got %v, want %v +- 2", r.Center, center)
	}

	fwhm := 2 * sigma * math.Sqrt(2*math.Ln2)
	width := r.Right - r.Left
	if width < 0.8*fwhm || width > 1.2*fwhm {
		t.Fatalf("width: got %v, want within 20%% of %v", width, fwhm)
	}
}

func TestExtractFlatTraceIsEmpty(t *testing.T) {
	x := testutil.Ramp(50)
	y := testutil.DC(5, 50)

	for _, mode := range []Mode{ModeMax, ModeMin, ModeAuto} {
		ranges, err := Extract(x, y, WithMode(mode))
		if err != nil {
			t.Fatalf("mode %v: %v", mode, err)
		}
		if len(ranges) != 0 {
			t.Fatalf("mode %v: expected empty, got %d ranges", mode, len(ranges))
		}
	}
}

func TestExtractTopOneSelectsTallerBump(t *testing.T) {
	x := testutil.Ramp(200)
	y := testutil.Add(
		testutil.GaussianBump(200, 50, 5, 10, 0),
		testutil.GaussianBump(200, 140, 5, 3, 0),
	)

	ranges, err := Extract(x, y, WithTopN(1), WithMode(ModeMax))
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(ranges))
	}
	if math.Abs(ranges[0].Center-50) > 2 {
		t.Fatalf("center: got %v, want ~50", ranges[0].Center)
	}
}

func TestExtractOrderingNonIncreasing(t *testing.T) {
	x := testutil.Ramp(300)
	y := testutil.Add(
		testutil.Add(
			testutil.GaussianBump(300, 60, 5, 10, 0),
			testutil.GaussianBump(300, 150, 5, 6, 0),
		),
		testutil.GaussianBump(300, 240, 5, 3, 0),
	)

	ranges, err := Extract(x, y, WithTopN(3), WithMode(ModeMax))
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 3 {
		t.Fatalf("expected 3 ranges, got %d", len(ranges))
	}

	for i := 1; i < len(ranges); i++ {
		if ranges[i].Prominence > ranges[i-1].Prominence {
			t.Fatalf("prominence not non-increasing: %v then %v", ranges[i-1].Prominence, ranges[i].Prominence)
		}
	}

	wantCenters := []float64{60, 150, 240}
	for i, want := range wantCenters {
		if math.Abs(ranges[i].Center-want) > 2 {
			t.Fatalf("range %d: center %v, want ~%v", i, ranges[i].Center, want)
		}
	}
}

func TestExtractDegenerateSinglePointRange(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{1, 2, 1}

	ranges, err := Extract(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(ranges))
	}

	r := ranges[0]
	if r.Kind != KindMax {
		t.Fatalf("kind: got %v", r.Kind)
	}
	if r.Center != 1 || r.Left != 1 || r.Right != 1 {
		t.Fatalf("got center=%v left=%v right=%v, want all 1", r.Center, r.Left, r.Right)
	}
	if r.Prominence != 1 {
		t.Fatalf("prominence: got %v, want 1", r.Prominence)
	}
}

func TestExtractDeterministic(t *testing.T) {
	x := testutil.Ramp(100)
	y := testutil.Add(
		testutil.GaussianBump(100, 40, 4, 8, 1),
		testutil.DeterministicNoise(7, 0.2, 100),
	)

	a, err := Extract(x, y)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Extract(x, y)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated calls differ:\n%v\n%v", a, b)
	}
}

func TestExtractCardinality(t *testing.T) {
	x := testutil.Ramp(100)
	y := testutil.GaussianBump(100, 50, 5, 10, 0)

	for _, n := range []int{0, -3} {
		ranges, err := Extract(x, y, WithTopN(n))
		if err != nil {
			t.Fatalf("topN %d: %v", n, err)
		}
		if len(ranges) != 0 {
			t.Fatalf("topN %d: expected empty, got %d", n, len(ranges))
		}
	}

	ranges, err := Extract(x, y, WithTopN(10))
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) > 10 {
		t.Fatalf("got %d ranges, want <= 10", len(ranges))
	}
}

func TestExtractDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		y    []float64
	}{
		{"mismatched lengths", []float64{1, 2, 3}, []float64{1, 2}},
		{"too few samples", []float64{1, 2}, []float64{1, 2}},
		{"all NaN", []float64{math.NaN(), math.NaN(), math.NaN()}, []float64{1, 2, 3}},
		{"empty", nil, nil},
		{
			"too few finite pairs",
			[]float64{1, 2, 3, 4},
			[]float64{1, math.NaN(), math.Inf(1), 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ranges, err := Extract(tc.x, tc.y)
			if err != nil {
				t.Fatal(err)
			}
			if len(ranges) != 0 {
				t.Fatalf("expected empty, got %d ranges", len(ranges))
			}
		})
	}
}

func TestExtractDropsNonFinitePairs(t *testing.T) {
	x := testutil.Ramp(100)
	y := testutil.GaussianBump(100, 50, 5, 10, 0)
	y[10] = math.NaN()
	x[80] = math.Inf(-1)

	ranges, err := Extract(x, y, WithTopN(1), WithMode(ModeMax))
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(ranges))
	}
	if math.Abs(ranges[0].Center-50) > 2 {
		t.Fatalf("center: got %v, want ~50", ranges[0].Center)
	}
}

func TestExtractNegativeWindowFails(t *testing.T) {
	_, err := Extract(testutil.Ramp(10), testutil.Ramp(10), WithSmoothWindow(-1))
	if !errors.Is(err, ErrNegativeWindow) {
		t.Fatalf("expected ErrNegativeWindow, got %v", err)
	}
}

func TestExtractMinModeEqualsMaxOnNegated(t *testing.T) {
	x := testutil.Ramp(120)
	y := testutil.Add(
		testutil.GaussianBump(120, 30, 4, -8, 10), // trough
		testutil.DeterministicNoise(3, 0.2, 120),
	)

	minRanges, err := Extract(x, y, WithMode(ModeMin))
	if err != nil {
		t.Fatal(err)
	}

	maxRanges, err := Extract(x, testutil.Negate(y), WithMode(ModeMax))
	if err != nil {
		t.Fatal(err)
	}

	if len(minRanges) != len(maxRanges) {
		t.Fatalf("cardinality: %d vs %d", len(minRanges), len(maxRanges))
	}

	for i := range minRanges {
		got := minRanges[i]
		want := maxRanges[i]
		want.Kind = KindMin

		if got != want {
			t.Fatalf("range %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestExtractAutoPrefersTroughs(t *testing.T) {
	x := testutil.Ramp(150)
	y := testutil.GaussianBump(150, 70, 6, -9, 10) // absorption trough

	ranges, err := Extract(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) == 0 {
		t.Fatal("expected at least one range")
	}
	if ranges[0].Kind != KindMin {
		t.Fatalf("kind: got %v, want min", ranges[0].Kind)
	}
	if math.Abs(ranges[0].Center-70) > 2 {
		t.Fatalf("center: got %v, want ~70", ranges[0].Center)
	}
}

func TestExtractAutoTieFavorsMax(t *testing.T) {
	// Antisymmetric trace: both polarities carry identical total
	// prominence, so the tie must resolve to the max set.
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 1, 0, -1, 0}

	ranges, err := Extract(x, y, WithSmoothWindow(1), WithMinProminenceRatio(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(ranges))
	}
	if ranges[0].Kind != KindMax {
		t.Fatalf("kind: got %v, want max", ranges[0].Kind)
	}
}

func TestExtractLeftNeverExceedsRight(t *testing.T) {
	x := testutil.Ramp(200)
	y := testutil.Add(
		testutil.GaussianBump(200, 60, 3, 7, 0),
		testutil.DeterministicNoise(11, 0.6, 200),
	)

	ranges, err := Extract(x, y, WithTopN(10), WithMinProminenceRatio(0))
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range ranges {
		if r.Left > r.Right {
			t.Fatalf("range %d: left %v > right %v", i, r.Left, r.Right)
		}
	}
}

func TestExtractDoesNotMutateInputs(t *testing.T) {
	x := testutil.Ramp(60)
	y := testutil.GaussianBump(60, 30, 4, -5, 8)
	xOrig := append([]float64(nil), x...)
	yOrig := append([]float64(nil), y...)

	if _, err := Extract(x, y, WithMode(ModeMin)); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, x, xOrig, 0)
	testutil.RequireSliceNearlyEqual(t, y, yOrig, 0)
}

func TestSmoothingWindowOneMatchesRawExtrema(t *testing.T) {
	y := testutil.Add(
		testutil.GaussianBump(80, 40, 5, 6, 0),
		testutil.DeterministicNoise(5, 0.5, 80),
	)

	ss, err := smooth.MovingAverage(y, 1)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(localMaxima(ss), localMaxima(y)) {
		t.Fatal("window 1 must not change extremum indices")
	}
}
