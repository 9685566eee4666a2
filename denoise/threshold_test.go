package denoise

import (
	"math"
	"testing"
)

func TestLambda_Universal(t *testing.T) {
	coeffs := make([]float64, 100)
	sigma := 2.0
	got := Lambda(coeffs, sigma, Universal)
	want := sigma * math.Sqrt(2*math.Log(100))
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Lambda(universal) = %v, want %v", got, want)
	}
}

func TestLambda_ZeroSigmaOrEmpty(t *testing.T) {
	if got := Lambda([]float64{1, 2, 3}, 0, Universal); got != 0 {
		t.Fatalf("Lambda with sigma=0 = %v, want 0", got)
	}
	if got := Lambda(nil, 1, Universal); got != 0 {
		t.Fatalf("Lambda with no coefficients = %v, want 0", got)
	}
}

func TestApply_Soft(t *testing.T) {
	coeffs := []float64{-3, -1, 0, 1, 3}
	out := Apply(coeffs, 2, Soft)
	want := []float64{-1, 0, 0, 0, 1}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("Apply(soft)[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestApply_Hard(t *testing.T) {
	coeffs := []float64{-3, -1, 0, 1, 3}
	out := Apply(coeffs, 2, Hard)
	want := []float64{-3, 0, 0, 0, 3}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("Apply(hard)[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestApplyInPlace_MatchesApply(t *testing.T) {
	coeffs := []float64{-3, -1, 0, 1, 3}
	want := Apply(coeffs, 1.5, Soft)
	got := append([]float64(nil), coeffs...)
	ApplyInPlace(got, 1.5, Soft)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ApplyInPlace[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMinimaxThreshold_TableLookupAndInterpolation(t *testing.T) {
	if got := minimaxThreshold(1024); got != minimaxTable[1024] {
		t.Fatalf("minimaxThreshold(1024) = %v, want exact table value %v", got, minimaxTable[1024])
	}
	// 24 lies strictly between the 16 and 32 breakpoints.
	lo, hi := minimaxTable[16], minimaxTable[32]
	got := minimaxThreshold(24)
	if got <= lo || got >= hi {
		t.Fatalf("minimaxThreshold(24) = %v, want strictly between %v and %v", got, lo, hi)
	}
}

func TestSureLambda_FallsBackWhenSignalLooksLikePureNoiseFloor(t *testing.T) {
	// All-zero coefficients: normalized energy is zero, well under the
	// sparsity bound, so SURE defers to the universal threshold rather
	// than returning a degenerate small lambda.
	coeffs := make([]float64, 256)
	got := Lambda(coeffs, 1.0, SURE)
	want := math.Sqrt(2 * math.Log(256))
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("all-zero SURE lambda = %v, want universal fallback %v", got, want)
	}
}
