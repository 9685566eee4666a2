package denoise

import (
	"math"
	"testing"
)

func TestEstimateSigma_MAD_AllZero(t *testing.T) {
	if got := EstimateSigma([]float64{0, 0, 0, 0}, MAD); got != 0 {
		t.Fatalf("MAD of all-zero window = %v, want 0", got)
	}
}

func TestEstimateSigma_EmptyWindow(t *testing.T) {
	if got := EstimateSigma(nil, MAD); got != 0 {
		t.Fatalf("MAD of empty window = %v, want 0", got)
	}
	if got := EstimateSigma([]float64{}, STD); got != 0 {
		t.Fatalf("STD of empty window = %v, want 0", got)
	}
}

func TestEstimateSigma_AllNonFinite(t *testing.T) {
	window := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	if got := EstimateSigma(window, MAD); got != 0 {
		t.Fatalf("MAD of all-non-finite window = %v, want 0", got)
	}
}

func TestEstimateSigma_STD_FewerThanTwoFinite(t *testing.T) {
	if got := EstimateSigma([]float64{5}, STD); got != 0 {
		t.Fatalf("STD of single-sample window = %v, want 0", got)
	}
}

func TestEstimateSigma_MAD_KnownValue(t *testing.T) {
	// Median is 3; absolute deviations are [2,1,0,1,2]; MAD is 1.
	window := []float64{1, 2, 3, 4, 5}
	got := EstimateSigma(window, MAD)
	want := 1.0 / madScaleFactor
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("MAD sigma = %v, want %v", got, want)
	}
}

func TestMedian_OddAndEven(t *testing.T) {
	if got := median([]float64{5, 1, 3}); got != 3 {
		t.Fatalf("median(odd) = %v, want 3", got)
	}
	if got := median([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Fatalf("median(even) = %v, want 2.5", got)
	}
}

func TestMedian_PreservesCallerOrder(t *testing.T) {
	data := []float64{5, 1, 3, 2, 4}
	original := append([]float64(nil), data...)
	median(data)
	for i := range data {
		if data[i] != original[i] {
			t.Fatalf("median mutated caller's slice at %d: got %v want %v", i, data[i], original[i])
		}
	}
}
