package batch

import (
	"math"
	"testing"

	"github.com/Prophetizo/vectorwave/modwt"
	"github.com/Prophetizo/vectorwave/wavelet"
)

func testWavelet(t *testing.T) *wavelet.Wavelet {
	t.Helper()
	w, err := wavelet.Get("db4")
	if err != nil {
		t.Fatalf("wavelet.Get: %v", err)
	}
	return w
}

// TestForwardSoA_MatchesScalarKernel is the bitwise-equivalence test
// spec.md §4.3 requires before any specialized kernel is trusted: the
// generic SoA kernel's output for each lane must equal modwt.Forward's
// output for that signal run standalone, exactly.
func TestForwardSoA_MatchesScalarKernel(t *testing.T) {
	w := testWavelet(t)
	signals := make([][]float64, 6)
	for i := range signals {
		sig := make([]float64, 128)
		for n := range sig {
			sig[n] = math.Sin(float64(n)*0.1*float64(i+1)) + float64(i)
		}
		signals[i] = sig
	}

	result, err := ForwardSoA(signals, w, modwt.Periodic)
	if err != nil {
		t.Fatalf("ForwardSoA: %v", err)
	}

	approxAoS := result.Approx.ToAoS()
	detailAoS := result.Detail.ToAoS()

	for i, sig := range signals {
		want, err := modwt.Forward(sig, w, modwt.Periodic)
		if err != nil {
			t.Fatalf("modwt.Forward(signal %d): %v", i, err)
		}
		for t2 := range sig {
			if approxAoS[i][t2] != want.Approx[t2] {
				t.Fatalf("approx mismatch signal=%d t=%d: soa=%v scalar=%v", i, t2, approxAoS[i][t2], want.Approx[t2])
			}
			if detailAoS[i][t2] != want.Detail[t2] {
				t.Fatalf("detail mismatch signal=%d t=%d: soa=%v scalar=%v", i, t2, detailAoS[i][t2], want.Detail[t2])
			}
		}
	}
}

func TestForwardSoA_FallsBackBelowTBatch(t *testing.T) {
	w := testWavelet(t)
	signals := [][]float64{
		{1, 2, 3, 4, 5, 6, 7, 8},
		{8, 7, 6, 5, 4, 3, 2, 1},
	}
	result, err := ForwardSoA(signals, w, modwt.Zero)
	if err != nil {
		t.Fatalf("ForwardSoA: %v", err)
	}
	if result.Approx.B != 2 {
		t.Fatalf("expected B=2, got %d", result.Approx.B)
	}
}

func TestToSoA_RoundTrip(t *testing.T) {
	signals := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	layout, err := ToSoA(signals, 4)
	if err != nil {
		t.Fatalf("ToSoA: %v", err)
	}
	if layout.Bpad != 4 {
		t.Fatalf("expected Bpad=4, got %d", layout.Bpad)
	}
	back := layout.ToAoS()
	for i, sig := range signals {
		for j, v := range sig {
			if back[i][j] != v {
				t.Fatalf("round trip mismatch at [%d][%d]: got %v want %v", i, j, back[i][j], v)
			}
		}
	}
}
