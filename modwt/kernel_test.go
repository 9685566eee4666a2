package modwt

import (
	"math"
	"testing"

	"github.com/Prophetizo/vectorwave/wavelet"
)

func mustWavelet(t *testing.T, id string) *wavelet.Wavelet {
	t.Helper()
	w, err := wavelet.Get(id)
	if err != nil {
		t.Fatalf("wavelet.Get(%q): %v", id, err)
	}
	return w
}

// TestForward_HaarWorkedExample matches spec.md §8 scenario 1's literal
// worked numbers: level-1 Haar approximation of [1,2,3,...,8] at t=3
// (0-indexed) combines signal[3] and signal[2] scaled by 1/2 each.
func TestForward_HaarWorkedExample(t *testing.T) {
	w := mustWavelet(t, "haar")
	signal := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	result, err := Forward(signal, w, Periodic)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}

	want := (signal[3] + signal[2]) / 2
	if math.Abs(result.Approx[3]-want) > 1e-12 {
		t.Fatalf("approx[3] = %v, want %v", result.Approx[3], want)
	}
}

// TestShiftInvariance verifies spec.md §8's shift-invariance guarantee: a
// circular shift of the input produces the identically-shifted output
// under periodic boundary.
func TestShiftInvariance(t *testing.T) {
	w := mustWavelet(t, "haar")
	n := 16
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(float64(i) * 0.5)
	}

	shifted := make([]float64, n)
	shift := 3
	for i := range signal {
		shifted[(i+shift)%n] = signal[i]
	}

	result, err := Forward(signal, w, Periodic)
	if err != nil {
		t.Fatalf("Forward(signal): %v", err)
	}
	shiftedResult, err := Forward(shifted, w, Periodic)
	if err != nil {
		t.Fatalf("Forward(shifted): %v", err)
	}

	for i := range signal {
		wantApprox := result.Approx[i]
		gotApprox := shiftedResult.Approx[(i+shift)%n]
		if math.Abs(gotApprox-wantApprox) > 1e-12 {
			t.Fatalf("approx not shift-invariant at i=%d: got %v want %v", i, gotApprox, wantApprox)
		}
	}
}

// TestPerfectReconstruction_Length777 matches spec.md §8 scenario 2:
// an arbitrary-length (non-power-of-two) signal round-trips through
// Forward/Inverse to within 1e-10 under periodic boundary.
func TestPerfectReconstruction_Length777(t *testing.T) {
	for _, id := range []string{"haar", "db4", "sym4", "coif2"} {
		t.Run(id, func(t *testing.T) {
			w := mustWavelet(t, id)
			n := 777
			signal := make([]float64, n)
			for i := range signal {
				signal[i] = math.Sin(float64(i)*0.037) + 0.2*math.Cos(float64(i)*0.11)
			}

			result, err := Forward(signal, w, Periodic)
			if err != nil {
				t.Fatalf("Forward: %v", err)
			}
			recon, err := Inverse(result.Approx, result.Detail, w, Periodic)
			if err != nil {
				t.Fatalf("Inverse: %v", err)
			}

			var maxErr float64
			for i := range signal {
				if d := math.Abs(signal[i] - recon[i]); d > maxErr {
					maxErr = d
				}
			}
			if maxErr > 1e-10 {
				t.Fatalf("reconstruction error %v exceeds 1e-10", maxErr)
			}
		})
	}
}

func TestForward_RejectsNonFiniteSignal(t *testing.T) {
	w := mustWavelet(t, "haar")
	_, err := Forward([]float64{1, 2, math.NaN(), 4}, w, Periodic)
	if err == nil {
		t.Fatal("expected error for non-finite input")
	}
}

func TestForward_ShortSignalDoesNotError(t *testing.T) {
	// spec.md §4.1 edge case: L > N must wrap/zero-fill, never throw.
	w := mustWavelet(t, "db4") // length-4 filter
	signal := []float64{1, 2, 3}
	if _, err := Forward(signal, w, Periodic); err != nil {
		t.Fatalf("Forward with L>N under Periodic should not error: %v", err)
	}
	if _, err := Forward(signal, w, Zero); err != nil {
		t.Fatalf("Forward with L>N under Zero should not error: %v", err)
	}
}

func TestInverse_RejectsBiorthogonalMirroredBoundary(t *testing.T) {
	w := mustWavelet(t, "bior2.2")
	signal := make([]float64, 32)
	for i := range signal {
		signal[i] = float64(i)
	}
	result, err := Forward(signal, w, Symmetric)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if _, err := Inverse(result.Approx, result.Detail, w, Symmetric); err == nil {
		t.Fatal("expected UnsupportedBoundary for biorthogonal + symmetric inverse")
	}
}
