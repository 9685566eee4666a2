package modwt

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Prophetizo/vectorwave/denoise"
)

// TestDenoise_ReducesNoiseEnergy exercises spec.md §4.6's single-pass
// denoise contract: one decompose, per-level thresholding, one inverse,
// and checks the result is closer to the clean signal than the noisy
// input was.
func TestDenoise_ReducesNoiseEnergy(t *testing.T) {
	w := mustWavelet(t, "db4")
	n := 1024
	clean := make([]float64, n)
	noisy := make([]float64, n)
	rng := rand.New(rand.NewSource(7))
	for i := range clean {
		clean[i] = math.Sin(float64(i) * 0.05)
		noisy[i] = clean[i] + 0.3*rng.NormFloat64()
	}

	denoised, err := Denoise(noisy, w, Periodic, DenoiseOptions{
		Levels:    4,
		Method:    denoise.Universal,
		Rule:      denoise.Soft,
		Estimator: denoise.MAD,
	})
	if err != nil {
		t.Fatalf("Denoise: %v", err)
	}

	noisyErr, denoisedErr := 0.0, 0.0
	for i := range clean {
		noisyErr += (clean[i] - noisy[i]) * (clean[i] - noisy[i])
		denoisedErr += (clean[i] - denoised[i]) * (clean[i] - denoised[i])
	}
	if denoisedErr >= noisyErr {
		t.Fatalf("denoised error %v did not improve on noisy error %v", denoisedErr, noisyErr)
	}
}

func TestDenoise_RejectsInvalidLevels(t *testing.T) {
	w := mustWavelet(t, "haar")
	signal := make([]float64, 64)
	_, err := Denoise(signal, w, Periodic, DenoiseOptions{Levels: 0})
	if err == nil {
		t.Fatal("expected error for Levels < 1")
	}
}
