package streaming

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prophetizo/vectorwave/denoise"
)

// TestDenoiser_SigmaTracksNoiseWindow matches spec.md §8 scenario 5: as
// blocks of pure noise flow through the window, the re-estimated sigma
// should stay close to the true noise standard deviation rather than
// drifting with each block.
func TestDenoiser_SigmaTracksNoiseWindow(t *testing.T) {
	d := NewDenoiser(256, denoise.Universal, denoise.Soft, denoise.STD)

	const trueSigma = 2.0
	noise := make([]float64, 64)
	for i := range noise {
		// Deterministic pseudo-noise: avoids math/rand so the test result
		// never depends on a seed, while still exercising a non-trivial
		// spread of values around zero.
		noise[i] = trueSigma * math.Sin(float64(i)*2.3)
	}

	var lastSigma float64
	for i := 0; i < 8; i++ {
		block := Block{Approx: make([]float64, len(noise)), Detail: append([]float64(nil), noise...)}
		out := d.Process(block)
		require.Len(t, out.Detail, len(noise))
		lastSigma = d.window.Sigma(d.Estimator)
	}

	assert.InDelta(t, trueSigma, lastSigma, 1.5, "sigma should settle near the true noise level")
}

func TestNoiseWindow_PushWrapsAtCapacity(t *testing.T) {
	w := NewNoiseWindow(4)
	w.PushAll([]float64{1, 2, 3, 4, 5})

	require.Equal(t, 4, w.filled)
	assert.Equal(t, []float64{5, 2, 3, 4}, w.samples)
}
