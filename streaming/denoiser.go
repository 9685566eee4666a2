package streaming

import (
	"github.com/Prophetizo/vectorwave/denoise"
)

// NoiseWindow is the online noise-estimation ring spec.md §4.6 describes:
// a fixed-length ring of recent fine-scale detail coefficients, updated
// O(1) per sample (overwrite) and queried in O(W) per block.
type NoiseWindow struct {
	samples []float64
	next    int
	filled  int
}

// NewNoiseWindow creates a window holding the last w detail coefficients.
func NewNoiseWindow(w int) *NoiseWindow {
	if w < 1 {
		w = 1
	}
	return &NoiseWindow{samples: make([]float64, w)}
}

// Push records a new detail coefficient, overwriting the oldest entry once
// the window has filled.
func (n *NoiseWindow) Push(v float64) {
	n.samples[n.next] = v
	n.next = (n.next + 1) % len(n.samples)
	if n.filled < len(n.samples) {
		n.filled++
	}
}

// PushAll records every value in a block's detail sequence.
func (n *NoiseWindow) PushAll(values []float64) {
	for _, v := range values {
		n.Push(v)
	}
}

// Sigma estimates the current noise level over the filled portion of the
// window using estimator.
func (n *NoiseWindow) Sigma(estimator denoise.Estimator) float64 {
	if n.filled == 0 {
		return 0
	}
	return denoise.EstimateSigma(n.samples[:n.filled], estimator)
}

// Denoiser applies the streaming denoising policy spec.md §4.6 describes
// to each block a Transform emits: sigma is re-estimated from the noise
// window after each block, then the block's own detail is thresholded.
// The approximation is always left untouched — denoising never touches
// it, only the detail coefficients that feed reconstruction downstream.
type Denoiser struct {
	window    *NoiseWindow
	Method    denoise.Method
	Rule      denoise.RuleType
	Estimator denoise.Estimator
}

// NewDenoiser creates a streaming denoiser with a noise window of length
// windowLen.
func NewDenoiser(windowLen int, method denoise.Method, rule denoise.RuleType, estimator denoise.Estimator) *Denoiser {
	return &Denoiser{
		window:    NewNoiseWindow(windowLen),
		Method:    method,
		Rule:      rule,
		Estimator: estimator,
	}
}

// Process thresholds block's detail coefficients in place using sigma
// estimated from the noise window observed so far, after folding the
// block's raw (pre-threshold) detail into the window for the next call —
// an online, shift-invariant analogue of the single-shot modwt.Denoise,
// applied one streaming block at a time.
func (d *Denoiser) Process(block Block) Block {
	sigma := d.window.Sigma(d.Estimator)
	lambda := denoise.Lambda(block.Detail, sigma, d.Method)
	d.window.PushAll(block.Detail)
	denoise.ApplyInPlace(block.Detail, lambda, d.Rule)
	return block
}
