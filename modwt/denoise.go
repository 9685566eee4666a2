package modwt

import (
	"github.com/Prophetizo/vectorwave/denoise"
	"github.com/Prophetizo/vectorwave/vwerr"
	"github.com/Prophetizo/vectorwave/wavelet"
)

// DenoiseOptions configures the single-shot multi-level denoiser.
type DenoiseOptions struct {
	Levels    int
	Method    denoise.Method
	Rule      denoise.RuleType
	Estimator denoise.Estimator
	PerLevel  bool // estimate sigma independently per detail level
}

// Denoise runs exactly one forward decomposition, thresholds every detail
// level in place, and performs exactly one inverse reconstruction — never
// chaining multiple forward/inverse round-trips, per spec.md §4.6's
// single-pass contract. Sigma is estimated from the finest detail level
// (level 1) unless PerLevel is set, in which case each level supplies its
// own noise estimate.
func Denoise(signal []float64, w *wavelet.Wavelet, b Boundary, opts DenoiseOptions) ([]float64, error) {
	const op = "modwt.Denoise"
	if opts.Levels < 1 {
		return nil, vwerr.New(vwerr.InvalidArgument, op, "levels must be >= 1")
	}

	result, err := Decompose(signal, w, b, opts.Levels)
	if err != nil {
		return nil, err
	}

	var globalSigma float64
	if !opts.PerLevel {
		globalSigma = denoise.EstimateSigma(result.Details[0], opts.Estimator)
	}

	for level, detail := range result.Details {
		sigma := globalSigma
		if opts.PerLevel {
			sigma = denoise.EstimateSigma(detail, opts.Estimator)
		}
		lambda := denoise.Lambda(detail, sigma, opts.Method)
		denoise.ApplyInPlace(detail, lambda, opts.Rule)
		result.Details[level] = detail
	}

	return Reconstruct(result)
}
