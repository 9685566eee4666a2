// Package vectorwave is a numeric library for discrete and continuous
// wavelet analysis of one-dimensional real-valued signals: a shift-
// invariant Maximal Overlap DWT (package modwt), a batch SIMD-style
// engine (package batch), a lock-free streaming pipeline (packages ring
// and streaming) with an online denoiser, and a self-tuning performance
// model (package perfmodel).
//
// Config gathers the full recognised option set from spec.md §6 into one
// validated value, mirroring the teacher's top-level options-struct
// convention (jpeg2000's EncoderOptions/DecoderOptions).
package vectorwave

import (
	"github.com/Prophetizo/vectorwave/denoise"
	"github.com/Prophetizo/vectorwave/modwt"
	"github.com/Prophetizo/vectorwave/vwerr"
	"github.com/Prophetizo/vectorwave/wavelet"
)

// Config is the full recognised option set spec.md §6 names.
type Config struct {
	Boundary     modwt.Boundary
	WaveletID    string
	Levels       int
	BlockSize    int
	OverlapRatio float64
	BufferMult   int

	ThresholdMethod denoise.Method
	ThresholdType   denoise.RuleType
	NoiseEstimation denoise.Estimator
	NoiseWindow     int

	MaxPoolPerSize int
	Execution      ExecutionMode
}

// ExecutionMode records whether kernels may use the worker-pool
// parallel paths (modwt.DecomposeParallel, batch.ForwardSoA's fan-out)
// or always run sequentially. The kernels take no Config and do not read
// this value; each applies its own size thresholds.
type ExecutionMode int

const (
	// Auto lets each operation apply its own thresholds (spec.md §4.3,
	// §4.4) to decide sequential vs. parallel/batched execution.
	Auto ExecutionMode = iota
	// Sequential forces the scalar, single-goroutine path everywhere.
	Sequential
	// Parallel forces the worker-pool path regardless of size thresholds.
	Parallel
)

// DefaultConfig returns the option set spec.md §6 implies as reasonable
// defaults: periodic boundary, db4 wavelet, 4 levels, no overlap, a
// buffer multiplier of 4, universal/soft thresholding with MAD noise
// estimation, and automatic execution-mode selection.
func DefaultConfig() Config {
	return Config{
		Boundary:        modwt.Periodic,
		WaveletID:       "db4",
		Levels:          4,
		BlockSize:       1024,
		OverlapRatio:    0,
		BufferMult:      4,
		ThresholdMethod: denoise.Universal,
		ThresholdType:   denoise.Soft,
		NoiseEstimation: denoise.MAD,
		NoiseWindow:     512,
		MaxPoolPerSize:  16,
		Execution:       Auto,
	}
}

// Validate checks the wavelet identifier, level range, block size
// (positive), overlap ratio, buffer multiplier, pool cap (non-negative),
// and boundary mode, returning the first violation found as a vwerr.Error.
// It does not check NoiseWindow, the threshold/noise/execution enum
// values, or BlockSize against the wavelet's filter length.
func (c Config) Validate() error {
	const op = "vectorwave.Config.Validate"
	if _, err := wavelet.Get(c.WaveletID); err != nil {
		return vwerr.Wrap(err, vwerr.InvalidConfiguration, op, "unknown wavelet identifier").
			With("wavelet", c.WaveletID)
	}
	if c.Levels < 1 || c.Levels > modwt.MaxDepth {
		return vwerr.New(vwerr.InvalidConfiguration, op, "levels out of range").
			WithSuggestion("choose 1..10")
	}
	if c.BlockSize < 1 {
		return vwerr.New(vwerr.InvalidConfiguration, op, "block_size must be positive")
	}
	if c.OverlapRatio < 0 || c.OverlapRatio >= 1 {
		return vwerr.New(vwerr.InvalidConfiguration, op, "overlap_ratio must be in [0,1)")
	}
	if c.BufferMult < 2 {
		return vwerr.New(vwerr.InvalidConfiguration, op, "buffer_multiplier must be >= 2")
	}
	if c.MaxPoolPerSize < 0 {
		return vwerr.New(vwerr.InvalidConfiguration, op, "max_pool_per_size must be non-negative")
	}
	switch c.Boundary {
	case modwt.Periodic, modwt.Zero, modwt.Symmetric, modwt.Reflect:
	default:
		return vwerr.New(vwerr.InvalidConfiguration, op, "unknown boundary mode")
	}
	return nil
}

// Wavelet resolves the configured wavelet identifier.
func (c Config) Wavelet() (*wavelet.Wavelet, error) {
	return wavelet.Get(c.WaveletID)
}
