// Package denoise implements the threshold rules and noise estimators
// spec.md §4.6 defines for wavelet-domain denoising: MAD/STD sigma
// estimation, and universal/SURE/minimax threshold selection applied via
// soft or hard shrinkage. It is shared by the non-streaming multi-level
// modwt.Denoise operation and the streaming denoiser in package
// streaming, so the two never drift apart on threshold semantics.
package denoise

// Method selects how the threshold lambda is derived from sigma and the
// coefficient count/values.
type Method int

const (
	// Universal: lambda = sigma * sqrt(2 * ln N).
	Universal Method = iota
	// SURE: Stein's Unbiased Risk Estimator over the level's coefficients.
	SURE
	// Minimax: table-driven lambda depending on N.
	Minimax
)

func (m Method) String() string {
	switch m {
	case Universal:
		return "universal"
	case SURE:
		return "sure"
	case Minimax:
		return "minimax"
	default:
		return "unknown"
	}
}

// RuleType selects the shrinkage rule applied once lambda is known.
type RuleType int

const (
	// Soft: sign(c) * max(|c|-lambda, 0).
	Soft RuleType = iota
	// Hard: c if |c| > lambda else 0.
	Hard
)

func (r RuleType) String() string {
	if r == Hard {
		return "hard"
	}
	return "soft"
}

// Estimator selects the online sigma estimator.
type Estimator int

const (
	// MAD: median absolute deviation / 0.6745.
	MAD Estimator = iota
	// STD: sample standard deviation.
	STD
	// Adaptive picks MAD when the window looks heavy-tailed (kurtosis
	// above a fixed threshold) and STD otherwise, trading MAD's
	// robustness against STD's efficiency on near-Gaussian noise.
	Adaptive
)

func (e Estimator) String() string {
	switch e {
	case MAD:
		return "mad"
	case STD:
		return "std"
	case Adaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}
