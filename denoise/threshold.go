package denoise

import (
	"math"
	"sort"
)

// Lambda computes the shrinkage threshold for a level's coefficients
// given sigma-hat and the chosen method (spec.md §4.6).
func Lambda(coeffs []float64, sigma float64, method Method) float64 {
	n := len(coeffs)
	if n == 0 || sigma <= 0 {
		return 0
	}
	switch method {
	case SURE:
		return sureLambda(coeffs, sigma)
	case Minimax:
		return sigma * minimaxThreshold(n)
	default:
		return universalLambda(sigma, n)
	}
}

// universalLambda implements the Donoho-Johnstone universal threshold:
// lambda = sigma * sqrt(2 * ln N).
func universalLambda(sigma float64, n int) float64 {
	return sigma * math.Sqrt(2*math.Log(float64(n)))
}

// sureLambda finds the threshold minimizing Stein's Unbiased Risk
// Estimate over the level's normalized coefficients, searching the
// candidate thresholds |coeffs[i]|/sigma and falling back to the
// universal threshold in the sparse regime tested below (the well-known
// sparse-signal failure mode of SURE).
func sureLambda(coeffs []float64, sigma float64) float64 {
	n := len(coeffs)
	normalized := make([]float64, n)
	for i, c := range coeffs {
		normalized[i] = math.Abs(c) / sigma
	}

	sq := make([]float64, n)
	copy(sq, normalized)
	for i := range sq {
		sq[i] *= sq[i]
	}
	sort.Float64s(sq)

	universal := math.Sqrt(2 * math.Log(float64(n)))
	best := universal
	bestRisk := math.Inf(1)

	var cumSum float64
	for i, v := range sq {
		cumSum += v
		// risk(t) for threshold t = sqrt(sq[i]), per Stein's unbiased
		// risk: n, minus 2 for every coefficient at or below t, plus the
		// squared value of those coefficients, plus t^2 for each of the
		// rest.
		below := float64(i + 1)
		risk := float64(n) - 2*below + cumSum + (float64(n)-below)*v
		if risk < bestRisk {
			bestRisk = risk
			best = math.Sqrt(v)
		}
	}

	// Sparse regime: when the normalized signal's quadratic mean energy
	// is below log2(N)^1.5 / sqrt(N) (i.e. essentially noise-free
	// sparsity), SURE is known to be unreliable; defer to the universal
	// threshold.
	var energy float64
	for _, v := range sq {
		energy += v
	}
	sparsityBound := math.Pow(math.Log2(float64(n)), 1.5) / math.Sqrt(float64(n))
	if energy/float64(n) < sparsityBound {
		return sigma * universal
	}

	return sigma * best
}

// Apply applies the shrinkage rule element-wise, returning a new slice.
func Apply(coeffs []float64, lambda float64, rule RuleType) []float64 {
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = shrink(c, lambda, rule)
	}
	return out
}

// ApplyInPlace applies the shrinkage rule without allocating, for hot
// paths (e.g. the streaming denoiser) that reuse their output buffer.
func ApplyInPlace(coeffs []float64, lambda float64, rule RuleType) {
	for i, c := range coeffs {
		coeffs[i] = shrink(c, lambda, rule)
	}
}

func shrink(c, lambda float64, rule RuleType) float64 {
	if rule == Hard {
		if math.Abs(c) > lambda {
			return c
		}
		return 0
	}
	mag := math.Abs(c) - lambda
	if mag <= 0 {
		return 0
	}
	if c < 0 {
		return -mag
	}
	return mag
}
