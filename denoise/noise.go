package denoise

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// madScaleFactor converts MAD to a sigma estimate under the Gaussian
// assumption: sigma = MAD / 0.6745 (the standard normal's .75 quantile).
const madScaleFactor = 0.6745

// EstimateSigma computes sigma-hat over window (the most recent W
// fine-scale detail coefficients) using the selected estimator. Per
// spec.md §4.6: an empty or all-non-finite window returns 0, and an
// all-zero window correctly returns 0 rather than erroring.
func EstimateSigma(window []float64, estimator Estimator) float64 {
	finite := finiteValues(window)
	if len(finite) == 0 {
		return 0
	}
	switch estimator {
	case STD:
		return estimateSTD(finite)
	case Adaptive:
		if looksHeavyTailed(finite) {
			return estimateMAD(finite)
		}
		return estimateSTD(finite)
	default:
		return estimateMAD(finite)
	}
}

func estimateMAD(finite []float64) float64 {
	m := median(finite)
	deviations := make([]float64, len(finite))
	allZero := true
	for i, v := range finite {
		d := math.Abs(v - m)
		deviations[i] = d
		if v != 0 {
			allZero = false
		}
	}
	if allZero {
		return 0
	}
	mad := median(deviations)
	return mad / madScaleFactor
}

func estimateSTD(finite []float64) float64 {
	if len(finite) < 2 {
		return 0
	}
	return stat.StdDev(finite, nil)
}

// looksHeavyTailed reports whether the window's excess kurtosis exceeds a
// fixed threshold, the Adaptive estimator's signal to prefer MAD's
// robustness over STD's efficiency.
func looksHeavyTailed(finite []float64) bool {
	if len(finite) < 4 {
		return false
	}
	if stat.StdDev(finite, nil) == 0 {
		return false
	}
	const heavyTailThreshold = 1.0
	return stat.ExKurtosis(finite, nil) > heavyTailThreshold
}

func finiteValues(window []float64) []float64 {
	out := make([]float64, 0, len(window))
	for _, v := range window {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
