package modwt

import (
	"strconv"

	"github.com/Prophetizo/vectorwave/vwerr"
	"github.com/Prophetizo/vectorwave/wavelet"
)

// MaxDepth is the hard cap on multi-level decomposition depth (spec.md §3,
// §4.2): "numerical stability and memory; configurable, but not
// recommended." Exposed as a variable, not a constant, so embedding code
// can override it per spec.md's Open Questions note that the mathematical
// maximum can exceed 10 for some configurations.
var MaxDepth = 10

// MultiLevelResult is the pyramid decomposition output: one approximation
// sequence plus J detail sequences (finest first, level 1..J), each the
// same length as the input signal.
type MultiLevelResult struct {
	Approx   []float64
	Details  [][]float64 // Details[j-1] is level j's detail sequence
	Wavelet  *wavelet.Wavelet
	Boundary Boundary

	// Truncated records whether any level's filter needed truncation
	// (L_j > N), per spec.md §3's "result flags this" requirement.
	Truncated bool
}

// MaxLevel computes J_max = the largest j such that (L-1)*2^(j-1)+1 <= N,
// iterating with overflow-checked arithmetic and capped at MaxDepth (or
// the cap argument, when >0 and smaller).
func MaxLevel(signalLen, filterLen int, cap int) int {
	if cap <= 0 || cap > MaxDepth {
		cap = MaxDepth
	}
	j := 0
	for level := 1; level <= cap; level++ {
		length, overflowed := effectiveLevelLength(filterLen, level)
		if overflowed || length > signalLen {
			break
		}
		j = level
	}
	if j == 0 {
		j = 1 // even a single level is always attempted; truncation handles L>N
	}
	return j
}

// Decompose runs the pyramid forward transform: level j's approximation
// is produced by applying the level-j filter to level j-1's approximation
// (signal = level-0 approximation); detail at level j uses the high-pass
// filter the same way (spec.md §4.2).
func Decompose(signal []float64, w *wavelet.Wavelet, b Boundary, j int) (*MultiLevelResult, error) {
	const op = "modwt.Decompose"
	if err := validateSignal(signal, op); err != nil {
		return nil, err
	}
	if err := validateWavelet(w, op); err != nil {
		return nil, err
	}
	if !validBoundary(b) {
		return nil, unsupportedBoundaryErr(op, b)
	}
	maxJ := MaxLevel(len(signal), w.Length(), MaxDepth)
	if j < 1 || j > MaxDepth {
		return nil, vwerr.New(vwerr.InvalidArgument, op, "level out of range").
			With("level", strconv.Itoa(j)).With("max", strconv.Itoa(MaxDepth)).
			WithSuggestion("choose 1 <= levels <= 10")
	}
	if j > maxJ {
		logger.Warn("requested level exceeds computed maximum; filters will be truncated",
			"requested", j, "computed_max", maxJ, "signal_len", len(signal))
	}

	result := &MultiLevelResult{Details: make([][]float64, j), Wavelet: w, Boundary: b}
	approx := signal
	n := len(signal)
	for level := 1; level <= j; level++ {
		lowFilt, err := resolveFilter(w.ID, w.DecLow, lowPassKind, level, n)
		if err != nil {
			return nil, err
		}
		highFilt, err := resolveFilter(w.ID, w.DecHigh, highPassKind, level, n)
		if err != nil {
			return nil, err
		}
		if fullLen, _ := effectiveLevelLength(w.Length(), level); fullLen > n {
			result.Truncated = true
		}

		nextApprox := make([]float64, n)
		detail := make([]float64, n)
		convolve(approx, lowFilt, b, nextApprox)
		convolve(approx, highFilt, b, detail)
		if err := checkFinite(nextApprox, op, "approx"); err != nil {
			return nil, err
		}
		if err := checkFinite(detail, op, "detail"); err != nil {
			return nil, err
		}
		result.Details[level-1] = detail
		approx = nextApprox
	}
	result.Approx = approx
	return result, nil
}

// Reconstruct walks the pyramid from the coarsest level to the finest,
// combining the running approximation with each level's detail via the
// single-level inverse, using that level's reconstruction filters
// (spec.md §4.2).
func Reconstruct(r *MultiLevelResult) ([]float64, error) {
	return reconstructSubset(r, nil)
}

// ReconstructBand reconstructs using only the detail levels present in
// keep (1-indexed); excluded levels are replaced with a single shared
// zero sequence before the same pyramid walk runs — contractually NOT a
// direct summation of detail sequences (spec.md §4.2).
func ReconstructBand(r *MultiLevelResult, keep map[int]bool) ([]float64, error) {
	return reconstructSubset(r, keep)
}

func reconstructSubset(r *MultiLevelResult, keep map[int]bool) ([]float64, error) {
	const op = "modwt.Reconstruct"
	if r == nil || r.Approx == nil {
		return nil, vwerr.New(vwerr.InvalidArgument, op, "nil or empty multi-level result")
	}
	j := len(r.Details)
	n := len(r.Approx)
	var zero []float64
	if keep != nil {
		zero = make([]float64, n)
	}

	approx := r.Approx
	for level := j; level >= 1; level-- {
		detail := r.Details[level-1]
		if keep != nil && !keep[level] {
			detail = zero
		}
		next, err := inverseLevel(approx, detail, r.Wavelet, r.Boundary, level)
		if err != nil {
			return nil, err
		}
		approx = next
	}
	return approx, nil
}

