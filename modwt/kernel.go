// Package modwt implements the Maximal Overlap Discrete Wavelet Transform:
// a shift-invariant, non-decimated, arbitrary-length transform with
// perfect reconstruction (spec.md §4.1-§4.2), plus the multi-level pyramid
// and its truncation cache and parallel execution (§4.2, §4.4).
package modwt

import (
	"math"
	"strconv"

	"github.com/Prophetizo/vectorwave/vwerr"
	"github.com/Prophetizo/vectorwave/wavelet"
)

// Result is a single-level MODWT output: approximation and detail
// sequences, each the same length as the input signal. Immutable once
// returned — callers that need to threshold coefficients should copy.
type Result struct {
	Approx []float64
	Detail []float64
}

// Forward computes the level-1 MODWT of signal under w using the given
// boundary handling. It never errors on short signals (L > N): the filter
// is truncated to its first N taps (see resolveFilter), and the remaining
// taps wrap (Periodic), mirror (Symmetric, Reflect), or are dropped (Zero),
// per spec.md §4.1 edge-case rules.
func Forward(signal []float64, w *wavelet.Wavelet, b Boundary) (Result, error) {
	return forwardLevel(signal, w, b, 1)
}

func forwardLevel(signal []float64, w *wavelet.Wavelet, b Boundary, level int) (Result, error) {
	const op = "modwt.Forward"
	if err := validateSignal(signal, op); err != nil {
		return Result{}, err
	}
	if err := validateWavelet(w, op); err != nil {
		return Result{}, err
	}
	if !validBoundary(b) {
		return Result{}, unsupportedBoundaryErr(op, b)
	}

	n := len(signal)
	lowFilt, err := resolveFilter(w.ID, w.DecLow, lowPassKind, level, n)
	if err != nil {
		return Result{}, err
	}
	highFilt, err := resolveFilter(w.ID, w.DecHigh, highPassKind, level, n)
	if err != nil {
		return Result{}, err
	}

	approx := make([]float64, n)
	detail := make([]float64, n)
	convolve(signal, lowFilt, b, approx)
	convolve(signal, highFilt, b, detail)

	if err := checkFinite(approx, op, "approx"); err != nil {
		return Result{}, err
	}
	if err := checkFinite(detail, op, "detail"); err != nil {
		return Result{}, err
	}
	return Result{Approx: approx, Detail: detail}, nil
}

// convolve evaluates out[t] = sum_l filt[l] * signal[(t-l)] under boundary
// b, for l in [0, len(filt)). This is the kernel's single hot loop; the
// sign of the tap index (t-l, never t+l) is contractual per spec.md §4.1.
func convolve(signal, filt []float64, b Boundary, out []float64) {
	n := len(signal)
	l := len(filt)
	for t := 0; t < n; t++ {
		sum := 0.0
		for tap := 0; tap < l; tap++ {
			c := filt[tap]
			if c == 0 {
				continue
			}
			v, ok := tapValue(signal, t-tap, b)
			if !ok {
				continue
			}
			sum += c * v
		}
		out[t] = sum
	}
}

// Inverse reconstructs a length-N signal from a single level's
// approximation and detail sequences using the level's reconstruction
// filters.
func Inverse(approx, detail []float64, w *wavelet.Wavelet, b Boundary) ([]float64, error) {
	return inverseLevel(approx, detail, w, b, 1)
}

func inverseLevel(approx, detail []float64, w *wavelet.Wavelet, b Boundary, level int) ([]float64, error) {
	const op = "modwt.Inverse"
	if err := validateSignal(approx, op); err != nil {
		return nil, err
	}
	if err := validateSignal(detail, op); err != nil {
		return nil, err
	}
	if len(approx) != len(detail) {
		return nil, vwerr.New(vwerr.TransformError, op, "approximation/detail length mismatch").
			With("approxLen", strconv.Itoa(len(approx))).With("detailLen", strconv.Itoa(len(detail)))
	}
	if err := validateWavelet(w, op); err != nil {
		return nil, err
	}
	if !validBoundary(b) {
		return nil, unsupportedBoundaryErr(op, b)
	}
	if w.Family == wavelet.Biorthogonal && (b == Symmetric || b == Reflect) {
		// Biorthogonal reconstruction under mirrored boundaries is one of
		// the combinations spec.md's Open Questions leaves unresolved;
		// surface it uniformly instead of returning a silently-wrong
		// result.
		return nil, unsupportedBoundaryErr(op, b)
	}

	n := len(approx)
	lowFilt, err := resolveFilter(w.ID, w.RecLow, lowPassKind, level, n)
	if err != nil {
		return nil, err
	}
	highFilt, err := resolveFilter(w.ID, w.RecHigh, highPassKind, level, n)
	if err != nil {
		return nil, err
	}

	// The MODWT inverse is the transpose convolution: each output sample
	// sums contributions from the filters applied at every input position
	// whose forward tap would have touched it, i.e. t' = t + tap.
	out := make([]float64, n)
	accumulateTranspose(approx, lowFilt, b, out)
	accumulateTranspose(detail, highFilt, b, out)

	if err := checkFinite(out, op, "signal"); err != nil {
		return nil, err
	}
	return out, nil
}

func accumulateTranspose(coeffs, filt []float64, b Boundary, out []float64) {
	n := len(coeffs)
	l := len(filt)
	for t := 0; t < n; t++ {
		c := coeffs[t]
		if c == 0 {
			continue
		}
		for tap := 0; tap < l; tap++ {
			fc := filt[tap]
			if fc == 0 {
				continue
			}
			// Forward used signal[(t-l) mod/clamped]; the adjoint scatters
			// coeffs[t] back to out[t - tap] under the same boundary rule.
			scatter(out, t-tap, fc*c, b, n)
		}
	}
}

// scatter adds value into out at the boundary-resolved index for k,
// mirroring tapValue's read-side logic on the write side. Periodic and
// mirrored boundaries always have a valid target; Zero boundary drops
// contributions that would land outside [0, n).
func scatter(out []float64, k int, value float64, b Boundary, n int) {
	switch b {
	case Periodic:
		idx := ((k % n) + n) % n
		out[idx] += value
	case Zero:
		if k >= 0 && k < n {
			out[k] += value
		}
	case Symmetric:
		out[symmetricIndex(k, n)] += value
	case Reflect:
		out[reflectIndex(k, n)] += value
	}
}

// ForwardBatch runs Forward over B signals of equal length, returning one
// Result per signal in input order.
func ForwardBatch(signals [][]float64, w *wavelet.Wavelet, b Boundary) ([]Result, error) {
	out := make([]Result, len(signals))
	for i, s := range signals {
		r, err := Forward(s, w, b)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// InverseBatch runs Inverse over B (approx, detail) pairs.
func InverseBatch(results []Result, w *wavelet.Wavelet, b Boundary) ([][]float64, error) {
	out := make([][]float64, len(results))
	for i, r := range results {
		s, err := Inverse(r.Approx, r.Detail, w, b)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func validateSignal(signal []float64, op string) error {
	if signal == nil {
		return vwerr.New(vwerr.InvalidSignal, op, "nil signal").WithSuggestion("pass a non-nil, non-empty slice")
	}
	if len(signal) == 0 {
		return vwerr.New(vwerr.InvalidSignal, op, "empty signal").WithSuggestion("pass a non-empty slice")
	}
	for i, v := range signal {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return vwerr.New(vwerr.InvalidSignal, op, "non-finite sample").
				With("index", strconv.Itoa(i)).
				WithSuggestion("remove or impute NaN/Inf values before transforming")
		}
	}
	return nil
}

func validateWavelet(w *wavelet.Wavelet, op string) error {
	if w == nil {
		return vwerr.New(vwerr.InvalidWavelet, op, "nil wavelet")
	}
	return w.Validate()
}

func checkFinite(values []float64, op, field string) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return vwerr.New(vwerr.TransformError, op, "non-finite result from validated input").
				With("field", field).
				WithSuggestion("this indicates an internal bug; please report it")
		}
	}
	return nil
}

