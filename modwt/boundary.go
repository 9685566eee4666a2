package modwt

import "github.com/Prophetizo/vectorwave/vwerr"

// Boundary selects how the single-level kernel handles samples outside
// [0, N) when evaluating signal[(t-l) mod N]-style taps (spec.md §6).
type Boundary int

const (
	// Periodic wraps indices circularly: ((k mod N) + N) mod N.
	Periodic Boundary = iota
	// Zero treats out-of-range taps as the value 0.
	Zero
	// Symmetric mirrors indices about sample 0 on the low side and about
	// the midpoint between samples N-1 and N on the high side, per the
	// literal formula in spec.md §6.
	Symmetric
	// Reflect mirrors indices about the edge sample on both sides,
	// avoiding the boundary-sample duplication Symmetric exhibits at its
	// upper edge (see DESIGN.md's Open Question resolution).
	Reflect
)

func (b Boundary) String() string {
	switch b {
	case Periodic:
		return "periodic"
	case Zero:
		return "zero"
	case Symmetric:
		return "symmetric"
	case Reflect:
		return "reflect"
	default:
		return "unknown"
	}
}

// TapValue exports tapValue for callers outside this package (e.g. the
// batch SoA kernel) that must replicate the scalar kernel's boundary
// semantics exactly, tap for tap.
func TapValue(signal []float64, k int, b Boundary) (value float64, ok bool) {
	return tapValue(signal, k, b)
}

// tapValue returns the signal value to use for a convolution tap at
// virtual index k = t - l, and ok=false when the boundary mode defines
// that tap as "not present" (Zero boundary contributes nothing rather
// than reading signal[0]).
func tapValue(signal []float64, k int, b Boundary) (value float64, ok bool) {
	n := len(signal)
	switch b {
	case Periodic:
		idx := ((k % n) + n) % n
		return signal[idx], true
	case Zero:
		if k >= 0 && k < n {
			return signal[k], true
		}
		return 0, false
	case Symmetric:
		return signal[symmetricIndex(k, n)], true
	case Reflect:
		return signal[reflectIndex(k, n)], true
	default:
		return 0, false
	}
}

func symmetricIndex(k, n int) int {
	if n <= 1 {
		return 0
	}
	for {
		if k < 0 {
			k = -k
			continue
		}
		if k < n {
			return k
		}
		k = 2*n - 1 - k
	}
}

func reflectIndex(k, n int) int {
	if n <= 1 {
		return 0
	}
	for {
		if k < 0 {
			k = -k
			continue
		}
		if k < n {
			return k
		}
		k = 2*(n-1) - k
	}
}

// validBoundary reports whether b is one of the modes this package
// implements.
func validBoundary(b Boundary) bool {
	switch b {
	case Periodic, Zero, Symmetric, Reflect:
		return true
	default:
		return false
	}
}

func unsupportedBoundaryErr(op string, b Boundary) error {
	return vwerr.New(vwerr.InvalidConfiguration, op, "unsupported boundary mode").
		With("boundary", b.String()).
		WithSuggestion("use periodic, zero, symmetric, or reflect")
}
