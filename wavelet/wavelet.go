// Package wavelet supplies the filter-coefficient catalog consumed by the
// MODWT kernels: a tagged variant of wavelet families (orthogonal,
// biorthogonal, continuous) plus a small, explicitly registered set of
// built-in tables. The full public wavelet catalog is out of scope — this
// package only defines the narrow interface the rest of VectorWave needs.
package wavelet

import (
	"math"

	"github.com/Prophetizo/vectorwave/vwerr"
)

// Family classifies a Wavelet's reconstruction properties.
type Family int

const (
	// Orthogonal wavelets satisfy g[n] = (-1)^n h[L-1-n]; decomposition and
	// reconstruction filters are identical.
	Orthogonal Family = iota
	// Biorthogonal wavelets carry independent decomposition and
	// reconstruction filter pairs; reconstruction has a larger accepted
	// error tolerance (1e-6 rather than the orthogonal 1e-10).
	Biorthogonal
	// Continuous wavelets are catalog entries with no discrete filter
	// pair; VectorWave's MODWT kernels never operate on them, but the
	// catalog still classifies them so callers get InvalidWavelet rather
	// than a panic.
	Continuous
)

func (f Family) String() string {
	switch f {
	case Orthogonal:
		return "orthogonal"
	case Biorthogonal:
		return "biorthogonal"
	case Continuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// Wavelet is an immutable filter descriptor. Filter slices are shared by
// reference and must never be mutated by callers; every consumer that needs
// a scaled/upsampled variant derives a new slice instead.
type Wavelet struct {
	ID     string
	Family Family

	// Dec low/high-pass decomposition filters (h, g).
	DecLow  []float64
	DecHigh []float64
	// Rec low/high-pass reconstruction filters (h-tilde, g-tilde). For
	// Orthogonal wavelets these equal DecLow/DecHigh.
	RecLow  []float64
	RecHigh []float64
}

// Length returns the decomposition filter length L, the basis for every
// MODWT per-level length computation in modwt.MaxLevel.
func (w *Wavelet) Length() int {
	return len(w.DecLow)
}

// Validate checks the structural invariants spec.md §4.1 requires before a
// wavelet may be used: finite coefficients, matching filter lengths, and
// (for orthogonal wavelets) unit-norm low-pass energy Σh² = 1.
func (w *Wavelet) Validate() error {
	op := "wavelet.Validate"
	if w == nil {
		return vwerr.New(vwerr.InvalidWavelet, op, "nil wavelet").
			WithSuggestion("supply a registered wavelet identifier")
	}
	if len(w.DecLow) == 0 || len(w.DecHigh) == 0 {
		return vwerr.New(vwerr.InvalidWavelet, op, "empty decomposition filter").With("wavelet", w.ID)
	}
	if len(w.DecLow) != len(w.DecHigh) {
		return vwerr.New(vwerr.InvalidWavelet, op, "decomposition filter length mismatch").With("wavelet", w.ID)
	}
	for _, filt := range [][]float64{w.DecLow, w.DecHigh, w.RecLow, w.RecHigh} {
		for _, c := range filt {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return vwerr.New(vwerr.InvalidWavelet, op, "non-finite filter coefficient").With("wavelet", w.ID)
			}
		}
	}
	if w.Family == Orthogonal {
		sum := 0.0
		for _, c := range w.DecLow {
			sum += c * c
		}
		if math.Abs(sum-1.0) > 1e-9 {
			return vwerr.New(vwerr.InvalidWavelet, op, "orthogonal filter violates sum(h^2)=1").
				With("wavelet", w.ID).
				WithSuggestion("recheck filter normalization; orthogonal filters must have unit energy")
		}
	}
	return nil
}
