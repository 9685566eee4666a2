// Package batch implements the Structure-of-Arrays batch MODWT engine
// spec.md §4.3 describes: B signals of length N are transformed together,
// one SIMD-width lane group per step, with a generic (portable) kernel
// that any specialized kernel must match bitwise before it is trusted.
//
// Grounded on the teacher's worker-pool fan-out style (errgroup-based,
// as in modwt.DecomposeParallel) generalized from per-level concurrency
// to per-lane-group concurrency, and on golang.org/x/sys/cpu for the
// lane-width detection spec.md's fallback policy depends on.
package batch

import (
	"golang.org/x/sys/cpu"

	"github.com/Prophetizo/vectorwave/modwt"
	"github.com/Prophetizo/vectorwave/vwerr"
	"github.com/Prophetizo/vectorwave/wavelet"
)

// LaneWidth reports this platform's SIMD lane width in float64 elements,
// as x/sys/cpu's feature flags best approximate it. Go has no portable
// SIMD intrinsics, so this selects a batching granularity for the
// generic (scalar) kernel rather than driving actual vector instructions;
// the bitwise-equivalence contract below is what makes future
// specialized (e.g. assembly or cgo-vectorized) kernels safe to swap in.
func LaneWidth() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 8
	case cpu.X86.HasAVX2:
		return 4
	case cpu.X86.HasSSE2:
		return 2
	case cpu.ARM64.HasASIMD:
		return 2
	default:
		return 1
	}
}

// TBatch is the fallback threshold: fewer than this many signals run
// sequentially rather than through the SoA path (spec.md §4.3).
const TBatch = 4

// Layout holds a Structure-of-Arrays conversion of B signals of length N:
// soa[t*Bpad+b] is signal b's sample t. Lanes b in [B, Bpad) are padding
// (masked, always zero).
type Layout struct {
	Data []float64
	B    int
	Bpad int
	N    int
}

// ToSoA converts B AoS signals (each length N) into an SoA Layout padded
// to a multiple of laneWidth.
func ToSoA(signals [][]float64, laneWidth int) (*Layout, error) {
	const op = "batch.ToSoA"
	if len(signals) == 0 {
		return nil, vwerr.New(vwerr.InvalidArgument, op, "no signals provided")
	}
	if laneWidth < 1 {
		laneWidth = 1
	}
	n := len(signals[0])
	b := len(signals)
	bpad := ceilToMultiple(b, laneWidth)

	data := make([]float64, n*bpad)
	for lane, sig := range signals {
		if len(sig) != n {
			return nil, vwerr.New(vwerr.InvalidArgument, op, "all signals must share length N")
		}
		for t, v := range sig {
			data[t*bpad+lane] = v
		}
	}
	return &Layout{Data: data, B: b, Bpad: bpad, N: n}, nil
}

// ToAoS extracts the B real (non-padding) signals back out of an SoA
// layout.
func (l *Layout) ToAoS() [][]float64 {
	out := make([][]float64, l.B)
	for lane := 0; lane < l.B; lane++ {
		sig := make([]float64, l.N)
		for t := 0; t < l.N; t++ {
			sig[t] = l.Data[t*l.Bpad+lane]
		}
		out[lane] = sig
	}
	return out
}

func ceilToMultiple(n, m int) int {
	if m <= 1 {
		return n
	}
	rem := n % m
	if rem == 0 {
		return n
	}
	return n + (m - rem)
}

// Result is the SoA-layout batch MODWT output: approximation and detail,
// both in the same SoA layout as the input.
type Result struct {
	Approx *Layout
	Detail *Layout
}

// ForwardSoA runs the batch single-level MODWT: below TBatch signals, or
// when the platform's lane width is 1, it falls back to the sequential
// per-signal kernel (spec.md §4.3's fallback policy); otherwise it runs
// the generic SoA kernel, which fans lanes out across workers and
// convolves each lane's gathered column in turn.
func ForwardSoA(signals [][]float64, w *wavelet.Wavelet, b modwt.Boundary) (*Result, error) {
	const op = "batch.ForwardSoA"
	if len(signals) == 0 {
		return nil, vwerr.New(vwerr.InvalidArgument, op, "no signals provided")
	}

	laneWidth := LaneWidth()
	if len(signals) < TBatch || laneWidth == 1 {
		return forwardSequentialSoA(signals, w, b)
	}

	layout, err := ToSoA(signals, laneWidth)
	if err != nil {
		return nil, err
	}
	approx, detail, err := genericSoAKernel(layout, w, b)
	if err != nil {
		return nil, err
	}
	return &Result{Approx: approx, Detail: detail}, nil
}

// forwardSequentialSoA runs modwt.Forward per signal, then repacks the
// results into SoA layout so callers see a uniform Result shape
// regardless of which path executed.
func forwardSequentialSoA(signals [][]float64, w *wavelet.Wavelet, b modwt.Boundary) (*Result, error) {
	approxAoS := make([][]float64, len(signals))
	detailAoS := make([][]float64, len(signals))
	for i, sig := range signals {
		res, err := modwt.Forward(sig, w, b)
		if err != nil {
			return nil, err
		}
		approxAoS[i] = res.Approx
		detailAoS[i] = res.Detail
	}
	approxLayout, err := ToSoA(approxAoS, 1)
	if err != nil {
		return nil, err
	}
	detailLayout, err := ToSoA(detailAoS, 1)
	if err != nil {
		return nil, err
	}
	return &Result{Approx: approxLayout, Detail: detailLayout}, nil
}
