package modwt

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Prophetizo/vectorwave/vwerr"
	"github.com/Prophetizo/vectorwave/wavelet"
)

// parallelMinN and parallelMinJ gate when DecomposeParallel actually
// fans out work versus falling back to the sequential Decompose path
// (spec.md §4.4: "near-linear [speedup] ... for N >= 4096 and J >= 3; for
// smaller inputs, fall back to sequential").
const (
	parallelMinN = 4096
	parallelMinJ = 3
)

// DecomposeParallel runs the same pyramid as Decompose, but within each
// level computes the approximation and detail convolutions concurrently
// since they write disjoint outputs and depend only on the previous
// level's approximation. All output arrays are pre-allocated before any
// task dispatches (spec.md §4.4: "no allocation inside tasks"). On the
// parallel path ctx is checked between levels; a cancelled context
// discards partial output and returns a Cancelled error. Below the
// parallelMinN/parallelMinJ thresholds the call is delegated to Decompose,
// which does not observe ctx.
func DecomposeParallel(ctx context.Context, signal []float64, w *wavelet.Wavelet, b Boundary, j int) (*MultiLevelResult, error) {
	const op = "modwt.DecomposeParallel"
	if len(signal) < parallelMinN || j < parallelMinJ {
		return Decompose(signal, w, b, j)
	}
	if err := validateSignal(signal, op); err != nil {
		return nil, err
	}
	if err := validateWavelet(w, op); err != nil {
		return nil, err
	}
	if !validBoundary(b) {
		return nil, unsupportedBoundaryErr(op, b)
	}
	if j < 1 || j > MaxDepth {
		return nil, vwerr.New(vwerr.InvalidArgument, op, "level out of range")
	}

	n := len(signal)
	result := &MultiLevelResult{Details: make([][]float64, j), Wavelet: w, Boundary: b}

	// Pre-allocate every level's output before any task dispatches.
	approxBufs := make([][]float64, j+1)
	approxBufs[0] = signal
	for level := 1; level <= j; level++ {
		approxBufs[level] = make([]float64, n)
		result.Details[level-1] = make([]float64, n)
	}

	for level := 1; level <= j; level++ {
		select {
		case <-ctx.Done():
			return nil, vwerr.New(vwerr.Cancelled, op, "cancelled before level completed").
				With("level", ctx.Err().Error())
		default:
		}

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

		prevApprox := approxBufs[level-1]
		nextApprox := approxBufs[level]
		detail := result.Details[level-1]

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			convolve(prevApprox, lowFilt, b, nextApprox)
			return checkFinite(nextApprox, op, "approx")
		})
		g.Go(func() error {
			convolve(prevApprox, highFilt, b, detail)
			return checkFinite(detail, op, "detail")
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if gctx.Err() != nil {
			return nil, vwerr.New(vwerr.Cancelled, op, "cancelled during level").With("level", gctx.Err().Error())
		}
	}

	result.Approx = approxBufs[j]
	return result, nil
}
