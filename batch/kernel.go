package batch

import (
	"github.com/Prophetizo/vectorwave/modwt"
	"github.com/Prophetizo/vectorwave/vwerr"
	"github.com/Prophetizo/vectorwave/wavelet"
)

// genericSoAKernel is the generic (portable) batch kernel spec.md §4.3
// defines: for every output index t and filter tap l, gather lane group
// soa_in[((t-l) mod N)*Bpad .. +lane], multiply by broadcast(h-bar[l]),
// accumulate into the approximation layout; same for detail with g-bar.
// Uses modwt.LevelFilter/modwt.TapValue so its boundary and filter
// semantics stay byte-for-byte identical to the scalar single-signal
// kernel — the bitwise-equivalence contract any specialized kernel must
// also satisfy.
//
// Each lane is processed through its own staging column (see staging.go)
// so per-lane work reduces to the same convolution loop package modwt
// runs for a single signal, gathered and scattered through the SoA
// layout instead of a plain slice.
func genericSoAKernel(layout *Layout, w *wavelet.Wavelet, b modwt.Boundary) (approx, detail *Layout, err error) {
	const op = "batch.genericSoAKernel"
	lowFilt := modwt.LevelFilter(w.DecLow, 1)
	highFilt := modwt.LevelFilter(w.DecHigh, 1)
	// modwt.Forward truncates a filter longer than the signal to its first
	// N taps; do the same so short signals match the scalar kernel.
	if len(lowFilt) > layout.N {
		lowFilt = lowFilt[:layout.N]
	}
	if len(highFilt) > layout.N {
		highFilt = highFilt[:layout.N]
	}

	approxData := make([]float64, len(layout.Data))
	detailData := make([]float64, len(layout.Data))

	worker := func(loLane, hiLane int) error {
		staging := acquireColumnStaging(layout.N)
		defer releaseColumnStaging(staging)

		for lane := loLane; lane < hiLane; lane++ {
			gatherColumn(layout, lane, staging)
			for t := 0; t < layout.N; t++ {
				var accApprox, accDetail float64
				for l, hv := range lowFilt {
					if val, ok := modwt.TapValue(staging, t-l, b); ok {
						accApprox += hv * val
					}
				}
				for l, gv := range highFilt {
					if val, ok := modwt.TapValue(staging, t-l, b); ok {
						accDetail += gv * val
					}
				}
				approxData[t*layout.Bpad+lane] = accApprox
				detailData[t*layout.Bpad+lane] = accDetail
			}
		}
		return nil
	}

	if err := fanOutLanes(layout.Bpad, worker); err != nil {
		return nil, nil, vwerr.Wrap(err, vwerr.TransformError, op, "batch kernel failed")
	}

	approx = &Layout{Data: approxData, B: layout.B, Bpad: layout.Bpad, N: layout.N}
	detail = &Layout{Data: detailData, B: layout.B, Bpad: layout.Bpad, N: layout.N}
	return approx, detail, nil
}

// gatherColumn copies lane's strided column out of the SoA layout into
// dst (length N).
func gatherColumn(layout *Layout, lane int, dst []float64) {
	for t := 0; t < layout.N; t++ {
		dst[t] = layout.Data[t*layout.Bpad+lane]
	}
}
