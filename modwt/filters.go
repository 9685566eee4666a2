package modwt

import (
	"math"
	"strconv"
	"sync"

	"github.com/Prophetizo/vectorwave/vwerr"
)

// LevelFilter exports levelFilter's a-trous construction for callers
// outside this package (e.g. the batch SoA kernel) that need the
// identical level-j filter the scalar kernel uses, so a specialized
// kernel can be checked bitwise against this one.
func LevelFilter(h []float64, level int) []float64 {
	return levelFilter(h, level)
}

// levelFilter derives the MODWT filter for decomposition level j from a
// catalog filter h: scale coefficients by 2^(-j/2) and upsample by
// inserting 2^(j-1)-1 zeros between taps (the "a-trous" construction,
// spec.md §3). Effective length is (L-1)*2^(j-1) + 1.
func levelFilter(h []float64, level int) []float64 {
	if level <= 1 {
		out := make([]float64, len(h))
		scale := 1.0 / math.Sqrt2 // 2^(-1/2)
		for i, c := range h {
			out[i] = c * scale
		}
		return out
	}
	gap := int(1) << uint(level-1) // 2^(level-1)
	l := len(h)
	effLen := (l-1)*gap + 1
	out := make([]float64, effLen)
	scale := math.Pow(2, -float64(level)/2)
	for i, c := range h {
		out[i*gap] = c * scale
	}
	return out
}

// effectiveLevelLength returns L_j = (L-1)*2^(j-1) + 1 without allocating
// the filter itself, used by MaxLevel's overflow-checked search.
func effectiveLevelLength(filterLen, level int) (length int, overflowed bool) {
	if level <= 1 {
		return filterLen, false
	}
	gap := uint(level - 1)
	if gap >= 63 {
		return 0, true
	}
	shift := int64(1) << gap
	l64 := int64(filterLen-1) * shift
	if l64 < 0 || l64 > math.MaxInt32 {
		return 0, true
	}
	return int(l64) + 1, false
}

// filterKind distinguishes the low- and high-pass truncation cache
// partitions named in spec.md §3/§4.2.
type filterKind int

const (
	lowPassKind filterKind = iota
	highPassKind
)

type truncationKey struct {
	waveletID string
	kind      filterKind
	level     int
	length    int
}

// truncationCache memoizes filters that were shortened because L_j
// exceeded the signal length N. Backed by sync.Map for lock-free,
// idempotent inserts: concurrent misses may recompute the same entry, but
// only one survives in the map (spec.md §4.2/§5).
type truncationCache struct {
	m sync.Map // truncationKey -> []float64
}

var globalTruncationCache truncationCache

func (c *truncationCache) getOrCompute(key truncationKey, compute func() []float64) []float64 {
	if v, ok := c.m.Load(key); ok {
		return v.([]float64)
	}
	computed := compute()
	actual, _ := c.m.LoadOrStore(key, computed)
	return actual.([]float64)
}

// resolveFilter returns the filter to use for one level/kind, truncating
// to target the signal length N and caching the truncated variant when
// L_j > N.
func resolveFilter(waveletID string, base []float64, kind filterKind, level, n int) ([]float64, error) {
	if n <= 0 {
		return nil, vwerr.New(vwerr.InvalidArgument, "modwt.resolveFilter", "truncation target must be positive").
			With("length", strconv.Itoa(n))
	}
	full := levelFilter(base, level)
	if len(full) <= n {
		return full, nil
	}
	key := truncationKey{waveletID: waveletID, kind: kind, level: level, length: n}
	return globalTruncationCache.getOrCompute(key, func() []float64 {
		return append([]float64(nil), full[:n]...)
	}), nil
}

