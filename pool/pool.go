// Package pool implements the aligned array pool spec.md §4.7 describes:
// a size-bucketed cache of 64-byte-aligned float64 buffers, zeroed on
// acquisition, with a bounded number of buffers retained per bucket so the
// pool itself never grows unbounded. Grounded on the bufferPool pattern in
// github.com/xtaci/kcp-go (vendored under the teacher's dependency tree),
// generalized from byte slices to aligned float64 buffers and from a single
// sync.Pool to one pool per size bucket.
package pool

import (
	"sync"

	"github.com/Prophetizo/vectorwave/vwerr"
)

// CacheLineSize is the alignment guarantee every acquired buffer meets —
// one cache line, and the widest SIMD lane width this library targets.
const CacheLineSize = 64

// minBucket and maxBucket bound the bucketed sizes spec.md §4.7 names:
// powers of two from 64 to 16384. Requests outside this range allocate
// directly and are never retained.
const (
	minBucket = 64
	maxBucket = 16384
	// maxPerBucket caps how many buffers a single bucket retains; beyond
	// this, Release simply drops the buffer for the GC to reclaim.
	maxPerBucket = 16
)

// Buffer is an acquired, 64-byte-aligned float64 slice. Data is the usable
// view; raw is the aligned, bucket-sized slice Release returns to its
// bucket (Data is raw[:n], so both start at the same aligned address).
type Buffer struct {
	Data []float64
	raw  []float64
	size int
}

// Pool is a size-bucketed aligned array pool. The zero value is ready to
// use. All operations are safe for concurrent use.
type Pool struct {
	buckets sync.Map // int (bucket size) -> *bucket
}

type bucket struct {
	mu   sync.Mutex
	free [][]float64 // raw aligned, bucket-sized slices
}

// New returns a ready-to-use Pool.
func New() *Pool {
	return &Pool{}
}

// defaultPool is a process-wide pool for callers that don't need isolation
// between independent call sites — mirroring the teacher's package-level
// defaultBufferPool convention.
var defaultPool = New()

// Acquire returns a zeroed, 64-byte-aligned buffer of exactly n float64s
// from the default pool.
func Acquire(n int) (*Buffer, error) { return defaultPool.Acquire(n) }

// Release returns buf to the default pool.
func Release(buf *Buffer) { defaultPool.Release(buf) }

// Acquire returns a zeroed buffer of exactly n float64s, 64-byte aligned.
// Sizes are rounded up to the next bucket (power of two in [64, 16384]);
// requests larger than the largest bucket allocate directly and are never
// pooled.
func (p *Pool) Acquire(n int) (*Buffer, error) {
	const op = "pool.Acquire"
	if n <= 0 {
		return nil, vwerr.New(vwerr.InvalidArgument, op, "n must be positive")
	}

	bucketSize := bucketFor(n)
	if bucketSize > maxBucket {
		raw := makeAligned(n)
		return &Buffer{Data: raw[:n], raw: raw, size: n}, nil
	}

	b := p.bucketFor(bucketSize)
	b.mu.Lock()
	var raw []float64
	if len(b.free) > 0 {
		last := len(b.free) - 1
		raw = b.free[last]
		b.free = b.free[:last]
	}
	b.mu.Unlock()

	if raw == nil {
		raw = makeAligned(bucketSize)
	}
	for i := range raw {
		raw[i] = 0
	}
	return &Buffer{Data: raw[:n], raw: raw, size: bucketSize}, nil
}

// Release returns buf to its bucket, if it came from one. Buffers whose
// size exceeds the largest bucket, or whose bucket is already at
// maxPerBucket, are simply dropped.
func (p *Pool) Release(buf *Buffer) {
	if buf == nil || buf.size > maxBucket {
		return
	}
	b := p.bucketFor(buf.size)
	b.mu.Lock()
	if len(b.free) < maxPerBucket {
		b.free = append(b.free, buf.raw)
	}
	b.mu.Unlock()
}

func (p *Pool) bucketFor(size int) *bucket {
	if v, ok := p.buckets.Load(size); ok {
		return v.(*bucket)
	}
	b := &bucket{free: make([][]float64, 0, maxPerBucket)}
	actual, _ := p.buckets.LoadOrStore(size, b)
	return actual.(*bucket)
}

// bucketFor rounds n up to the next power of two within [minBucket, ...].
func bucketFor(n int) int {
	size := minBucket
	for size < n {
		size *= 2
	}
	return size
}

// makeAligned allocates a backing array large enough that some offset
// within the first CacheLineSize/8 float64s starts on a 64-byte boundary,
// then returns the length-n sub-slice starting at that aligned offset.
func makeAligned(n int) []float64 {
	const wordsPerLine = CacheLineSize / 8
	raw := make([]float64, n+wordsPerLine)
	addr := alignOffset(raw)
	return raw[addr : addr+n : addr+n]
}

// alignOffset returns the index into raw at which the element address is
// a multiple of CacheLineSize.
func alignOffset(raw []float64) int {
	if len(raw) == 0 {
		return 0
	}
	base := elemAddr(raw)
	rem := base % CacheLineSize
	if rem == 0 {
		return 0
	}
	return int((CacheLineSize - rem) / 8)
}
