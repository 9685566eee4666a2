package batch

import "sync"

// stagingPool holds scratch column buffers sized to N, acquired by each
// worker goroutine processing a lane group and released when that
// worker's group finishes (spec.md §4.3: "each worker holds scratch
// buffers sized to Bpad*N"; this package's worker grain is per-lane, so
// each worker's scratch is sized to N rather than Bpad*N).
var stagingPool = &sync.Pool{
	New: func() any { return []float64(nil) },
}

// acquireColumnStaging returns a reusable []float64 of exactly length n.
func acquireColumnStaging(n int) []float64 {
	buf, _ := stagingPool.Get().([]float64)
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}

// releaseColumnStaging returns buf to the pool for reuse by the next
// worker.
func releaseColumnStaging(buf []float64) {
	stagingPool.Put(buf)
}

// CleanupWorker releases every scratch buffer this process has pooled so
// far, the cleanup hook spec.md §4.3 requires when a worker exits a
// hosted worker pool. sync.Pool offers no per-goroutine handle, so this
// replaces the shared pool outright; buffers already checked out to
// in-flight workers are returned to (and age out of) the old pool
// normally and are simply not reused afterward.
func CleanupWorker() {
	stagingPool = &sync.Pool{New: func() any { return []float64(nil) }}
}
