package batch

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// fanOutLanes splits [0, lanes) into contiguous chunks and runs work
// over each chunk concurrently via errgroup, mirroring the worker-pool
// fan-out modwt.DecomposeParallel uses for its level tasks.
func fanOutLanes(lanes int, work func(lo, hi int) error) error {
	workers := runtime.GOMAXPROCS(0)
	if workers > lanes {
		workers = lanes
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (lanes + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < lanes; lo += chunk {
		hi := lo + chunk
		if hi > lanes {
			hi = lanes
		}
		lo, hi := lo, hi
		g.Go(func() error {
			return work(lo, hi)
		})
	}
	return g.Wait()
}
