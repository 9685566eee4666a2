// Package ring implements the lock-free single-producer/single-consumer
// ring buffer spec.md §4.5 describes: a power-of-two-capacity circular
// store of float64 samples with two atomic positions (write, read) under
// acquire/release ordering, a zero-copy sliding window for the consumer,
// and thread-local staging for windows that span the wrap point.
//
// Grounded on the cache-aligned atomic-cursor pattern in
// other_examples' disruptor ring_buffer.go (rishavpaul/order-matching-engine),
// adapted from the Disruptor's multi-producer CAS claim loop down to the
// single-producer/single-consumer contract this spec requires, and from
// slot-based sequencing to a plain circular sample buffer.
package ring

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Prophetizo/vectorwave/vwerr"
)

// Buffer is a lock-free SPSC ring buffer of float64 samples. The zero
// value is not usable; construct with New.
type Buffer struct {
	data []float64
	mask uint64

	// write and read are the monotonically increasing producer/consumer
	// positions. write is only ever written by the producer and read
	// (via acquire) by the consumer; read is the reverse. Padding keeps
	// the two cache lines from false-sharing under concurrent access.
	writePos uint64
	_        [56]byte
	readPos  uint64
	_        [56]byte

	staging sync.Map // goroutine-local staging buffers, keyed by owner token
}

// stagingKey is a per-goroutine token: callers that want a private staging
// buffer (the normal case, one per consumer) pass a stable pointer they
// own as the key (streaming.Transform passes itself).
type stagingKey = any

// New creates a ring buffer whose capacity is capacity rounded up to the
// next power of two.
func New(capacity int) (*Buffer, error) {
	const op = "ring.New"
	if capacity <= 0 {
		return nil, vwerr.New(vwerr.InvalidArgument, op, "capacity must be positive")
	}
	cap64 := nextPowerOfTwo(uint64(capacity))
	return &Buffer{
		data: make([]float64, cap64),
		mask: cap64 - 1,
	}, nil
}

// Capacity returns the buffer's power-of-two capacity.
func (b *Buffer) Capacity() int { return len(b.data) }

// Occupied returns write - read: the number of samples currently buffered.
func (b *Buffer) Occupied() int {
	w := atomic.LoadUint64(&b.writePos)
	r := atomic.LoadUint64(&b.readPos)
	return int(w - r)
}

// Write copies min(len(src), capacity-occupied) samples into the buffer
// and returns the count written. Never blocks; a short write means the
// caller must retry after the consumer advances. Producer-side only.
func (b *Buffer) Write(src []float64) int {
	occupied := b.Occupied()
	capacity := len(b.data)
	room := capacity - occupied
	n := len(src)
	if n > room {
		n = room
	}
	if n <= 0 {
		return 0
	}

	w := atomic.LoadUint64(&b.writePos)
	start := w & b.mask
	first := capacity - int(start)
	if first > n {
		first = n
	}
	copy(b.data[start:start+uint64(first)], src[:first])
	if first < n {
		copy(b.data[0:n-first], src[first:n])
	}

	atomic.StoreUint64(&b.writePos, w+uint64(n)) // release
	return n
}

// AdvanceWindow moves the read position forward by hop samples.
// Consumer-side only. Requires occupied >= hop.
func (b *Buffer) AdvanceWindow(hop int) error {
	const op = "ring.AdvanceWindow"
	if hop < 0 {
		return vwerr.New(vwerr.InvalidArgument, op, "hop must be non-negative")
	}
	if b.Occupied() < hop {
		return vwerr.New(vwerr.StateError, op, "insufficient occupied samples for hop").
			With("occupied", strconv.Itoa(b.Occupied())).With("hop", strconv.Itoa(hop))
	}
	r := atomic.LoadUint64(&b.readPos)
	atomic.StoreUint64(&b.readPos, r+uint64(hop)) // release, observed by producer via Occupied
	return nil
}

// WindowDirect returns a view of length samples starting at the current
// read position: a direct slice when the window doesn't wrap, or a copy
// into the caller's thread-local staging buffer (keyed by owner) when it
// does. owner should be a stable per-consumer-goroutine token (e.g. the
// consuming *streaming.Transform) so the staging buffer is reused across
// calls.
func (b *Buffer) WindowDirect(owner stagingKey, length int) ([]float64, error) {
	const op = "ring.WindowDirect"
	if length < 0 {
		return nil, vwerr.New(vwerr.InvalidArgument, op, "length must be non-negative")
	}
	if b.Occupied() < length {
		return nil, vwerr.New(vwerr.StateError, op, "insufficient occupied samples for window").
			With("occupied", strconv.Itoa(b.Occupied())).With("length", strconv.Itoa(length))
	}

	r := atomic.LoadUint64(&b.readPos) // acquire
	capacity := uint64(len(b.data))
	start := r & b.mask
	end := start + uint64(length)
	if end <= capacity {
		return b.data[start:end], nil
	}

	staging := b.stagingFor(owner, length)
	first := capacity - start
	copy(staging[:first], b.data[start:capacity])
	copy(staging[first:], b.data[0:uint64(length)-first])
	return staging, nil
}

func (b *Buffer) stagingFor(owner stagingKey, length int) []float64 {
	if v, ok := b.staging.Load(owner); ok {
		buf := v.([]float64)
		if len(buf) == length {
			return buf
		}
	}
	buf := make([]float64, length)
	b.staging.Store(owner, buf)
	return buf
}

// CleanupThread releases any thread-local staging buffer held for owner.
// A subsequent WindowDirect call for the same owner allocates a fresh one.
func (b *Buffer) CleanupThread(owner stagingKey) {
	b.staging.Delete(owner)
}

func nextPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}
