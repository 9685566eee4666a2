// Package streaming implements the block-wise streaming MODWT transform
// and online denoiser spec.md §4.6 describes: samples arrive via
// package ring's SPSC buffer, are windowed with zero-copy semantics, and
// are transformed with the single-level kernel from package modwt.
//
// Grounded on the teacher's worker/pipeline lifecycle conventions
// (one-shot close via CAS, completion signalled over a channel) and
// enriched with github.com/google/uuid for per-stream correlation IDs and
// github.com/charmbracelet/log for lifecycle logging, matching the rest
// of this module's ambient stack.
package streaming

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Prophetizo/vectorwave/modwt"
	"github.com/Prophetizo/vectorwave/ring"
	"github.com/Prophetizo/vectorwave/vwerr"
	"github.com/Prophetizo/vectorwave/wavelet"
)

// Block is one emitted coefficient record: the window's approximation and
// detail sequences plus the sample index at which the window started, so
// consumers can verify ordering (spec.md §8 scenario 4).
type Block struct {
	Approx    []float64
	Detail    []float64
	StartedAt int64
}

// Config configures a Transform.
type Config struct {
	Wavelet      *wavelet.Wavelet
	Boundary     modwt.Boundary
	BlockSize    int
	OverlapRatio float64 // [0, 1)
	BufferMult   int     // ring capacity = block_size * BufferMult, rounded to power of two
}

// Transform runs the streaming single-level MODWT over a ring buffer:
// Write feeds samples in, the internal consumer loop (driven by Poll)
// windows and transforms them, and Flush/Close handle end-of-stream.
type Transform struct {
	id     uuid.UUID
	cfg    Config
	buf    *ring.Buffer
	hop    int
	closed int32 // atomic one-shot CAS flag

	totalWritten int64
	consumed     int64

	blocks chan Block
	errs   chan error
	done   chan struct{}
}

// New validates cfg per spec.md §4.6's constructor rules and constructs a
// Transform with its ring buffer sized to block_size*buffer_multiplier,
// rounded up to a power of two.
func New(cfg Config) (*Transform, error) {
	const op = "streaming.New"
	if cfg.Wavelet == nil {
		return nil, vwerr.New(vwerr.InvalidConfiguration, op, "wavelet is required")
	}
	if cfg.BlockSize < cfg.Wavelet.Length() {
		return nil, vwerr.New(vwerr.InvalidConfiguration, op, "buffer_size must be >= filter_length")
	}
	if cfg.OverlapRatio < 0 || cfg.OverlapRatio >= 1 {
		return nil, vwerr.New(vwerr.InvalidConfiguration, op, "overlap_ratio must be in [0,1)")
	}
	if cfg.BufferMult < 2 {
		return nil, vwerr.New(vwerr.InvalidConfiguration, op, "buffer_multiplier must be >= 2")
	}

	overlapSize := int(float64(cfg.BlockSize) * cfg.OverlapRatio)
	if cfg.BlockSize <= overlapSize {
		return nil, vwerr.New(vwerr.InvalidConfiguration, op, "buffer_size must exceed overlap_size so hop >= 1")
	}
	const maxBytes = 100 << 20
	if int64(cfg.BlockSize+overlapSize)*8 > maxBytes {
		return nil, vwerr.New(vwerr.InvalidConfiguration, op, "buffer_size + overlap_size exceeds 100 MiB guard")
	}
	const int32Max = int64(1) << 31
	if int64(cfg.BlockSize)+int64(overlapSize) >= int32Max {
		return nil, vwerr.New(vwerr.InvalidConfiguration, op, "buffer_size + overlap_size overflows a signed 32-bit counter")
	}

	hop := cfg.BlockSize - overlapSize
	if hop < 1 {
		hop = 1
	}

	capacity := cfg.BlockSize * cfg.BufferMult
	buf, err := ring.New(capacity)
	if err != nil {
		return nil, err
	}

	t := &Transform{
		id:     uuid.New(),
		cfg:    cfg,
		buf:    buf,
		hop:    hop,
		blocks: make(chan Block, cfg.BufferMult),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
	logger.Info("stream opened", "id", t.id, "block_size", cfg.BlockSize, "hop", hop, "capacity", buf.Capacity())
	return t, nil
}

// ID returns the stream's correlation UUID, for log correlation across a
// producer/consumer pair.
func (t *Transform) ID() uuid.UUID { return t.id }

// Blocks returns the channel on which completed windows are published, in
// the exact order they were consumed.
func (t *Transform) Blocks() <-chan Block { return t.blocks }

// Errs returns the channel on which a terminal error is published, after
// which the stream stops. Closed alongside Blocks on normal completion.
func (t *Transform) Errs() <-chan error { return t.errs }

// Write is the producer side: copies as many samples as fit into the ring
// buffer and returns the count written (possibly short).
func (t *Transform) Write(samples []float64) (int, error) {
	const op = "streaming.Write"
	if atomic.LoadInt32(&t.closed) != 0 {
		return 0, vwerr.New(vwerr.StateError, op, "write after close")
	}
	n := t.buf.Write(samples)
	atomic.AddInt64(&t.totalWritten, int64(n))
	return n, nil
}

// Poll runs the consumer loop once: while occupied >= block_size, windows
// and transforms a block, publishes it, and advances by hop. Returns the
// number of blocks published. Intended to be called repeatedly by the
// single consumer goroutine (spec.md §5: single-threaded cooperative per
// direction).
func (t *Transform) Poll() (int, error) {
	return t.drainFullBlocks("streaming.Poll")
}

// drainFullBlocks windows, transforms, publishes, and advances by hop for
// as long as a full block is available — the shared loop behind both
// Poll and Flush, so Flush never hands a window wider than block_size to
// the final zero-padded remainder below.
func (t *Transform) drainFullBlocks(op string) (int, error) {
	published := 0
	for t.buf.Occupied() >= t.cfg.BlockSize {
		view, err := t.buf.WindowDirect(t, t.cfg.BlockSize)
		if err != nil {
			return published, vwerr.Wrap(err, vwerr.TransformError, op, "window fetch failed")
		}
		result, err := modwt.Forward(view, t.cfg.Wavelet, t.cfg.Boundary)
		if err != nil {
			return published, err
		}
		block := Block{
			Approx:    result.Approx,
			Detail:    result.Detail,
			StartedAt: t.consumed,
		}
		select {
		case t.blocks <- block:
		case <-t.done:
			return published, nil
		}
		if err := t.buf.AdvanceWindow(t.hop); err != nil {
			return published, vwerr.Wrap(err, vwerr.TransformError, op, "advance failed")
		}
		t.consumed += int64(t.hop)
		published++
	}
	return published, nil
}

// Flush first drains every full block still buffered (spec.md §8
// scenario 6 can reach Close with several unpolled blocks queued up;
// handing the raw occupied count straight to the zero-pad path below
// would silently truncate it to block_size and over-advance past the
// dropped tail), then — if a true sub-block remainder is left — zero-
// pads it to block_size and emits exactly one final partial-block
// record. Per spec.md §4.6, flush must not re-enter the closed-check
// close uses.
func (t *Transform) Flush() error {
	const op = "streaming.Flush"
	if _, err := t.drainFullBlocks(op); err != nil {
		return err
	}

	remaining := t.buf.Occupied() // always < block_size after drainFullBlocks
	if remaining >= t.cfg.Wavelet.Length() && remaining > 0 {
		view, err := t.buf.WindowDirect(t, remaining)
		if err != nil {
			return vwerr.Wrap(err, vwerr.TransformError, op, "final window fetch failed")
		}
		padded := make([]float64, t.cfg.BlockSize)
		copy(padded, view)
		result, err := modwt.Forward(padded, t.cfg.Wavelet, t.cfg.Boundary)
		if err != nil {
			return err
		}
		block := Block{Approx: result.Approx, Detail: result.Detail, StartedAt: t.consumed}
		select {
		case t.blocks <- block:
		case <-t.done:
			return nil
		}
		if err := t.buf.AdvanceWindow(remaining); err != nil {
			return vwerr.Wrap(err, vwerr.TransformError, op, "final advance failed")
		}
	}
	return nil
}

// Close is idempotent and thread-safe: only the first caller runs Flush
// and closes the output channels; subsequent calls are no-ops.
func (t *Transform) Close() error {
	if !atomic.CompareAndSwapInt32(&t.closed, 0, 1) {
		return nil
	}
	err := t.Flush()
	close(t.done)
	close(t.blocks)
	if err != nil {
		t.errs <- err
	}
	close(t.errs)
	t.buf.CleanupThread(t)
	logger.Info("stream closed", "id", t.id, "written", atomic.LoadInt64(&t.totalWritten), "consumed", t.consumed)
	return err
}
