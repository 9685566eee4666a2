// Package perfmodel implements the quadratic cost model spec.md §4.8
// describes: per-size-bucket coefficients (a + b*n + c*n^2) updated by
// small-step gradient descent on each real measurement, with a decaying
// learning rate, a confidence interval from recent prediction error, and
// multiplicative platform factors.
//
// Persistence (Save/Load) is grounded on the teacher's marker-framed
// binary.Write/binary.Read codestream encoding in jpeg2000/encoder.go:
// this package borrows the same big-endian, magic-prefixed framing
// convention for its own coefficient blob instead of the codestream's
// marker segments.
package perfmodel

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Bucket classifies an operation's input size for model lookup.
type Bucket int

const (
	Tiny Bucket = iota
	Small
	Medium
	Large
	Huge
	numBuckets
)

func (b Bucket) String() string {
	switch b {
	case Tiny:
		return "tiny"
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	case Huge:
		return "huge"
	default:
		return "unknown"
	}
}

// bucketBounds are the upper-bound sample counts for tiny/small/medium/
// large; anything larger is huge.
var bucketBounds = [4]int{256, 4096, 65536, 1 << 20}

// BucketFor classifies n into a size bucket.
func BucketFor(n int) Bucket {
	for i, bound := range bucketBounds {
		if n <= bound {
			return Bucket(i)
		}
	}
	return Huge
}

// coeffs is a. + b*n + c*n^2.
type coeffs struct {
	a, b, c float64
}

func (c coeffs) predict(n float64) float64 {
	return c.a + c.b*n + c.c*n*n
}

// recentErrorWindow bounds how many recent prediction errors feed the
// confidence interval and MAPE recalibration check.
const recentErrorWindow = 64

// bucketState holds one bucket's coefficients plus the running state
// gradient descent and recalibration need.
type bucketState struct {
	coeffs          coeffs
	measurementCnt  int
	recentErrs      []float64 // ring of recent (predicted-actual)/actual
	recentErrsNext  int
	lastCalibration int64 // unix seconds of the first observation
	calibrated      bool  // true once lastCalibration has been set
}

func newBucketState() *bucketState {
	return &bucketState{recentErrs: make([]float64, 0, recentErrorWindow)}
}

// Model is the performance model: one coefficient set per size bucket,
// plus a platform multiplier applied to every prediction.
type Model struct {
	buckets        [numBuckets]*bucketState
	PlatformFactor float64
}

// New returns a Model with neutral coefficients and a unit platform
// factor.
func New() *Model {
	m := &Model{PlatformFactor: 1.0}
	for i := range m.buckets {
		m.buckets[i] = newBucketState()
	}
	return m
}

// Predict returns the modeled wall-time (in the same unit Observe was
// fed) for an operation over n samples.
func (m *Model) Predict(n int) float64 {
	b := m.buckets[BucketFor(n)]
	return b.coeffs.predict(float64(n)) * m.PlatformFactor
}

// ConfidenceInterval returns +/- 2*stddev of recent prediction errors for
// n's bucket, in the same relative-error units Observe records.
func (m *Model) ConfidenceInterval(n int) float64 {
	b := m.buckets[BucketFor(n)]
	if len(b.recentErrs) < 2 {
		return 0
	}
	return 2 * stat.StdDev(b.recentErrs, nil)
}

// Observe records a real wall-time measurement for n samples and updates
// that bucket's coefficients via one small-step gradient-descent update
// on squared error, with learning rate 1/(1+measurementCount).
func (m *Model) Observe(n int, actual, nowUnix int64) {
	b := m.buckets[BucketFor(n)]
	x := float64(n)
	predicted := b.coeffs.predict(x)
	errVal := predicted - float64(actual)

	lr := 1.0 / (1.0 + float64(b.measurementCnt))
	// Gradient of squared error (predicted-actual)^2 w.r.t. each
	// coefficient is 2*err*(1, x, x^2); each term is normalized by its own
	// feature magnitude so a, b, c take comparably sized steps regardless
	// of n's scale — an unnormalized step explodes as x grows (x^2 exceeds
	// 10^12 in the "huge" bucket).
	b.coeffs.a -= lr * errVal
	if x != 0 {
		b.coeffs.b -= lr * errVal / x
		b.coeffs.c -= lr * errVal / (x * x)
	}

	relErr := 0.0
	if actual != 0 {
		relErr = errVal / float64(actual)
	}
	if len(b.recentErrs) < recentErrorWindow {
		b.recentErrs = append(b.recentErrs, relErr)
	} else {
		b.recentErrs[b.recentErrsNext] = relErr
		b.recentErrsNext = (b.recentErrsNext + 1) % recentErrorWindow
	}
	b.measurementCnt++
	if !b.calibrated {
		b.lastCalibration = nowUnix
		b.calibrated = true
	}
}

// NeedsRecalibration reports whether bucket b should be recalibrated: its
// rolling MAPE exceeds 15%, at least 30 days have elapsed since the last
// calibration, or fewer than 100 measurements have been taken.
func (m *Model) NeedsRecalibration(n int, nowUnix int64) bool {
	b := m.buckets[BucketFor(n)]
	if b.measurementCnt < 100 {
		return true
	}
	const thirtyDays = 30 * 24 * 60 * 60
	if b.calibrated && nowUnix-b.lastCalibration >= thirtyDays {
		return true
	}
	return mape(b.recentErrs) > 0.15
}

func mape(relErrs []float64) float64 {
	if len(relErrs) == 0 {
		return 0
	}
	var sum float64
	for _, e := range relErrs {
		sum += math.Abs(e)
	}
	return sum / float64(len(relErrs))
}

