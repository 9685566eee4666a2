package perfmodel

import (
	"bytes"
	"testing"
)

func TestBucketFor_Classification(t *testing.T) {
	cases := map[int]Bucket{
		100:     Tiny,
		4096:    Small,
		65536:   Medium,
		1 << 20: Large,
		1 << 21: Huge,
	}
	for n, want := range cases {
		if got := BucketFor(n); got != want {
			t.Fatalf("BucketFor(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestObserve_ImprovesConvergence(t *testing.T) {
	m := New()
	// Actual cost is a fixed linear function; repeated observations should
	// drive the prediction error down.
	actual := func(n int) int64 { return int64(10 + 2*n) }

	firstErr := m.Predict(1000) - float64(actual(1000))
	var now int64 = 1000
	for i := 0; i < 200; i++ {
		m.Observe(1000, actual(1000), now)
		now++
	}
	lastErr := m.Predict(1000) - float64(actual(1000))

	if absF(lastErr) >= absF(firstErr) {
		t.Fatalf("prediction error did not improve: first=%v last=%v", firstErr, lastErr)
	}
}

func TestNeedsRecalibration_TrueBelowMeasurementFloor(t *testing.T) {
	m := New()
	if !m.NeedsRecalibration(1000, 0) {
		t.Fatal("expected recalibration needed with zero measurements")
	}
}

func TestNeedsRecalibration_TrueAfterThirtyDays(t *testing.T) {
	m := New()
	for i := 0; i < 150; i++ {
		m.Observe(1000, 100, int64(i))
	}
	const thirtyDaysSeconds = 30 * 24 * 60 * 60
	if !m.NeedsRecalibration(1000, thirtyDaysSeconds+200) {
		t.Fatal("expected recalibration needed after 30 days elapsed")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	m := New()
	m.PlatformFactor = 1.25
	for i := 0; i < 50; i++ {
		m.Observe(1000, int64(20+2*i), int64(i))
	}

	var buf bytes.Buffer
	if err := Save(&buf, m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.PlatformFactor != m.PlatformFactor {
		t.Fatalf("PlatformFactor = %v, want %v", loaded.PlatformFactor, m.PlatformFactor)
	}
	if loaded.Predict(1000) != m.Predict(1000) {
		t.Fatalf("Predict after round trip = %v, want %v", loaded.Predict(1000), m.Predict(1000))
	}
}

func TestLoad_RejectsBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("not a perfmodel blob")
	if _, err := Load(buf); err == nil {
		t.Fatal("expected error for bad magic header")
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
