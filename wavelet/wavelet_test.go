package wavelet

import (
	"math"
	"testing"
)

func TestCatalogWavelets_ValidateOK(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"Haar", "haar"},
		{"Daubechies-2 (alias db2)", "db2"},
		{"Daubechies-4", "db4"},
		{"Symlet-4", "sym4"},
		{"Coiflet-2", "coif2"},
		{"Biorthogonal 2.2", "bior2.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Get(tt.id)
			if err != nil {
				t.Fatalf("Get(%q): %v", tt.id, err)
			}
			if err := w.Validate(); err != nil {
				t.Fatalf("Validate(%q): %v", tt.id, err)
			}
		})
	}
}

func TestHaarCoefficients(t *testing.T) {
	w, err := Get("haar")
	if err != nil {
		t.Fatalf("Get(haar): %v", err)
	}
	want := 1.0 / math.Sqrt2
	for i, c := range w.DecLow {
		if math.Abs(c-want) > 1e-12 {
			t.Errorf("DecLow[%d] = %v, want %v", i, c, want)
		}
	}
}

func TestGet_UnknownWavelet(t *testing.T) {
	if _, err := Get("not-a-real-wavelet"); err == nil {
		t.Fatal("expected error for unknown wavelet identifier")
	}
}

func TestRegister_ReportsCollision(t *testing.T) {
	r := newRegistry()
	p1 := builtinProvider{id: "test-wavelet", build: buildHaar}
	p2 := builtinProvider{id: "test-wavelet", build: buildHaar}

	if collided := r.Register(p1); collided {
		t.Fatal("first registration should not report a collision")
	}
	if collided := r.Register(p2); !collided {
		t.Fatal("second registration under the same id should report a collision")
	}
}

func TestList_IsSorted(t *testing.T) {
	ids := List()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Fatalf("List() not sorted: %v", ids)
		}
	}
}

func TestValidate_RejectsLengthMismatch(t *testing.T) {
	w := &Wavelet{
		ID:      "broken",
		Family:  Orthogonal,
		DecLow:  []float64{1, 2, 3},
		DecHigh: []float64{1, 2},
	}
	if err := w.Validate(); err == nil {
		t.Fatal("expected error for mismatched filter lengths")
	}
}

func TestValidate_RejectsNonOrthogonalEnergy(t *testing.T) {
	w := &Wavelet{
		ID:      "broken-energy",
		Family:  Orthogonal,
		DecLow:  []float64{1, 1},
		DecHigh: []float64{1, -1},
		RecLow:  []float64{1, 1},
		RecHigh: []float64{1, -1},
	}
	if err := w.Validate(); err == nil {
		t.Fatal("expected error for orthogonal filter violating sum(h^2)=1")
	}
}

func TestValidate_RejectsNonFiniteCoefficients(t *testing.T) {
	w := &Wavelet{
		ID:      "broken-nan",
		Family:  Orthogonal,
		DecLow:  []float64{math.NaN(), 0.5},
		DecHigh: []float64{0.5, -0.5},
		RecLow:  []float64{0.5, 0.5},
		RecHigh: []float64{0.5, -0.5},
	}
	if err := w.Validate(); err == nil {
		t.Fatal("expected error for non-finite coefficient")
	}
}
