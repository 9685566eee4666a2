package wavelet

import "math"

// builtinProvider wraps a pre-built Wavelet as a Provider so the built-in
// table set can use the same registration path external providers use.
type builtinProvider struct {
	id    string
	build func() (*Wavelet, error)
}

func (p builtinProvider) Identifier() string       { return p.id }
func (p builtinProvider) Build() (*Wavelet, error) { return p.build() }

func init() {
	for _, p := range []builtinProvider{
		{"haar", buildHaar},
		{"db2", buildDaubechies4},
		{"db4", buildDaubechies4}, // alias: "Daubechies-4" in spec prose names the 4-tap filter
		{"sym4", buildSymlet4},
		{"coif2", buildCoiflet2},
		{"bior2.2", buildBior22},
	} {
		Register(p)
	}
}

// buildHaar returns the two-tap orthogonal Haar wavelet: h = [1/sqrt2,
// 1/sqrt2]. spec.md's end-to-end scenario 1 is defined directly in terms
// of these coefficients.
func buildHaar() (*Wavelet, error) {
	s := 1.0 / math.Sqrt2
	h := []float64{s, s}
	g := qmf(h)
	return &Wavelet{ID: "haar", Family: Orthogonal, DecLow: h, DecHigh: g, RecLow: h, RecHigh: g}, nil
}

// buildDaubechies4 returns the classic 4-tap Daubechies orthogonal wavelet
// (2 vanishing moments), the filter spec.md's scenario 2 calls
// "Daubechies-4".
func buildDaubechies4() (*Wavelet, error) {
	h := []float64{
		0.4829629131445341,
		0.8365163037378079,
		0.2241438680420134,
		-0.1294095225512604,
	}
	g := qmf(h)
	return &Wavelet{ID: "db4", Family: Orthogonal, DecLow: h, DecHigh: g, RecLow: h, RecHigh: g}, nil
}

// buildSymlet4 returns the 8-tap least-asymmetric Symlet (4 vanishing
// moments).
func buildSymlet4() (*Wavelet, error) {
	h := []float64{
		-0.07576571478927333,
		-0.02963552764599851,
		0.49761866763201545,
		0.8037387518059161,
		0.29785779560527736,
		-0.09921954357684722,
		-0.012603967262037833,
		0.0322231006040427,
	}
	g := qmf(h)
	return &Wavelet{ID: "sym4", Family: Orthogonal, DecLow: h, DecHigh: g, RecLow: h, RecHigh: g}, nil
}

// buildCoiflet2 returns the 12-tap Coiflet with 2 vanishing moments on
// both the wavelet and scaling function.
func buildCoiflet2() (*Wavelet, error) {
	h := []float64{
		-0.0007205494453645122,
		-0.0018232088707029932,
		0.0056114348193944995,
		0.023680171946334084,
		-0.0594344186464569,
		-0.0764885990783064,
		0.4170051844236707,
		0.8127236354493977,
		0.3861100668211622,
		-0.06737255472196302,
		-0.04146493678175915,
		0.016387336463522112,
	}
	g := qmf(h)
	return &Wavelet{ID: "coif2", Family: Orthogonal, DecLow: h, DecHigh: g, RecLow: h, RecHigh: g}, nil
}

// buildBior22 returns the biorthogonal 2.2 spline wavelet: distinct
// decomposition/reconstruction pairs. Reconstruction for this family
// carries a looser 1e-6 tolerance rather than the 1e-10 orthogonal
// tolerance.
func buildBior22() (*Wavelet, error) {
	decLow := []float64{
		0,
		-0.1767766952966369,
		0.3535533905932738,
		1.0606601717798214,
		0.3535533905932738,
		-0.1767766952966369,
	}
	decHigh := []float64{0, 0, -0.7071067811865476, 1.4142135623730951, -0.7071067811865476, 0}
	recLow := []float64{0, 0, 0.7071067811865476, 1.4142135623730951, 0.7071067811865476, 0}
	recHigh := []float64{
		0,
		0.1767766952966369,
		0.3535533905932738,
		-1.0606601717798214,
		0.3535533905932738,
		0.1767766952966369,
	}
	return &Wavelet{
		ID: "bior2.2", Family: Biorthogonal,
		DecLow: decLow, DecHigh: decHigh, RecLow: recLow, RecHigh: recHigh,
	}, nil
}

// qmf derives the high-pass quadrature-mirror filter from an orthogonal
// low-pass filter: g[n] = (-1)^n * h[L-1-n].
func qmf(h []float64) []float64 {
	l := len(h)
	g := make([]float64, l)
	for n := 0; n < l; n++ {
		sign := 1.0
		if n%2 == 1 {
			sign = -1.0
		}
		g[n] = sign * h[l-1-n]
	}
	return g
}
