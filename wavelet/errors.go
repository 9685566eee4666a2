package wavelet

import "github.com/Prophetizo/vectorwave/vwerr"

func errUnknownWavelet(id string) error {
	return vwerr.New(vwerr.InvalidWavelet, "wavelet.Get", "unknown wavelet identifier").
		With("wavelet", id).
		WithSuggestion("register a Provider for this identifier before requesting it")
}
