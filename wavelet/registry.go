package wavelet

import (
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

var logger = log.NewWithOptions(log.Default().StandardLog().Writer(), log.Options{Prefix: "wavelet"})

// Provider supplies one Wavelet to the catalog. Producing the descriptor
// lazily (rather than registering the struct directly) lets a provider do
// its own table construction without paying that cost unless the wavelet
// is actually requested.
type Provider interface {
	Identifier() string
	Build() (*Wavelet, error)
}

// Registry is a process-wide catalog of known wavelets, keyed by
// identifier. It replaces service-loader-style plugin discovery with
// explicit registration per spec.md §9.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	built     map[string]*Wavelet
}

var defaultRegistry = newRegistry()

func newRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		built:     make(map[string]*Wavelet),
	}
}

// Register adds provider to the default registry. Register reports
// whether an existing provider under the same identifier was replaced
// (collided == true) so embedding code can decide whether that is an
// error, per spec.md §9's call for an explicit collision signal instead
// of a silently overwritten service-loader entry.
func Register(provider Provider) (collided bool) {
	return defaultRegistry.Register(provider)
}

// Get resolves an identifier to a validated Wavelet, building and caching
// it on first use.
func Get(id string) (*Wavelet, error) {
	return defaultRegistry.Get(id)
}

// List returns every registered identifier.
func List() []string {
	return defaultRegistry.List()
}

// Register implements the same logic as the package-level Register but on
// an explicit Registry instance (useful for isolated tests).
func (r *Registry) Register(provider Provider) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := provider.Identifier()
	_, collided := r.providers[id]
	r.providers[id] = provider
	delete(r.built, id) // force rebuild on next Get
	if collided {
		logger.Warn("wavelet provider replaced existing registration", "id", id)
	}
	return collided
}

func (r *Registry) Get(id string) (*Wavelet, error) {
	r.mu.RLock()
	if w, ok := r.built[id]; ok {
		r.mu.RUnlock()
		return w, nil
	}
	provider, ok := r.providers[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errUnknownWavelet(id)
	}

	w, err := provider.Build()
	if err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.built[id] = w
	r.mu.Unlock()
	return w, nil
}

func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
