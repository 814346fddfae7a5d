package assistant

import (
	"net/http"
	"sync"

	"github.com/germanamz/aitools/pkg/providers/gemini"
	"github.com/germanamz/aitools/pkg/providers/provider"
)

// FactoryParams carries everything a Factory needs to build a Strategy.
type FactoryParams struct {
	Config     provider.Config
	HTTPClient *http.Client // nil keeps the strategy's default client
	BaseURL    string       // empty keeps the vendor's public endpoint
}

// Factory builds a Strategy from a resolved configuration.
type Factory func(p FactoryParams) (provider.Strategy, error)

// Registry maps provider kinds to the factories able to serve them. A
// supported kind without a factory is reported as unavailable. It is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[provider.Kind]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[provider.Kind]Factory{}}
}

// Register installs factory for kind, replacing any previous one.
func (r *Registry) Register(kind provider.Kind, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[kind] = factory
}

// Lookup returns the factory for kind.
func (r *Registry) Lookup(kind provider.Kind) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[kind]
	return f, ok
}

// Kinds returns the kinds with a registered factory, in provider.Kinds order.
func (r *Registry) Kinds() []provider.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []provider.Kind
	for _, k := range provider.Kinds {
		if _, ok := r.factories[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

var (
	defaultRegistry *Registry
	defaultsOnce    sync.Once
)

// DefaultRegistry returns the process-wide registry holding every provider
// compiled into this binary.
func DefaultRegistry() *Registry {
	defaultsOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.Register(provider.Gemini, newGemini)
		registerSDKProviders(defaultRegistry)
	})

	return defaultRegistry
}

func newGemini(p FactoryParams) (provider.Strategy, error) {
	return gemini.New(p.BaseURL, p.Config.APIKey, p.Config.Model, p.HTTPClient), nil
}
