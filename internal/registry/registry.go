package registry

import (
	"fmt"
	"sync"

	"github.com/nfrund/homejobs/internal/config"
	"github.com/nfrund/homejobs/internal/domain"
)

// Key is a typed service key, conventionally "module.service".
type Key[T any] string

// Keys of the services modules share with each other.
const (
	SubscriptionStarterKey Key[domain.SubscriptionStarter] = "billing.starter"
)

// Registry lets modules publish and discover services at startup.
type Registry struct {
	services sync.Map
	cfg      config.Provider
}

func New(cfg config.Provider) *Registry {
	return &Registry{cfg: cfg}
}

// Config returns the configuration provider stored in the registry.
func (r *Registry) Config() config.Provider {
	return r.cfg
}

// Set registers value under key, replacing any previous value.
func Set[T any](r *Registry, key Key[T], value T) {
	r.services.Store(string(key), value)
}

// Get retrieves the service stored under key.
func Get[T any](r *Registry, key Key[T]) (T, bool) {
	val, ok := r.services.Load(string(key))
	if !ok {
		var zero T
		return zero, false
	}

	result, ok := val.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return result, true
}

// MustGet retrieves a service or panics. Use it only while wiring at startup.
func MustGet[T any](r *Registry, key Key[T]) T {
	val, ok := Get(r, key)
	if !ok {
		panic(fmt.Sprintf("service not found for key: %v", key))
	}
	return val
}
