package recording

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// BackendFactory creates a fresh backend for one playback.
type BackendFactory func() Backend

// registry maps backend names to factories. Backend packages fill it from
// init, so a blank import is enough to make a backend available:
//
//	import _ "github.com/gogpu/stepper/recording/backends/svg"
type registry struct {
	mu        sync.RWMutex
	factories map[string]BackendFactory
}

var backends = &registry{factories: make(map[string]BackendFactory)}

// Register makes a backend available under name. It panics on a nil
// factory or a name that is already taken, since both are programming
// errors in a backend package.
func Register(name string, factory BackendFactory) {
	if factory == nil {
		panic("recording: nil factory for backend " + name)
	}
	backends.mu.Lock()
	defer backends.mu.Unlock()
	if _, taken := backends.factories[name]; taken {
		panic("recording: backend " + name + " registered twice")
	}
	backends.factories[name] = factory
}

// Unregister removes name from the registry. Tests use it to undo
// registrations.
func Unregister(name string) {
	backends.mu.Lock()
	defer backends.mu.Unlock()
	delete(backends.factories, name)
}

// NewBackend returns a new instance of the backend registered as name.
func NewBackend(name string) (Backend, error) {
	backends.mu.RLock()
	factory, ok := backends.factories[name]
	backends.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("recording: no backend %q; is its package imported?", name)
	}
	return factory(), nil
}

// MustBackend is like NewBackend but panics when name is unknown.
func MustBackend(name string) Backend {
	b, err := NewBackend(name)
	if err != nil {
		panic(err)
	}
	return b
}

// Backends lists the registered names in sorted order.
func Backends() []string {
	backends.mu.RLock()
	defer backends.mu.RUnlock()
	return slices.Sorted(maps.Keys(backends.factories))
}

// IsRegistered reports whether name has a backend.
func IsRegistered(name string) bool {
	backends.mu.RLock()
	defer backends.mu.RUnlock()
	_, ok := backends.factories[name]
	return ok
}
