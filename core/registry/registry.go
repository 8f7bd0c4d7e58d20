package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"zhi-theme/core/module"
)

var (
	// ErrNotFound is returned when no factory is registered for a libpath.
	ErrNotFound = errors.New("module not registered")
	// ErrDuplicate is returned when a libpath is registered twice.
	ErrDuplicate = errors.New("module already registered")
)

// Factory produces a fresh module for one bootstrap pass.
type Factory func() (module.Module, error)

// Registry holds the statically linked modules.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under libpath.
func (r *Registry) Register(libpath string, f Factory) error {
	if libpath == "" {
		return errors.New("libpath is required")
	}
	if f == nil {
		return fmt.Errorf("nil factory for %s", libpath)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[libpath]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, libpath)
	}
	r.factories[libpath] = f
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(libpath string, f Factory) {
	if err := r.Register(libpath, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under libpath.
func (r *Registry) Lookup(libpath string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[libpath]
	return f, ok
}

// Build runs the factory registered under libpath.
func (r *Registry) Build(libpath string) (module.Module, error) {
	f, ok := r.Lookup(libpath)
	if !ok {
		return module.Module{}, fmt.Errorf("%w: %s", ErrNotFound, libpath)
	}
	m, err := f()
	if err != nil {
		return module.Module{}, fmt.Errorf("failed to build %s: %w", libpath, err)
	}
	if m.Name == "" {
		m.Name = libpath
	}
	return m, nil
}

// Names returns the registered libpaths in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
