package module

import (
	"sort"
	"sync"

	"zhi-theme/core/dependency"

	"go.uber.org/zap"
)

// Env is the state shared by every dependency loaded in one bootstrap pass.
// Hooks read what earlier dependencies stored and add their own values.
type Env struct {
	mu      sync.RWMutex
	runtime dependency.Runtime
	logger  *zap.Logger
	values  map[string]any
}

// NewEnv creates an empty environment for the given runtime.
func NewEnv(runtime dependency.Runtime, logger *zap.Logger) *Env {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Env{
		runtime: runtime,
		logger:  logger,
		values:  make(map[string]any),
	}
}

// Runtime returns the runtime tag the bootstrap runs as.
func (e *Env) Runtime() dependency.Runtime {
	return e.runtime
}

// Logger returns the logger dependencies should log through.
func (e *Env) Logger() *zap.Logger {
	return e.logger
}

// Set stores a value, replacing any previous one.
func (e *Env) Set(key string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values[key] = value
}

// Get returns the value stored under key.
func (e *Env) Get(key string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.values[key]
	return v, ok
}

// Keys returns the stored keys in sorted order.
func (e *Env) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the value stored under key if it has type T.
func Lookup[T any](e *Env, key string) (T, bool) {
	var zero T
	v, ok := e.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
