package resolver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"zhi-theme/core/dependency"
	"zhi-theme/core/module"
	"zhi-theme/core/registry"
	"zhi-theme/core/script"
	"zhi-theme/core/storage"

	"go.uber.org/zap"
)

var (
	// ErrRemoteRequire is returned when a Remote module is required instead of imported.
	ErrRemoteRequire = errors.New("remote modules can only be imported")
	// ErrNoStorage is returned for Remote modules when no bucket is configured.
	ErrNoStorage = errors.New("storage is not configured")
)

// Resolver loads modules from the registry, the workspace or the bucket.
type Resolver struct {
	paths    Paths
	registry *registry.Registry
	store    storage.Client
	bucket   string
	logger   *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStorage enables the Remote base path.
func WithStorage(client storage.Client, bucket string) Option {
	return func(r *Resolver) {
		r.store = client
		r.bucket = bucket
	}
}

// New creates a resolver.
func New(paths Paths, reg *registry.Registry, logger *zap.Logger, opts ...Option) *Resolver {
	if reg == nil {
		reg = registry.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{paths: paths, registry: reg, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Paths returns the base path conventions in use.
func (r *Resolver) Paths() Paths {
	return r.paths
}

type result struct {
	mod module.Module
	err error
}

// Import resolves the item asynchronously and waits for it.
func (r *Resolver) Import(ctx context.Context, item dependency.Item) (module.Module, error) {
	done := make(chan result, 1)
	go func() {
		m, err := r.resolve(ctx, item, true)
		done <- result{mod: m, err: err}
	}()

	select {
	case <-ctx.Done():
		return module.Module{}, ctx.Err()
	case res := <-done:
		return res.mod, res.err
	}
}

// Require resolves the item synchronously.
func (r *Resolver) Require(item dependency.Item) (module.Module, error) {
	return r.resolve(context.Background(), item, false)
}

func (r *Resolver) resolve(ctx context.Context, item dependency.Item, async bool) (module.Module, error) {
	libpath := item.Libpath()

	location, err := r.paths.Resolve(libpath, item.BaseType)
	if err != nil {
		return module.Module{}, err
	}

	if _, ok := r.registry.Lookup(libpath); ok {
		r.logger.Debug("Resolved from registry", zap.String("libpath", libpath))
		return r.registry.Build(libpath)
	}

	var src []byte
	if item.BaseType == dependency.BasePathRemote {
		if !async {
			return module.Module{}, fmt.Errorf("%w: %s", ErrRemoteRequire, libpath)
		}
		if r.store == nil {
			return module.Module{}, fmt.Errorf("%w: %s", ErrNoStorage, libpath)
		}
		src, err = storage.ReadObject(ctx, r.store, r.bucket, location)
	} else {
		src, err = os.ReadFile(location)
		if err != nil {
			err = fmt.Errorf("failed to read %s: %w", location, err)
		}
	}
	if err != nil {
		return module.Module{}, err
	}

	r.logger.Debug("Compiling script", zap.String("libpath", libpath), zap.String("location", location))
	m, err := script.Compile(libpath, src)
	if err != nil {
		return module.Module{}, err
	}
	return m, nil
}
