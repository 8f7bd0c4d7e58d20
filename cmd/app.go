package cmd

import (
	"context"
	"fmt"

	"zhi-theme/core/bootstrap"
	"zhi-theme/core/config"
	"zhi-theme/core/database"
	"zhi-theme/core/discovery"
	"zhi-theme/core/kernel"
	"zhi-theme/core/logger"
	"zhi-theme/core/registry"
	"zhi-theme/core/resolver"
	"zhi-theme/core/storage"
	"zhi-theme/plugin"

	"go.uber.org/zap"
)

// app holds the components shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    storage.Client
	registry *registry.Registry
	resolver *resolver.Resolver
	kernel   *kernel.Client
	history  *database.History
}

// newApp loads configuration and wires the bootstrap components.
// Storage and history are optional; a failure to reach them is logged.
func newApp(ctx context.Context, withHistory bool) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newAppFromConfig(ctx, cfg, withHistory)
}

func newAppFromConfig(ctx context.Context, cfg *config.Config, withHistory bool) (*app, error) {
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logg, registry: registry.New(), kernel: kernel.NewClient(cfg.Kernel)}

	if err := plugin.Register(a.registry); err != nil {
		return nil, fmt.Errorf("failed to register built-in modules: %w", err)
	}

	var opts []resolver.Option
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if ok, err := client.BucketExists(ctx, cfg.Storage.Bucket); err != nil || !ok {
			logg.Warn("Storage bucket unavailable, remote modules disabled",
				zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		} else {
			a.store = client
			opts = append(opts, resolver.WithStorage(client, cfg.Storage.Bucket))
		}
	}

	paths := resolver.Paths{Workspace: cfg.Theme.Workspace, RemotePrefix: cfg.Storage.Prefix}
	a.resolver = resolver.New(paths, a.registry, logg, opts...)

	if withHistory && cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else if h, err := database.NewHistory(db); err != nil {
			logg.Warn("Failed to prepare bootstrap history", zap.Error(err))
		} else {
			a.history = h
		}
	}

	return a, nil
}

// source returns the manifest source selected in the configuration.
func (a *app) source() (discovery.Source, error) {
	switch a.cfg.Theme.ManifestSource {
	case bootstrap.ManifestSourceFile:
		return discovery.FileSource{Path: a.cfg.Theme.Manifest}, nil
	case bootstrap.ManifestSourceStorage:
		if a.store == nil {
			return nil, fmt.Errorf("manifest source %q requires storage", a.cfg.Theme.ManifestSource)
		}
		return discovery.StorageSource{Client: a.store, Bucket: a.cfg.Storage.Bucket, Object: a.cfg.Theme.Manifest}, nil
	default:
		return nil, fmt.Errorf("unknown manifest source %q", a.cfg.Theme.ManifestSource)
	}
}

// bootstrapper builds the theme bootstrap.
func (a *app) bootstrapper() (*bootstrap.Bootstrap, error) {
	src, err := a.source()
	if err != nil {
		return nil, err
	}

	var opts []bootstrap.Option
	if a.cfg.Kernel.Version != "" {
		opts = append(opts, bootstrap.WithKernelVersion(a.cfg.Kernel.Version))
	}
	if a.history != nil {
		opts = append(opts, bootstrap.WithHistory(a.history))
	}
	return bootstrap.New(a.cfg.Theme, src, a.resolver, a.kernel, a.logger.Named("zhi-core"), opts...), nil
}
