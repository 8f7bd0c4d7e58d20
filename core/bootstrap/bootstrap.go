package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zhi-theme/core/database"
	"zhi-theme/core/dependency"
	"zhi-theme/core/discovery"
	"zhi-theme/core/loader"
	"zhi-theme/core/module"
	"zhi-theme/core/resolver"
	"zhi-theme/core/version"

	"go.uber.org/zap"
)

// Keys of the helpers mounted on the shared env.
const (
	EnvLog        = "zhiLog"
	EnvRequire    = "zhiRequire"
	EnvImportPath = "zhiImportPath"
)

// RequireFunc synchronously requires a libpath under the ZhiTheme base.
type RequireFunc func(libpath string) (module.Module, error)

// ImportPathFunc resolves a libpath under the ZhiTheme base.
type ImportPathFunc func(libpath string) (string, error)

// Status is the terminal state of one bootstrap pass.
type Status string

const (
	StatusUnsupportedRuntime Status = "unsupported_runtime"
	StatusThemeUnsupported   Status = "theme_unsupported"
	StatusPluginsUnsupported Status = "plugins_unsupported"
	StatusLoaded             Status = "loaded"
)

// Kernel is the part of the SiYuan kernel API the bootstrap needs.
type Kernel interface {
	Version(ctx context.Context) (string, error)
	PushMsg(ctx context.Context, msg string) error
	PushErrMsg(ctx context.Context, msg string) error
}

// Recorder stores finished loader reports.
type Recorder interface {
	Record(ctx context.Context, report *loader.Report) (*database.BootstrapRun, error)
}

// Result describes one bootstrap pass.
type Result struct {
	Runtime       dependency.Runtime `json:"runtime"`
	KernelVersion string             `json:"kernel_version,omitempty"`
	Status        Status             `json:"status"`
	Message       string             `json:"message,omitempty"`
	RunID         string             `json:"run_id,omitempty"`
	Report        *loader.Report     `json:"report,omitempty"`
	FinishedAt    time.Time          `json:"finished_at"`
}

// Bootstrap initializes the theme: it gates on runtime and kernel version,
// mounts the env helpers, discovers the dependency list and loads it.
type Bootstrap struct {
	cfg      Config
	source   discovery.Source
	resolver *resolver.Resolver
	kernel   Kernel
	history  Recorder
	env      *module.Env
	logger   *zap.Logger

	kernelVersion string
}

// Option configures a Bootstrap.
type Option func(*Bootstrap)

// WithHistory records every finished load in r.
func WithHistory(r Recorder) Option {
	return func(b *Bootstrap) {
		b.history = r
	}
}

// WithKernelVersion skips asking the kernel for its version.
func WithKernelVersion(v string) Option {
	return func(b *Bootstrap) {
		b.kernelVersion = v
	}
}

// WithEnv shares an existing env with the loaded dependencies.
func WithEnv(env *module.Env) Option {
	return func(b *Bootstrap) {
		b.env = env
	}
}

// New creates a Bootstrap.
func New(cfg Config, source discovery.Source, res *resolver.Resolver, kernel Kernel, logger *zap.Logger, opts ...Option) *Bootstrap {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Bootstrap{
		cfg:      cfg,
		source:   source,
		resolver: res,
		kernel:   kernel,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.env == nil {
		b.env = module.NewEnv(b.Runtime(), logger)
	}
	return b
}

// Runtime returns the configured runtime tag.
func (b *Bootstrap) Runtime() dependency.Runtime {
	return dependency.Runtime(b.cfg.RunAs)
}

// Env returns the env shared with loaded dependencies.
func (b *Bootstrap) Env() *module.Env {
	return b.env
}

// Run performs one bootstrap pass. Gates end the pass with a non-loaded
// status and a nil error; only a failed kernel query or discovery returns an error.
func (b *Bootstrap) Run(ctx context.Context) (*Result, error) {
	rt := b.Runtime()
	res := &Result{Runtime: rt}
	defer func() { res.FinishedAt = time.Now() }()

	b.logger.Info("Zhi Theme runAs", zap.String("runtime", string(rt)))

	if rt != dependency.RuntimeSiyuanMainWin && rt != dependency.RuntimeSiyuanBrowser {
		res.Status = StatusUnsupportedRuntime
		res.Message = fmt.Sprintf("Zhi Theme can only run as %s or %s", dependency.RuntimeSiyuanMainWin, dependency.RuntimeSiyuanBrowser)
		b.logger.Warn(res.Message, zap.String("runtime", string(rt)))
		return res, nil
	}

	kv, err := b.version(ctx)
	if err != nil {
		return nil, err
	}
	res.KernelVersion = kv

	if version.Lesser(kv, b.cfg.MinThemeVersion) {
		res.Status = StatusThemeUnsupported
		res.Message = fmt.Sprintf("Your siyuan-note kernel version %s is not supported by zhi theme, style will look weird, you must install siyuan-note %s+ to use zhi-theme", kv, b.cfg.MinThemeVersion)
		b.logger.Error(res.Message)
		b.notify(ctx, res.Message, true)
		return res, nil
	}
	if version.Lesser(kv, b.cfg.MinKernelVersion) {
		res.Status = StatusPluginsUnsupported
		res.Message = fmt.Sprintf("Your siyuan-note kernel version %s is too low, plugin system will not work, you must install siyuan-note %s+ to use plugin feature", kv, b.cfg.MinKernelVersion)
		b.logger.Warn(res.Message)
		b.notify(ctx, res.Message, false)
		return res, nil
	}

	b.mount()

	items, err := b.source.Discover(ctx)
	if err != nil {
		b.logger.Error("Zhi Theme load error", zap.Error(err))
		return nil, fmt.Errorf("failed to discover dependencies: %w", err)
	}

	report := loader.New(b.resolver, b.env, b.logger).Load(ctx, items, rt)
	res.Status = StatusLoaded
	res.Report = report

	if b.history != nil {
		run, err := b.history.Record(ctx, report)
		if err != nil {
			b.logger.Warn("Failed to record bootstrap run", zap.Error(err))
		} else {
			res.RunID = run.ID
		}
	}

	b.logger.Info("Zhi Theme inited")
	return res, nil
}

func (b *Bootstrap) version(ctx context.Context) (string, error) {
	if b.kernelVersion != "" {
		return b.kernelVersion, nil
	}
	if b.kernel == nil {
		return "", errors.New("no kernel version configured and no kernel client")
	}
	v, err := b.kernel.Version(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to query kernel version: %w", err)
	}
	return v, nil
}

func (b *Bootstrap) notify(ctx context.Context, msg string, isErr bool) {
	if b.kernel == nil {
		return
	}
	var err error
	if isErr {
		err = b.kernel.PushErrMsg(ctx, msg)
	} else {
		err = b.kernel.PushMsg(ctx, msg)
	}
	if err != nil {
		b.logger.Warn("Failed to push kernel notification", zap.Error(err))
	}
}

// mount places the helpers on the env so loaded dependencies can reach them.
func (b *Bootstrap) mount() {
	b.env.Set(EnvLog, b.logger.Named("zhi-core"))
	b.logger.Info("ZhiLog mounted")

	b.env.Set(EnvRequire, RequireFunc(func(libpath string) (module.Module, error) {
		return b.resolver.Require(dependency.NewItem(libpath, dependency.FormatJS, dependency.ImportTypeRequire, dependency.BasePathZhiTheme))
	}))
	b.logger.Info("zhiRequire mounted")

	paths := b.resolver.Paths()
	b.env.Set(EnvImportPath, ImportPathFunc(func(libpath string) (string, error) {
		return paths.Resolve(libpath, dependency.BasePathZhiTheme)
	}))
	b.logger.Info("zhiImportPath mounted")
}
