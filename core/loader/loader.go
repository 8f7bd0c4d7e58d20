package loader

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"zhi-theme/core/dependency"
	"zhi-theme/core/module"

	"go.uber.org/zap"
)

// Resolver turns an item into a module.
type Resolver interface {
	// Import resolves asynchronously and blocks until the module is ready.
	Import(ctx context.Context, item dependency.Item) (module.Module, error)
	// Require resolves synchronously.
	Require(item dependency.Item) (module.Module, error)
}

// Loader loads dependency items into a shared env.
type Loader struct {
	resolver Resolver
	env      *module.Env
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a loader writing into env.
func New(resolver Resolver, env *module.Env, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		resolver: resolver,
		env:      env,
		logger:   logger,
		now:      time.Now,
	}
}

// Load processes items in order. It never fails; per-item errors end up in the report.
func (l *Loader) Load(ctx context.Context, items []dependency.Item, current dependency.Runtime) *Report {
	report := &Report{
		Runtime:   current,
		StartedAt: l.now(),
		Outcomes:  make([]Outcome, 0, len(items)),
	}
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		report.Outcomes = append(report.Outcomes, l.loadOne(ctx, item, current, seen))
	}

	report.FinishedAt = l.now()
	loaded, skipped, failed := report.Summary()
	l.logger.Info("Dependencies processed",
		zap.String("runtime", string(current)),
		zap.Int("total", len(items)),
		zap.Int("loaded", loaded),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
	return report
}

func (l *Loader) loadOne(ctx context.Context, item dependency.Item, current dependency.Runtime, seen map[string]struct{}) Outcome {
	start := l.now()
	log := l.logger.With(zap.String("libpath", item.Libpath()), zap.String("import_type", string(item.ImportType)))
	out := Outcome{
		Libpath:    item.Libpath(),
		ImportType: item.ImportType,
		BaseType:   item.BaseType,
	}
	finish := func(status Status, err error) Outcome {
		out.Status = status
		if err != nil {
			out.Error = err.Error()
		}
		out.Duration = l.now().Sub(start)
		return out
	}

	switch precheck(item, current, seen) {
	case StatusSkippedFormat:
		log.Warn("Only esm, cjs and js are supported, skipping lib", zap.String("format", string(item.Format)))
		return finish(StatusSkippedFormat, nil)
	case StatusSkippedRuntime:
		log.Debug("Current runtime is not in the lib's runtimes",
			zap.String("runtime", string(current)),
			zap.Any("run_as", item.RunAs),
		)
		log.Warn("Lib cannot run in the current runtime, skipping")
		return finish(StatusSkippedRuntime, nil)
	case StatusSkippedDuplicate:
		log.Warn("Lib already handled in this pass, skipping")
		return finish(StatusSkippedDuplicate, nil)
	}

	log.Info("Loading lib", zap.String("base_type", string(item.BaseType)))
	mod, err := l.resolve(ctx, item)
	if err != nil {
		log.Error("Failed to resolve lib", zap.Error(err))
		return finish(StatusResolutionFailed, err)
	}
	out.Hook = mod.Kind.String()

	result, err := l.initialize(ctx, mod)
	if err != nil {
		log.Error("Failed to initialize lib", zap.String("hook", out.Hook), zap.Error(err))
		return finish(StatusInitializationFailed, err)
	}

	switch mod.Kind {
	case module.KindData:
		log.Info("No init method for lib")
	default:
		if !isEmpty(result) {
			log.Info("Detected output from lib", zap.Any("output", result))
			out.Output = result
		}
		log.Info("Inited lib", zap.String("hook", out.Hook))
	}
	log.Info("Lib loaded")
	return finish(StatusLoaded, nil)
}

// precheck returns the skip status of item, or StatusPending when it should be
// resolved. Pending items are marked in seen.
func precheck(item dependency.Item, current dependency.Runtime, seen map[string]struct{}) Status {
	if !item.Format.IsSupported() {
		return StatusSkippedFormat
	}
	if !item.CanRunAs(current) {
		return StatusSkippedRuntime
	}
	if _, dup := seen[item.Key()]; dup {
		return StatusSkippedDuplicate
	}
	seen[item.Key()] = struct{}{}
	return StatusPending
}

// Plan reports how Load would treat each item without resolving anything:
// a skip status, or StatusPending for items that would be resolved.
func Plan(items []dependency.Item, current dependency.Runtime) []Status {
	seen := make(map[string]struct{}, len(items))
	plan := make([]Status, len(items))
	for i, item := range items {
		plan[i] = precheck(item, current, seen)
	}
	return plan
}

func (l *Loader) resolve(ctx context.Context, item dependency.Item) (mod module.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during resolution: %v", r)
		}
	}()

	if item.ImportType == dependency.ImportTypeImport {
		l.logger.Debug("Importing lib", zap.String("libpath", item.Libpath()), zap.String("base_type", string(item.BaseType)))
		return l.resolver.Import(ctx, item)
	}
	l.logger.Debug("Requiring lib", zap.String("libpath", item.Libpath()), zap.String("base_type", string(item.BaseType)))
	return l.resolver.Require(item)
}

func (l *Loader) initialize(ctx context.Context, mod module.Module) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during %s hook: %v", mod.Kind, r)
		}
	}()

	switch mod.Kind {
	case module.KindCallable, module.KindInit, module.KindDefault:
		if mod.Hook == nil {
			return nil, fmt.Errorf("%s module %s has no hook", mod.Kind, mod.Name)
		}
		return mod.Hook(ctx, l.env)
	default:
		return nil, nil
	}
}

// isEmpty mirrors a falsy check on hook results.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}
