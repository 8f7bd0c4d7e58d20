package module

import (
	"context"
	"reflect"
)

// Hook is an initialization entry point of a dependency.
type Hook func(ctx context.Context, env *Env) (any, error)

// Kind is the initialization capability of a module.
type Kind int

const (
	// KindData modules only export values.
	KindData Kind = iota
	// KindCallable modules are themselves the entry point.
	KindCallable
	// KindInit modules expose an init entry point.
	KindInit
	// KindDefault modules expose a default entry point.
	KindDefault
)

func (k Kind) String() string {
	switch k {
	case KindCallable:
		return "callable"
	case KindInit:
		return "init"
	case KindDefault:
		return "default"
	default:
		return "data"
	}
}

// Module is a resolved dependency.
type Module struct {
	// Name identifies the module in logs, usually its libpath.
	Name string
	// Kind selects which entry point Hook is.
	Kind Kind
	// Hook is nil for KindData.
	Hook Hook
	// Exports holds whatever the module exposes besides its hook.
	Exports any
}

// Callable builds a module that is itself the entry point.
func Callable(name string, hook Hook) Module {
	return Module{Name: name, Kind: KindCallable, Hook: hook}
}

// WithInit builds a module exposing an init entry point.
func WithInit(name string, hook Hook, exports any) Module {
	return Module{Name: name, Kind: KindInit, Hook: hook, Exports: exports}
}

// WithDefault builds a module exposing a default entry point.
func WithDefault(name string, hook Hook, exports any) Module {
	return Module{Name: name, Kind: KindDefault, Hook: hook, Exports: exports}
}

// Data builds a module without an entry point.
func Data(name string, exports any) Module {
	return Module{Name: name, Kind: KindData, Exports: exports}
}

// Run invokes the module hook. Data modules return nil without doing anything.
func (m Module) Run(ctx context.Context, env *Env) (any, error) {
	if m.Kind == KindData || m.Hook == nil {
		return nil, nil
	}
	return m.Hook(ctx, env)
}

// Initializer is implemented by exports with an init entry point.
type Initializer interface {
	Init(ctx context.Context, env *Env) (any, error)
}

// Defaulter is implemented by exports with a default entry point.
type Defaulter interface {
	Default(ctx context.Context, env *Env) (any, error)
}

var hookType = reflect.TypeOf(Hook(nil))

// Classify turns an arbitrary exported value into a Module.
// Functions win over Initializer, which wins over Defaulter.
func Classify(name string, v any) Module {
	switch x := v.(type) {
	case Module:
		if x.Name == "" {
			x.Name = name
		}
		return x
	case Hook:
		return Callable(name, x)
	case func(context.Context, *Env) (any, error):
		return Callable(name, x)
	case func(context.Context, *Env) error:
		return Callable(name, func(ctx context.Context, env *Env) (any, error) {
			return nil, x(ctx, env)
		})
	case func() error:
		return Callable(name, func(context.Context, *Env) (any, error) {
			return nil, x()
		})
	case func():
		return Callable(name, func(context.Context, *Env) (any, error) {
			x()
			return nil, nil
		})
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Func && !rv.IsNil() && rv.Type().ConvertibleTo(hookType) {
		return Callable(name, rv.Convert(hookType).Interface().(Hook))
	}

	if i, ok := v.(Initializer); ok {
		return WithInit(name, i.Init, v)
	}
	if d, ok := v.(Defaulter); ok {
		return WithDefault(name, d.Default, v)
	}
	return Data(name, v)
}
