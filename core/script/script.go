package script

import (
	"context"
	"fmt"
	"sync"

	"zhi-theme/core/module"

	"github.com/Shopify/go-lua"
	"go.uber.org/zap"
)

const (
	hookGlobal   = "__zhi_hook"
	moduleGlobal = "__zhi_module"
	envGlobal    = "zhi"
)

type script struct {
	mu    sync.Mutex
	name  string
	state *lua.State
}

// Compile runs a Lua chunk and wraps its result as a module.
func Compile(name string, src []byte) (module.Module, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)

	s := &script{name: name, state: l}
	// Top-level code gets a private env; only hooks see the shared one.
	s.bind(module.NewEnv("", nil))

	if err := lua.LoadBuffer(l, string(src), name, ""); err != nil {
		return module.Module{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return module.Module{}, fmt.Errorf("failed to run %s: %w", name, err)
	}

	switch l.TypeOf(-1) {
	case lua.TypeFunction:
		l.SetGlobal(hookGlobal)
		return module.Callable(name, s.hook(hookGlobal, "")), nil
	case lua.TypeTable:
		hasInit := hasFunction(l, -1, "init")
		hasDefault := hasFunction(l, -1, "default")
		exports := toGo(l, -1)
		l.SetGlobal(moduleGlobal)
		switch {
		case hasInit:
			return module.WithInit(name, s.hook(moduleGlobal, "init"), exports), nil
		case hasDefault:
			return module.WithDefault(name, s.hook(moduleGlobal, "default"), exports), nil
		default:
			return module.Data(name, exports), nil
		}
	default:
		exports := toGo(l, -1)
		l.Pop(1)
		return module.Data(name, exports), nil
	}
}

func hasFunction(l *lua.State, index int, field string) bool {
	l.Field(index, field)
	ok := l.IsFunction(-1)
	l.Pop(1)
	return ok
}

// hook calls the function stored in global, or its field when field is set.
func (s *script) hook(global, field string) module.Hook {
	return func(_ context.Context, env *module.Env) (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		l := s.state
		top := l.Top()
		defer l.SetTop(top)

		s.bind(env)

		l.Global(global)
		args := 0
		if field != "" {
			// Method style: the module table is passed as self.
			l.Field(-1, field)
			l.PushValue(-2)
			args = 1
		}
		if err := l.ProtectedCall(args, 1, 0); err != nil {
			if field == "" {
				return nil, fmt.Errorf("%s: %w", s.name, err)
			}
			return nil, fmt.Errorf("%s.%s: %w", s.name, field, err)
		}
		return toGo(l, -1), nil
	}
}

// bind installs the zhi global for env.
func (s *script) bind(env *module.Env) {
	l := s.state
	name := s.name

	l.NewTable()
	lua.SetFunctions(l, []lua.RegistryFunction{
		{Name: "set", Function: func(l *lua.State) int {
			key := lua.CheckString(l, 1)
			env.Set(key, toGo(l, 2))
			return 0
		}},
		{Name: "get", Function: func(l *lua.State) int {
			key := lua.CheckString(l, 1)
			v, _ := env.Get(key)
			pushGo(l, v, 0)
			return 1
		}},
		{Name: "log", Function: func(l *lua.State) int {
			msg := lua.CheckString(l, 1)
			env.Logger().Info(msg, zap.String("module", name))
			return 0
		}},
	}, 0)
	l.PushString(string(env.Runtime()))
	l.SetField(-2, "runtime")
	l.SetGlobal(envGlobal)
}
