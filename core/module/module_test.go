package module

import (
	"context"
	"errors"
	"testing"

	"zhi-theme/core/dependency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type initOnly struct{ calls int }

func (i *initOnly) Init(context.Context, *Env) (any, error) {
	i.calls++
	return "ready", nil
}

type defaultOnly struct{}

func (defaultOnly) Default(context.Context, *Env) (any, error) { return nil, nil }

type both struct{}

func (both) Init(context.Context, *Env) (any, error)    { return "init", nil }
func (both) Default(context.Context, *Env) (any, error) { return "default", nil }

// callableWithInit is a function value that also has an Init method.
type callableWithInit func(ctx context.Context, env *Env) (any, error)

func (callableWithInit) Init(context.Context, *Env) (any, error) { return "init", nil }

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Kind
	}{
		{"Hook", Hook(func(context.Context, *Env) (any, error) { return nil, nil }), KindCallable},
		{"HookLiteral", func(context.Context, *Env) (any, error) { return nil, nil }, KindCallable},
		{"ErrorHook", func(context.Context, *Env) error { return nil }, KindCallable},
		{"NoArgs", func() {}, KindCallable},
		{"NoArgsError", func() error { return nil }, KindCallable},
		{"Init", &initOnly{}, KindInit},
		{"Default", defaultOnly{}, KindDefault},
		{"InitBeatsDefault", both{}, KindInit},
		{"Data", map[string]string{"a": "b"}, KindData},
		{"Nil", nil, KindData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Classify("lib", tt.value)
			assert.Equal(t, tt.want, m.Kind)
			assert.Equal(t, "lib", m.Name)
		})
	}
}

func TestClassify_FunctionWithInitMethodIsCallable(t *testing.T) {
	var fn callableWithInit = func(context.Context, *Env) (any, error) { return "called", nil }

	m := Classify("lib", fn)
	assert.Equal(t, KindCallable, m.Kind)

	out, err := m.Run(context.Background(), NewEnv(dependency.RuntimeSiyuanMainWin, nil))
	require.NoError(t, err)
	assert.Equal(t, "called", out)
}

func TestClassify_KeepsModule(t *testing.T) {
	m := Classify("fallback", Data("", 42))
	assert.Equal(t, "fallback", m.Name)
	assert.Equal(t, 42, m.Exports)

	named := Classify("fallback", Data("named", 1))
	assert.Equal(t, "named", named.Name)
}

func TestModule_Run(t *testing.T) {
	env := NewEnv(dependency.RuntimeSiyuanMainWin, nil)

	t.Run("Init", func(t *testing.T) {
		target := &initOnly{}
		m := Classify("lib", target)
		out, err := m.Run(context.Background(), env)
		require.NoError(t, err)
		assert.Equal(t, "ready", out)
		assert.Equal(t, 1, target.calls)
	})

	t.Run("Error", func(t *testing.T) {
		m := Classify("lib", func() error { return errors.New("boom") })
		_, err := m.Run(context.Background(), env)
		assert.EqualError(t, err, "boom")
	})

	t.Run("Data", func(t *testing.T) {
		out, err := Data("lib", "x").Run(context.Background(), env)
		assert.NoError(t, err)
		assert.Nil(t, out)
	})
}

func TestEnv(t *testing.T) {
	env := NewEnv(dependency.RuntimeSiyuanBrowser, nil)
	assert.Equal(t, dependency.RuntimeSiyuanBrowser, env.Runtime())
	assert.NotNil(t, env.Logger())

	_, ok := env.Get("missing")
	assert.False(t, ok)

	env.Set("b", 2)
	env.Set("a", "one")
	assert.Equal(t, []string{"a", "b"}, env.Keys())

	s, ok := Lookup[string](env, "a")
	assert.True(t, ok)
	assert.Equal(t, "one", s)

	_, ok = Lookup[string](env, "b")
	assert.False(t, ok)
}
