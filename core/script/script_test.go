package script

import (
	"context"
	"testing"
	"time"

	"zhi-theme/core/dependency"
	"zhi-theme/core/module"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newEnv() *module.Env {
	return module.NewEnv(dependency.RuntimeSiyuanMainWin, zap.NewNop())
}

func TestCompile_Kinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want module.Kind
	}{
		{"Function", `return function() end`, module.KindCallable},
		{"Init", `return { init = function() end }`, module.KindInit},
		{"Default", `return { default = function() end }`, module.KindDefault},
		{"InitBeatsDefault", `return { init = function() end, default = function() end }`, module.KindInit},
		{"Table", `return { version = "1.0.0" }`, module.KindData},
		{"String", `return "hello"`, module.KindData},
		{"Nothing", `local x = 1`, module.KindData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile("lib.lua", []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Kind)
			assert.Equal(t, "lib.lua", m.Name)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile("bad.lua", []byte(`return {`))
	assert.ErrorContains(t, err, "failed to parse bad.lua")

	_, err = Compile("panics.lua", []byte(`error("nope")`))
	assert.ErrorContains(t, err, "failed to run panics.lua")
}

func TestCompile_DataExports(t *testing.T) {
	m, err := Compile("data.lua", []byte(`return { name = "zhi", tags = { "a", "b" }, count = 3, ratio = 0.5 }`))
	require.NoError(t, err)

	exports, ok := m.Exports.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "zhi", exports["name"])
	assert.Equal(t, []any{"a", "b"}, exports["tags"])
	assert.Equal(t, int64(3), exports["count"])
	assert.Equal(t, 0.5, exports["ratio"])
}

func TestHook_SharesEnv(t *testing.T) {
	env := newEnv()
	env.Set("theme", "zhi")

	m, err := Compile("callable.lua", []byte(`
return function()
  zhi.set("seen", zhi.get("theme") .. "@" .. zhi.runtime)
  return "done"
end`))
	require.NoError(t, err)

	out, err := m.Run(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, "done", out)

	seen, ok := module.Lookup[string](env, "seen")
	assert.True(t, ok)
	assert.Equal(t, "zhi@Siyuan_MainWin", seen)
}

func TestHook_InitResult(t *testing.T) {
	m, err := Compile("init.lua", []byte(`
local calls = 0
return {
  init = function()
    calls = calls + 1
    return { calls = calls }
  end,
  default = function() error("default must not run") end,
}`))
	require.NoError(t, err)
	require.Equal(t, module.KindInit, m.Kind)

	out, err := m.Run(context.Background(), newEnv())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"calls": int64(1)}, out)
}

func TestHook_Error(t *testing.T) {
	m, err := Compile("fails.lua", []byte(`return { default = function() error("broken hook") end }`))
	require.NoError(t, err)

	_, err = m.Run(context.Background(), newEnv())
	assert.ErrorContains(t, err, "fails.lua.default")
}

func TestHook_Log(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	env := module.NewEnv(dependency.RuntimeSiyuanBrowser, zap.New(core))

	m, err := Compile("log.lua", []byte(`return function() zhi.log("hello from lua") end`))
	require.NoError(t, err)

	_, err = m.Run(context.Background(), env)
	require.NoError(t, err)

	entries := logs.FilterMessage("hello from lua").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "log.lua", entries[0].ContextMap()["module"])
}

func TestCompile_SelfReferencingTable(t *testing.T) {
	done := make(chan struct{})
	var (
		m   module.Module
		err error
	)
	go func() {
		defer close(done)
		m, err = Compile("cyc.lua", []byte(`
local M = {}
M.__index = M
M.a = M
M.b = M
M.c = M
M.name = "cyc"
return M`))
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Compile did not finish on a self-referencing table")
	}
	require.NoError(t, err)
	assert.Equal(t, module.KindData, m.Kind)

	exports, ok := m.Exports.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cyc", exports["name"])
	assert.Nil(t, exports["a"])
	assert.Contains(t, exports, "b")
}

func TestCompile_SharedAndNestedTables(t *testing.T) {
	m, err := Compile("shared.lua", []byte(`
local leaf = { v = 1 }
local node = leaf
for i = 1, 30 do
  node = { l = node, r = node }
end
return { tree = node, deep = { x = { y = { z = "end" } } } }`))
	require.NoError(t, err)

	exports := m.Exports.(map[string]any)
	deep := exports["deep"].(map[string]any)
	assert.Equal(t, "end", deep["x"].(map[string]any)["y"].(map[string]any)["z"])

	// Truncated past the depth limit rather than expanded 2^30 times.
	tree := exports["tree"].(map[string]any)
	assert.Contains(t, tree, "l")
}

func TestHook_SetTableValues(t *testing.T) {
	env := newEnv()
	m, err := Compile("set.lua", []byte(`
return function()
  local cfg = { apiUrl = "https://example.com", tags = { "a", "b" } }
  cfg.self = cfg
  zhi.set("cfg", cfg)
end`))
	require.NoError(t, err)

	_, err = m.Run(context.Background(), env)
	require.NoError(t, err)

	cfg, ok := module.Lookup[map[string]any](env, "cfg")
	require.True(t, ok)
	assert.Equal(t, "https://example.com", cfg["apiUrl"])
	assert.Equal(t, []any{"a", "b"}, cfg["tags"])
	assert.Nil(t, cfg["self"])
}

func TestHook_MethodStyle(t *testing.T) {
	m, err := Compile("method.lua", []byte(`
local M = { greeting = "hi" }
function M:init()
  return self.greeting
end
return M`))
	require.NoError(t, err)
	require.Equal(t, module.KindInit, m.Kind)

	out, err := m.Run(context.Background(), newEnv())
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestCompile_TopLevelZhi(t *testing.T) {
	env := newEnv()
	m, err := Compile("top.lua", []byte(`
zhi.set("loading", true)
zhi.log("top level")
return { default = function() zhi.set("ready", zhi.runtime) end }`))
	require.NoError(t, err)

	_, err = m.Run(context.Background(), env)
	require.NoError(t, err)

	_, leaked := env.Get("loading")
	assert.False(t, leaked)
	ready, _ := module.Lookup[string](env, "ready")
	assert.Equal(t, "Siyuan_MainWin", ready)
}
