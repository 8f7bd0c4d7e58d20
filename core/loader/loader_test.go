package loader

import (
	"context"
	"errors"
	"testing"

	"zhi-theme/core/dependency"
	"zhi-theme/core/module"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Import(ctx context.Context, item dependency.Item) (module.Module, error) {
	args := m.Called(ctx, item.Libpath())
	return args.Get(0).(module.Module), args.Error(1)
}

func (m *mockResolver) Require(item dependency.Item) (module.Module, error) {
	args := m.Called(item.Libpath())
	return args.Get(0).(module.Module), args.Error(1)
}

// counter records hook invocations per name.
type counter map[string]int

func (c counter) hook(name string, out any, err error) module.Hook {
	return func(context.Context, *module.Env) (any, error) {
		c[name]++
		return out, err
	}
}

const desktop = dependency.RuntimeSiyuanMainWin

func esm(libpath string, runAs ...dependency.Runtime) dependency.Item {
	if len(runAs) == 0 {
		runAs = []dependency.Runtime{desktop}
	}
	return dependency.NewItem(libpath, dependency.FormatESM, dependency.ImportTypeImport, dependency.BasePathZhiTheme, runAs...)
}

func newLoader(r Resolver) (*Loader, *module.Env, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	env := module.NewEnv(desktop, logger)
	return New(r, env, logger), env, logs
}

func TestLoad_UnsupportedFormatIsSkippedWithoutResolution(t *testing.T) {
	r := new(mockResolver)
	l, _, logs := newLoader(r)

	for _, format := range []dependency.Format{"xml", "", "wasm"} {
		item := dependency.NewItem("lib.x", format, dependency.ImportTypeImport, dependency.BasePathZhiTheme, desktop)
		report := l.Load(context.Background(), []dependency.Item{item}, desktop)
		require.Len(t, report.Outcomes, 1)
		assert.Equal(t, StatusSkippedFormat, report.Outcomes[0].Status)
	}

	r.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
	r.AssertNotCalled(t, "Require", mock.Anything)
	assert.Equal(t, 3, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestLoad_RuntimeMismatchIsSkipped(t *testing.T) {
	r := new(mockResolver)
	l, _, _ := newLoader(r)

	items := []dependency.Item{
		esm("browser-only.js", dependency.RuntimeSiyuanBrowser),
		dependency.NewItem("nowhere.js", dependency.FormatESM, dependency.ImportTypeImport, dependency.BasePathZhiTheme),
	}

	report := l.Load(context.Background(), items, desktop)
	assert.Equal(t, 2, report.Count(StatusSkippedRuntime))
	r.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestLoad_CallableInvokedOnce(t *testing.T) {
	calls := counter{}
	r := new(mockResolver)
	mod := module.Module{
		Name: "callable.js",
		Kind: module.KindCallable,
		Hook: calls.hook("callable", nil, nil),
	}
	r.On("Import", mock.Anything, "callable.js").Return(mod, nil).Once()

	l, _, _ := newLoader(r)
	report := l.Load(context.Background(), []dependency.Item{esm("callable.js")}, desktop)

	assert.Equal(t, 1, calls["callable"])
	assert.Len(t, calls, 1)
	assert.Equal(t, StatusLoaded, report.Outcomes[0].Status)
	assert.Equal(t, "callable", report.Outcomes[0].Hook)
	r.AssertExpectations(t)
}

type initAndDefault struct{ calls counter }

func (i initAndDefault) Init(context.Context, *module.Env) (any, error) {
	i.calls["init"]++
	return nil, nil
}

func (i initAndDefault) Default(context.Context, *module.Env) (any, error) {
	i.calls["default"]++
	return nil, nil
}

func TestLoad_CallableWinsOverInitAndDefault(t *testing.T) {
	calls := counter{}
	exports := initAndDefault{calls: calls}
	// A callable whose exports also carry init and default.
	mod := module.Module{Name: "c.js", Kind: module.KindCallable, Hook: calls.hook("callable", nil, nil), Exports: exports}

	r := new(mockResolver)
	r.On("Import", mock.Anything, "c.js").Return(mod, nil)

	l, _, _ := newLoader(r)
	l.Load(context.Background(), []dependency.Item{esm("c.js")}, desktop)

	assert.Equal(t, counter{"callable": 1}, calls)
}

func TestLoad_InitInvokedOnce(t *testing.T) {
	calls := counter{}
	mod := module.Classify("init.js", initAndDefault{calls: calls})
	require.Equal(t, module.KindInit, mod.Kind)

	r := new(mockResolver)
	r.On("Import", mock.Anything, "init.js").Return(mod, nil)

	l, _, _ := newLoader(r)
	report := l.Load(context.Background(), []dependency.Item{esm("init.js")}, desktop)

	assert.Equal(t, counter{"init": 1}, calls)
	assert.Equal(t, "init", report.Outcomes[0].Hook)
}

func TestLoad_DefaultOutputIsReported(t *testing.T) {
	calls := counter{}
	mod := module.WithDefault("default.js", calls.hook("default", "ready", nil), nil)

	r := new(mockResolver)
	r.On("Import", mock.Anything, "default.js").Return(mod, nil)

	l, _, logs := newLoader(r)
	report := l.Load(context.Background(), []dependency.Item{esm("default.js")}, desktop)

	assert.Equal(t, 1, calls["default"])
	assert.Equal(t, "ready", report.Outcomes[0].Output)
	assert.Equal(t, 1, logs.FilterMessage("Detected output from lib").Len())
}

func TestLoad_EmptyOutputIsNotReported(t *testing.T) {
	mod := module.WithInit("quiet.js", counter{}.hook("init", "", nil), nil)

	r := new(mockResolver)
	r.On("Import", mock.Anything, "quiet.js").Return(mod, nil)

	l, _, logs := newLoader(r)
	report := l.Load(context.Background(), []dependency.Item{esm("quiet.js")}, desktop)

	assert.Nil(t, report.Outcomes[0].Output)
	assert.Equal(t, 0, logs.FilterMessage("Detected output from lib").Len())
}

func TestLoad_PlainDataCompletesWithoutInvocation(t *testing.T) {
	r := new(mockResolver)
	r.On("Import", mock.Anything, "data.js").Return(module.Data("data.js", map[string]string{"k": "v"}), nil)

	l, _, logs := newLoader(r)
	report := l.Load(context.Background(), []dependency.Item{esm("data.js")}, desktop)

	assert.Equal(t, StatusLoaded, report.Outcomes[0].Status)
	assert.Equal(t, "data", report.Outcomes[0].Hook)
	assert.Empty(t, report.Outcomes[0].Error)
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestLoad_FailuresDoNotStopTheBatch(t *testing.T) {
	calls := counter{}
	var order []string
	track := func(name string, err error) module.Hook {
		return func(context.Context, *module.Env) (any, error) {
			order = append(order, name)
			calls[name]++
			return nil, err
		}
	}

	r := new(mockResolver)
	r.On("Import", mock.Anything, "first.js").Return(module.Callable("first.js", track("first", nil)), nil)
	r.On("Import", mock.Anything, "throws.js").Return(module.WithInit("throws.js", track("throws", errors.New("boom")), nil), nil)
	r.On("Import", mock.Anything, "missing.js").Return(module.Module{}, errors.New("not found"))
	r.On("Import", mock.Anything, "panics.js").Return(module.Callable("panics.js", func(context.Context, *module.Env) (any, error) {
		order = append(order, "panics")
		panic("hook exploded")
	}), nil)
	r.On("Require", "last.js").Return(module.Callable("last.js", track("last", nil)), nil)

	items := []dependency.Item{
		esm("first.js"),
		esm("throws.js"),
		esm("missing.js"),
		esm("panics.js"),
		dependency.NewItem("last.js", dependency.FormatCJS, dependency.ImportTypeRequire, dependency.BasePathZhiTheme, desktop),
	}

	l, _, _ := newLoader(r)
	report := l.Load(context.Background(), items, desktop)

	assert.Equal(t, []string{"first", "throws", "panics", "last"}, order)
	require.Len(t, report.Outcomes, 5)
	assert.Equal(t, StatusLoaded, report.Outcomes[0].Status)
	assert.Equal(t, StatusInitializationFailed, report.Outcomes[1].Status)
	assert.Equal(t, "boom", report.Outcomes[1].Error)
	assert.Equal(t, StatusResolutionFailed, report.Outcomes[2].Status)
	assert.Equal(t, StatusInitializationFailed, report.Outcomes[3].Status)
	assert.Contains(t, report.Outcomes[3].Error, "hook exploded")
	assert.Equal(t, StatusLoaded, report.Outcomes[4].Status)

	loaded, skipped, failed := report.Summary()
	assert.Equal(t, 2, loaded)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, 3, failed)
}

func TestLoad_RequireUsesSynchronousResolution(t *testing.T) {
	r := new(mockResolver)
	r.On("Require", "cjs.js").Return(module.Data("cjs.js", nil), nil)

	l, _, _ := newLoader(r)
	item := dependency.NewItem("cjs.js", dependency.FormatCJS, dependency.ImportTypeRequire, dependency.BasePathZhiTheme, desktop)
	l.Load(context.Background(), []dependency.Item{item}, desktop)

	r.AssertCalled(t, "Require", "cjs.js")
	r.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestLoad_DuplicateItemLoadedOnce(t *testing.T) {
	calls := counter{}
	r := new(mockResolver)
	r.On("Import", mock.Anything, "dup.js").Return(module.Callable("dup.js", calls.hook("dup", nil, nil)), nil)

	l, _, _ := newLoader(r)
	report := l.Load(context.Background(), []dependency.Item{esm("dup.js"), esm("dup.js")}, desktop)

	assert.Equal(t, 1, calls["dup"])
	assert.Equal(t, StatusSkippedDuplicate, report.Outcomes[1].Status)
	r.AssertNumberOfCalls(t, "Import", 1)
}

func TestLoad_DuplicateAfterFailureIsHandledOnce(t *testing.T) {
	r := new(mockResolver)
	r.On("Import", mock.Anything, "broken.js").Return(module.Module{}, errors.New("missing"))

	l, _, logs := newLoader(r)
	report := l.Load(context.Background(), []dependency.Item{esm("broken.js"), esm("broken.js")}, desktop)

	assert.Equal(t, StatusResolutionFailed, report.Outcomes[0].Status)
	assert.Equal(t, StatusSkippedDuplicate, report.Outcomes[1].Status)
	assert.Equal(t, 1, logs.FilterMessage("Lib already handled in this pass, skipping").Len())
	assert.Zero(t, logs.FilterMessageSnippet("already loaded").Len())
	r.AssertNumberOfCalls(t, "Import", 1)
}

func TestLoad_LaterHooksSeeEarlierState(t *testing.T) {
	r := new(mockResolver)
	r.On("Import", mock.Anything, "writer.js").Return(module.Callable("writer.js", func(_ context.Context, env *module.Env) (any, error) {
		env.Set("shared", "from writer")
		return nil, nil
	}), nil)
	var seen string
	r.On("Import", mock.Anything, "reader.js").Return(module.Callable("reader.js", func(_ context.Context, env *module.Env) (any, error) {
		seen, _ = module.Lookup[string](env, "shared")
		return nil, nil
	}), nil)

	l, env, _ := newLoader(r)
	l.Load(context.Background(), []dependency.Item{esm("writer.js"), esm("reader.js")}, desktop)

	assert.Equal(t, "from writer", seen)
	assert.Equal(t, []string{"shared"}, env.Keys())
}

func TestLoad_Scenario(t *testing.T) {
	calls := counter{}
	r := new(mockResolver)
	r.On("Import", mock.Anything, "a").Return(module.Callable("a", calls.hook("a", nil, nil)), nil)

	items := []dependency.Item{
		dependency.NewItem("a", dependency.FormatESM, dependency.ImportTypeImport, dependency.BasePathZhiTheme, desktop),
		dependency.NewItem("b", "xml", dependency.ImportTypeImport, dependency.BasePathZhiTheme, desktop),
	}

	l, _, logs := newLoader(r)
	report := l.Load(context.Background(), items, "Siyuan_MainWin")

	assert.Equal(t, 1, calls["a"])
	assert.Equal(t, StatusLoaded, report.Outcomes[0].Status)
	assert.Equal(t, StatusSkippedFormat, report.Outcomes[1].Status)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "b", warnings[0].ContextMap()["libpath"])

	r.AssertNumberOfCalls(t, "Import", 1)
	r.AssertNotCalled(t, "Import", mock.Anything, "b")
}

func TestLoad_EmptyBatch(t *testing.T) {
	l, _, _ := newLoader(new(mockResolver))
	report := l.Load(context.Background(), nil, desktop)
	assert.Empty(t, report.Outcomes)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, isEmpty(nil))
	assert.True(t, isEmpty(""))
	assert.True(t, isEmpty(false))
	assert.True(t, isEmpty(0))
	assert.True(t, isEmpty([]any{}))
	assert.True(t, isEmpty((*int)(nil)))
	assert.False(t, isEmpty("x"))
	assert.False(t, isEmpty(true))
	assert.False(t, isEmpty(map[string]any{"a": 1}))
}

func TestPlan(t *testing.T) {
	cjs := dependency.NewItem("b.js", dependency.FormatCJS, dependency.ImportTypeRequire, dependency.BasePathData, desktop)
	items := []dependency.Item{
		esm("a.js"),
		dependency.NewItem("legacy.ts", "ts", dependency.ImportTypeImport, dependency.BasePathZhiTheme, desktop),
		esm("widget.js", dependency.RuntimeSiyuanWidget),
		cjs,
		esm("a.js"),
	}

	plan := Plan(items, desktop)
	assert.Equal(t, []Status{
		StatusPending,
		StatusSkippedFormat,
		StatusSkippedRuntime,
		StatusPending,
		StatusSkippedDuplicate,
	}, plan)
}
