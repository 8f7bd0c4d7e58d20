package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"zhi-theme/core/bootstrap"
	"zhi-theme/core/config"
	"zhi-theme/core/database"
	"zhi-theme/core/kernel"
	"zhi-theme/core/loader"
	"zhi-theme/core/logger"
	"zhi-theme/plugin/siteinfo"
	"zhi-theme/plugin/themestyle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifest = `{
  "dependencies": [
    {"libpath": "zhi/theme-style.js", "format": "esm", "importType": "import", "baseType": "ZhiTheme", "runAs": ["Siyuan_MainWin", "Siyuan_Browser"]},
    {"libpath": "zhi/site-info.js", "format": "cjs", "importType": "require", "baseType": "ZhiTheme", "runAs": ["Siyuan_MainWin"]},
    {"libpath": "lib/hello.lua", "format": "js", "importType": "import", "baseType": "ZhiTheme", "runAs": ["Siyuan_MainWin"]},
    {"libpath": "zhi/legacy.ts", "format": "ts", "importType": "import", "baseType": "ZhiTheme", "runAs": ["Siyuan_MainWin"]}
  ]
}`

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "dependencies.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

	script := filepath.Join(dir, "conf", "appearance", "themes", "zhi", "lib", "hello.lua")
	require.NoError(t, os.MkdirAll(filepath.Dir(script), 0o755))
	require.NoError(t, os.WriteFile(script, []byte(`return { init = function() zhi.set("hello", true) end }`), 0o644))

	return &config.Config{
		Theme: bootstrap.Config{
			RunAs:            "Siyuan_MainWin",
			Workspace:        dir,
			Manifest:         manifestPath,
			ManifestSource:   bootstrap.ManifestSourceFile,
			MinThemeVersion:  "2.7.6",
			MinKernelVersion: "2.8.1",
		},
		Kernel:   kernel.Config{Version: "2.10.0"},
		Log:      logger.Config{Level: "error", Format: "json"},
		Database: database.Config{Enabled: true, Driver: "sqlite", Name: filepath.Join(dir, "history.db")},
	}
}

func TestApp_BootstrapEndToEnd(t *testing.T) {
	ctx := context.Background()
	a, err := newAppFromConfig(ctx, testConfig(t), true)
	require.NoError(t, err)
	require.NotNil(t, a.history)
	assert.Nil(t, a.store)

	b, err := a.bootstrapper()
	require.NoError(t, err)

	res, err := b.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, bootstrap.StatusLoaded, res.Status)
	assert.NotEmpty(t, res.RunID)

	require.Len(t, res.Report.Outcomes, 4)
	assert.Equal(t, 3, res.Report.Count(loader.StatusLoaded))
	assert.Equal(t, loader.StatusSkippedFormat, res.Report.Outcomes[3].Status)

	_, styled := b.Env().Get(themestyle.StyleKey)
	assert.True(t, styled)
	hello, _ := b.Env().Get("hello")
	assert.Equal(t, true, hello)

	runs, err := a.history.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Loaded)
}

func TestApp_Source(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Database.Enabled = false

	a, err := newAppFromConfig(ctx, cfg, true)
	require.NoError(t, err)
	assert.Nil(t, a.history)

	src, err := a.source()
	require.NoError(t, err)
	items, err := src.Discover(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, siteinfo.Libpath, items[1].Libpath())

	a.cfg.Theme.ManifestSource = bootstrap.ManifestSourceStorage
	_, err = a.source()
	assert.ErrorContains(t, err, "requires storage")

	a.cfg.Theme.ManifestSource = "http"
	_, err = a.source()
	assert.ErrorContains(t, err, "unknown manifest source")
}
