// Package themestyle applies the theme's style variables to the shared env.
package themestyle

import (
	"context"

	"zhi-theme/core/module"
)

// Libpath is the registry key of the module.
const Libpath = "zhi/theme-style.js"

// Keys read and written on the env.
const (
	ModeKey  = "theme.mode"
	StyleKey = "theme.style"
)

// Style is the resolved set of style variables.
type Style struct {
	Mode      string            `json:"mode"`
	Variables map[string]string `json:"variables"`
}

var palettes = map[string]map[string]string{
	"light": {
		"--zhi-background": "#ffffff",
		"--zhi-foreground": "#222222",
		"--zhi-accent":     "#3573f0",
	},
	"dark": {
		"--zhi-background": "#1e1f22",
		"--zhi-foreground": "#d4d4d4",
		"--zhi-accent":     "#5c8df6",
	},
}

// New returns the module. It is a plain function, so the loader calls it directly.
func New() (module.Module, error) {
	return module.Callable(Libpath, apply), nil
}

func apply(_ context.Context, env *module.Env) (any, error) {
	mode, ok := module.Lookup[string](env, ModeKey)
	if _, known := palettes[mode]; !ok || !known {
		mode = "light"
	}
	vars := make(map[string]string, len(palettes[mode]))
	for k, v := range palettes[mode] {
		vars[k] = v
	}
	env.Set(StyleKey, Style{Mode: mode, Variables: vars})
	env.Logger().Debug("Theme style applied")
	return nil, nil
}
