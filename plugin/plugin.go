// Package plugin lists the dependency units linked into the binary.
package plugin

import (
	"zhi-theme/core/registry"
	"zhi-theme/plugin/blogapi"
	"zhi-theme/plugin/siteinfo"
	"zhi-theme/plugin/themestyle"
)

// Builtins maps each built-in libpath to its factory.
func Builtins() map[string]registry.Factory {
	return map[string]registry.Factory{
		themestyle.Libpath: themestyle.New,
		blogapi.Libpath:    blogapi.New,
		siteinfo.Libpath:   siteinfo.New,
	}
}

// Register adds every built-in unit to reg.
func Register(reg *registry.Registry) error {
	for libpath, f := range Builtins() {
		if err := reg.Register(libpath, f); err != nil {
			return err
		}
	}
	return nil
}
