// Package siteinfo exports static site metadata. It has no hook.
package siteinfo

import "zhi-theme/core/module"

// Libpath is the registry key of the module.
const Libpath = "zhi/site-info.js"

// Info is the site metadata.
type Info struct {
	Theme    string `json:"theme"`
	Homepage string `json:"homepage"`
	Author   string `json:"author"`
}

// New returns the module.
func New() (module.Module, error) {
	return module.Data(Libpath, Info{
		Theme:    "zhi",
		Homepage: "https://github.com/terwer/zhi",
		Author:   "terwer",
	}), nil
}
