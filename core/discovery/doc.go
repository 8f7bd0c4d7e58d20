// Package discovery produces the list of dependencies a bootstrap pass loads.
//
// The list lives in a manifest whose format follows its extension:
//
// JSON, either an object with a dependencies array or a bare array:
//
//	{"dependencies": [{"libpath": "lib/blog.lua", "format": "esm", "importType": "import",
//	  "baseType": "ZhiTheme", "runAs": ["Siyuan_MainWin"]}]}
//
// TOML:
//
//	[[dependencies]]
//	libpath = "lib/blog.lua"
//	format = "esm"
//	importType = "import"
//	baseType = "ZhiTheme"
//	runAs = ["Siyuan_MainWin"]
//
// HCL:
//
//	dependency "lib/blog.lua" {
//	  format      = "esm"
//	  import_type = "import"
//	  base_type   = "ZhiTheme"
//	  run_as      = ["Siyuan_MainWin"]
//	}
//
// Manifests are read from a local file or from an object in the storage bucket.
// Entry order is preserved. Tags are not validated here; that is the loader's job.
package discovery
