// Package registry maps logical library identifiers to statically linked modules.
//
// Dependencies compiled into the binary register a Factory under the libpath the
// dependency manifest uses. The resolver consults the registry before looking for
// a script on disk or in the bucket, so a manifest entry can be satisfied either way.
//
// # Usage
//
//	reg := registry.New()
//	reg.MustRegister("zhi/theme-style.js", themestyle.New)
//	f, ok := reg.Lookup("zhi/theme-style.js")
package registry
