// Package resolver turns dependency descriptors into loaded modules.
//
// A libpath is first resolved against its base path convention, rooted at the
// SiYuan workspace:
//
//	ZhiTheme    <workspace>/conf/appearance/themes/zhi/<libpath>
//	Appearance  <workspace>/conf/appearance/<libpath>
//	Data        <workspace>/data/<libpath>
//	Absolute    <libpath>
//	Remote      <prefix>/<libpath> in the storage bucket
//
// The statically linked registry is consulted next; when it has no entry the
// resolved location is read and compiled as a Lua script.
//
// Import resolves on a separate goroutine and suspends the caller until the
// module is ready or the context ends. Require resolves in place and never
// reaches the network, so Remote modules can only be imported.
package resolver
