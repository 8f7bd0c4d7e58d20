// Package dependency defines the dependency descriptor consumed by the bootstrap loader.
//
// A descriptor names one optional library to load at startup: where it lives
// (libpath + base path type), how it is resolved (import or require), how it is
// packaged (esm, cjs, js) and which runtimes it may run in.
//
// # Tags
//
//   - Format: esm | cjs | js. Anything else is unsupported and skipped by the loader.
//   - ImportType: import (asynchronous) | require (synchronous).
//   - BasePathType: ZhiTheme | Appearance | Data | Absolute | Remote.
//   - Runtime: the environment the host runs in, e.g. Siyuan_MainWin or Siyuan_Browser.
//
// Descriptors are produced as a batch by discovery and consumed once per bootstrap pass.
package dependency
