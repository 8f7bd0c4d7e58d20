// Package script loads dependency modules written in Lua.
//
// Scripts are the dynamically loadable unit of the bootstrap: anything the
// registry does not provide is looked up as a Lua chunk. The value a chunk
// returns decides the module kind:
//
//   - a function: Callable
//   - a table with an init function: Init
//   - a table with a default function: Default
//   - anything else: Data
//
// While a hook runs, the global zhi table is bound to the shared env:
//
//	zhi.set(key, value)
//	zhi.get(key)
//	zhi.log(message)
//	zhi.runtime
//
// init and default are called with the module table as their first argument,
// so both init = function() and function M:init() work. Top-level code of a
// chunk sees a zhi table bound to a private env: values it sets are dropped,
// and a local copy of zhi taken there never reaches the shared env.
//
// Converted tables keep shared subtables once; a table that contains itself
// converts to nil at the point of the cycle.
package script
