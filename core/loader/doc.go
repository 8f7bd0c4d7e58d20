// Package loader implements the dependency loader run during bootstrap.
//
// Load walks an ordered list of dependency descriptors and, for each one:
//
//  1. skips it when its format is not esm, cjs or js;
//  2. skips it when the current runtime is not in its runAs set;
//  3. skips it when the same item was already handled in this pass;
//  4. resolves it, asynchronously for import and synchronously for require;
//  5. runs its entry point according to the module kind
//     (callable, then init, then default, otherwise nothing).
//
// Items are processed strictly one after another; later dependencies may read
// what earlier ones stored in the shared env. A failure while resolving or
// initializing one item is logged and recorded in the Report and the batch
// continues. Plan applies steps 1 to 3 without resolving anything.
package loader
