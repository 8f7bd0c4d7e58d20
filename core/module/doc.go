// Package module models what a resolved dependency exposes.
//
// A loaded dependency is a Module: a tagged variant over its initialization
// capability. Kind is one of Callable, Init, Default or Data, and the loader
// matches on it explicitly instead of probing the shape of the loaded value.
//
// Every hook receives the shared Env, the explicit context object through which
// earlier dependencies hand state to later ones.
package module
