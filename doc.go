// Package rdi provides reflective, lenient dependency injection for Go.
//
// This repository is the reflective counterpart to explicit-wiring DI:
// instead of hand-wiring every dependency in a composition root, a target
// type declares its constructors once, and an Instantiator picks the
// constructor that best fits a mix of caller-supplied values and values
// resolved from a ServiceLookup, then invokes it.
//
// The selection rule is deliberately lenient: explicit values fill the
// trailing constructor parameters, leading parameters come from the service
// lookup, and ambiguity (more than one constructor fitting) is always an
// error rather than a silent overload pick.
//
// Start with the examples in the repo for end-to-end usage style.
//
// See subpackages:
//   - inject: the instantiator library (Type, Instantiator, ServiceLookup)
//   - examples/*: runnable examples
package rdi
