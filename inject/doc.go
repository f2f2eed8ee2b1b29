// Package inject provides a lenient, reflective dependency-injecting
// instantiator.
//
// A target type declares its constructors once via TypeFor / InnerTypeFor;
// an Instantiator then creates instances by picking the constructor that
// best fits a mix of caller-supplied explicit parameters and values
// resolved from a ServiceLookup, and invoking it.
//
// Matching rule:
//
//   - Explicit values are consumed in declaration order by the first
//     constructor parameter that can hold them; every parameter that cannot
//     is left to the service lookup.
//   - A candidate matches only when all explicit values are consumed; a
//     candidate with fewer parameters than explicit values never matches.
//   - Zero matching candidates is an error, and so is more than one:
//     ambiguity is always fatal rather than resolved by a specificity
//     tie-break, so an unintended overload is never picked silently.
//   - A type with exactly one declared constructor skips matching entirely;
//     its diagnostics come from per-parameter resolution instead, with
//     1-based positions and exact value/type names.
//
// Inner types (declared via InnerTypeFor) are bound to an enclosing type:
// the caller must pass the enclosing instance as the first explicit
// parameter, and that requirement is checked for the type as a whole before
// any candidate is considered.
//
// Design goals:
//   - Lenient: callers supply the interesting arguments; infrastructure
//     comes from the lookup.
//   - Predictable: ambiguity fails loudly, diagnostics carry exact
//     positions, every failure wraps into a single InstantiationError
//     classification.
//   - Stateless calls: the Instantiator holds only immutable configuration
//     and is safe for concurrent use; a failed call leaves no side effects,
//     so retrying is entirely the caller's business.
//   - Test-friendly: FuncLookup stubs, Build/Constructed introspection of
//     what was injected, typed errors you can assert on.
//
// Quick usage
//
//	var reportType = inject.MustTypeFor[Report](NewReport)
//
//	lookup := inject.NewMapLookup().Provide(db, logger)
//	in := inject.New(lookup)
//
//	report, err := inject.NewInstanceOf[Report](in, reportType, "2024-Q1")
//
// Import
//
//	"github.com/sghaida/rdi/inject"
package inject
