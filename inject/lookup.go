package inject

import (
	"errors"
	"fmt"
	"reflect"
)

// ServiceLookup provides values for constructor parameters not covered by
// explicit arguments.
//
// It is intentionally:
// - read-only
// - side effect free
// - queried once per unresolved parameter per NewInstance call
//
// Expected usage:
//
//	val, ok, err := lookup.Find(paramType)
//
// A found value must be non-nil and assignable to the requested type;
// implementations must be safe for concurrent Find calls from independent
// NewInstance invocations.
type ServiceLookup interface {
	Find(t reflect.Type) (val any, ok bool, err error)
}

// ErrLookupPanic is returned if a lookup implementation panics internally.
var ErrLookupPanic = errors.New("inject: panic during Find")

// MapLookup is a simple in-memory lookup keyed by exact type.
//
// Populate it during composition via Provide / ProvideAs, then treat it as
// read-only; Find does not mutate state, so concurrent use after population
// is safe.
type MapLookup struct {
	items map[reflect.Type]any
}

// NewMapLookup returns an empty MapLookup.
func NewMapLookup() *MapLookup {
	return &MapLookup{items: map[reflect.Type]any{}}
}

// Provide stores each value under its dynamic type and returns the lookup
// for chaining. Nil values are skipped (they carry no type to key on); use
// ProvideAs to bind a value under an interface type.
func (l *MapLookup) Provide(vals ...any) *MapLookup {
	for _, v := range vals {
		if v == nil {
			continue
		}
		l.items[reflect.TypeOf(v)] = v
	}
	return l
}

// ProvideType stores a value under an explicit type and returns the lookup
// for chaining.
func (l *MapLookup) ProvideType(t reflect.Type, val any) *MapLookup {
	l.items[t] = val
	return l
}

// ProvideAs stores a value under the type I rather than its dynamic type,
// so constructors can depend on interfaces instead of concrete types.
func ProvideAs[I any](l *MapLookup, val I) *MapLookup {
	l.items[reflect.TypeFor[I]()] = val
	return l
}

// Find implements ServiceLookup and defensively converts panics into errors.
func (l *MapLookup) Find(t reflect.Type) (val any, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			val = nil
			ok = false
			err = fmt.Errorf("%w: %v", ErrLookupPanic, rec)
		}
	}()

	v, ok := l.items[t]
	return v, ok, nil
}

// Get returns the value if present (no panic).
func (l *MapLookup) Get(t reflect.Type) (any, bool) {
	v, ok := l.items[t]
	return v, ok
}

// MustFind returns the value or panics with a helpful message.
// Useful in examples/tests where a missing type should fail fast.
func (l *MapLookup) MustFind(t reflect.Type) any {
	v, ok := l.items[t]
	if !ok {
		panic(fmt.Errorf("inject: lookup missing type %q", t.String()))
	}
	return v
}

// FuncLookup adapts a plain function into a ServiceLookup.
//
// Handy for stubs in tests and for closures over existing state.
type FuncLookup func(t reflect.Type) (any, bool)

// Find implements ServiceLookup.
func (f FuncLookup) Find(t reflect.Type) (any, bool, error) {
	v, ok := f(t)
	return v, ok, nil
}

// ChainLookup queries several lookups in order; the first hit wins.
type ChainLookup []ServiceLookup

// Chain combines lookups into a ChainLookup.
func Chain(lookups ...ServiceLookup) ChainLookup {
	return ChainLookup(lookups)
}

// Find implements ServiceLookup. It stops at the first lookup that returns
// a value or an error.
func (c ChainLookup) Find(t reflect.Type) (any, bool, error) {
	for _, l := range c {
		if l == nil {
			continue
		}
		v, ok, err := l.Find(t)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return v, true, nil
		}
	}
	return nil, false, nil
}

// emptyLookup backs New(nil): every type is absent.
var emptyLookup = FuncLookup(func(reflect.Type) (any, bool) { return nil, false })
