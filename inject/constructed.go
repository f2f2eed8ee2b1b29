package inject

import (
	"reflect"
)

// DependencyKey identifies a service-resolved value recorded during
// construction. Keys are the parameter type names, e.g. "*main.DB".
type DependencyKey string

// Key converts a string into a DependencyKey.
func Key(name string) DependencyKey { return DependencyKey(name) }

// KeyFor derives the key used for service-resolved parameters of type D.
//
// Example:
//
//	inject.KeyFor[*DB]() // Key("*main.DB")
func KeyFor[D any]() DependencyKey {
	return DependencyKey(reflect.TypeFor[D]().String())
}

// Constructed pairs a constructed value with a record of what the service
// lookup injected into it.
//
// Val is the constructed value.
// Deps stores the service-resolved parameter values keyed by parameter type
// name, for introspection and test assertions. Explicit parameters are not
// recorded; the caller supplied those.
//
// Typed retrieval is available via GetAs / TryGetAs / MustGetAs.
type Constructed[T any] struct {
	Val  *T
	Deps map[DependencyKey]any
}

// Build is NewInstance with a typed result plus the injection record.
func Build[T any](in *Instantiator, t *Type, params ...any) (*Constructed[T], error) {
	if t == nil {
		return nil, ErrNilType
	}
	v, deps, err := in.instantiate(t, params)
	if err != nil {
		return nil, &InstantiationError{TypeName: t.name, Cause: err}
	}
	typed, ok := v.(*T)
	if !ok {
		return nil, WrongTargetTypeError{
			Want: reflect.TypeFor[*T]().String(),
			Got:  reflect.TypeOf(v).String(),
		}
	}
	return &Constructed[T]{Val: typed, Deps: deps}, nil
}

// Value returns the constructed value pointer.
func (c *Constructed[T]) Value() *T { return c.Val }

// Has reports whether a service-resolved value exists for the key
// (regardless of type).
func (c *Constructed[T]) Has(key DependencyKey) bool {
	if c == nil || c.Deps == nil {
		return false
	}
	_, ok := c.Deps[key]
	return ok
}

// GetAny returns the raw recorded value without type assertions.
func (c *Constructed[T]) GetAny(key DependencyKey) (any, bool) {
	if c == nil || c.Deps == nil {
		return nil, false
	}
	v, ok := c.Deps[key]
	return v, ok
}

// GetAs returns the recorded value typed as D.
//
// ok is false if the key is missing or the stored value is not a D.
func GetAs[T any, D any](c *Constructed[T], key DependencyKey) (D, bool) {
	var zero D
	if c == nil || c.Deps == nil {
		return zero, false
	}
	raw, ok := c.Deps[key]
	if !ok || raw == nil {
		return zero, false
	}
	d, ok := raw.(D)
	return d, ok
}

// TryGetAs returns the recorded value typed as D.
//
// It returns:
//   - MissingDependencyError if the key is not present
//   - WrongTypeDependencyError if the key exists but is not a D
func TryGetAs[T any, D any](c *Constructed[T], key DependencyKey) (D, error) {
	var zero D
	if c == nil || c.Deps == nil {
		return zero, MissingDependencyError{Key: key}
	}
	raw, ok := c.Deps[key]
	if !ok || raw == nil {
		return zero, MissingDependencyError{Key: key}
	}
	d, ok := raw.(D)
	if !ok {
		return zero, WrongTypeDependencyError{
			Key:     key,
			GotType: reflect.TypeOf(raw).String(),
		}
	}
	return d, nil
}

// MustGetAs returns the recorded value typed as D or panics.
func MustGetAs[T any, D any](c *Constructed[T], key DependencyKey) D {
	d, ok := GetAs[T, D](c, key)
	if !ok {
		panic(MissingDependencyError{Key: key})
	}
	return d
}

// Clone returns a shallow copy of the Constructed value.
//
// The constructed value pointer (Val) is shared.
// The injection record (Deps) is copied into a new map so callers can
// annotate or prune a copy without mutating the original.
func (c *Constructed[T]) Clone() *Constructed[T] {
	if c == nil {
		return nil
	}
	cp := &Constructed[T]{Val: c.Val}
	if len(c.Deps) > 0 {
		cp.Deps = make(map[DependencyKey]any, len(c.Deps))
		for k, v := range c.Deps {
			cp.Deps[k] = v
		}
	} else {
		cp.Deps = make(map[DependencyKey]any)
	}
	return cp
}
