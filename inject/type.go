package inject

import (
	"reflect"
)

// Type describes an instantiable type: the Go struct type it constructs,
// its declared constructors, and (for inner types) the enclosing type whose
// instance must be supplied as the first explicit parameter.
//
// A Type is immutable once declared and safe to share across goroutines and
// across Instantiator instances. Declare package-level descriptors once and
// reuse them:
//
//	var reportType = inject.MustTypeFor[Report](NewReport)
type Type struct {
	name   string
	goType reflect.Type // the struct type T
	outer  reflect.Type // *O for inner types, nil otherwise
	ctors  []constructor
}

// constructor is one declared candidate: the constructor func plus its
// formal parameter types, enumerated once at declaration time.
type constructor struct {
	fn     reflect.Value
	params []reflect.Type
	errOut bool
}

// TypeFor declares a top-level type T with zero or more constructors.
//
// Each constructor must be a non-nil func returning *T or (*T, error). Its
// parameters become the candidate's formal parameter list. A type declared
// with no constructors can still be instantiated with no explicit
// parameters; it is built as a zero value.
func TypeFor[T any](ctors ...any) (*Type, error) {
	return declare[T](nil, ctors)
}

// MustTypeFor is TypeFor but panics on a declaration error.
//
// Useful for package-level descriptors where a bad declaration is a
// programming error.
func MustTypeFor[T any](ctors ...any) *Type {
	t, err := TypeFor[T](ctors...)
	if err != nil {
		panic(err)
	}
	return t
}

// InnerTypeFor declares an inner type T bound to an enclosing type O.
//
// Every constructor must take *O as its first parameter; NewInstance
// requires the caller to pass the enclosing *O instance as the first
// explicit parameter. At least one constructor is required, because the
// zero-value path cannot carry an enclosing instance.
func InnerTypeFor[T any, O any](ctors ...any) (*Type, error) {
	outer := reflect.PointerTo(reflect.TypeFor[O]())
	if len(ctors) == 0 {
		name := reflect.TypeFor[T]().String()
		return nil, InvalidConstructorError{TypeName: name, Reason: "inner type requires at least one constructor"}
	}
	return declare[T](outer, ctors)
}

// MustInnerTypeFor is InnerTypeFor but panics on a declaration error.
func MustInnerTypeFor[T any, O any](ctors ...any) *Type {
	t, err := InnerTypeFor[T, O](ctors...)
	if err != nil {
		panic(err)
	}
	return t
}

func declare[T any](outer reflect.Type, ctors []any) (*Type, error) {
	goType := reflect.TypeFor[T]()
	t := &Type{name: goType.String(), goType: goType, outer: outer}

	want := reflect.PointerTo(goType)
	for _, c := range ctors {
		ct, err := newConstructor(t.name, want, outer, c)
		if err != nil {
			return nil, err
		}
		t.ctors = append(t.ctors, ct)
	}
	return t, nil
}

// newConstructor validates one declared constructor func and captures its
// formal parameter list.
func newConstructor(typeName string, want, outer reflect.Type, c any) (constructor, error) {
	if c == nil {
		return constructor{}, InvalidConstructorError{TypeName: typeName, Reason: "nil constructor"}
	}
	fn := reflect.ValueOf(c)
	ft := fn.Type()
	if ft.Kind() != reflect.Func {
		return constructor{}, InvalidConstructorError{TypeName: typeName, Reason: "not a function: " + ft.String()}
	}
	if fn.IsNil() {
		return constructor{}, InvalidConstructorError{TypeName: typeName, Reason: "nil constructor"}
	}
	if ft.IsVariadic() {
		return constructor{}, InvalidConstructorError{TypeName: typeName, Reason: "variadic constructors are not supported"}
	}

	switch ft.NumOut() {
	case 1:
		if ft.Out(0) != want {
			return constructor{}, InvalidConstructorError{
				TypeName: typeName,
				Reason:   "must return " + want.String() + " or (" + want.String() + ", error)",
			}
		}
	case 2:
		if ft.Out(0) != want || ft.Out(1) != errType {
			return constructor{}, InvalidConstructorError{
				TypeName: typeName,
				Reason:   "must return " + want.String() + " or (" + want.String() + ", error)",
			}
		}
	default:
		return constructor{}, InvalidConstructorError{
			TypeName: typeName,
			Reason:   "must return " + want.String() + " or (" + want.String() + ", error)",
		}
	}

	if outer != nil {
		if ft.NumIn() == 0 || ft.In(0) != outer {
			return constructor{}, InvalidConstructorError{
				TypeName: typeName,
				Reason:   "first parameter must be the enclosing " + outer.String(),
			}
		}
	}

	params := make([]reflect.Type, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}
	return constructor{fn: fn, params: params, errOut: ft.NumOut() == 2}, nil
}

var errType = reflect.TypeFor[error]()

// Name returns the type's name, e.g. "main.Report".
func (t *Type) Name() string { return t.name }

// String implements fmt.Stringer.
func (t *Type) String() string { return t.name }

// GoType returns the underlying struct type T.
func (t *Type) GoType() reflect.Type { return t.goType }

// IsInner reports whether the type is bound to an enclosing instance.
func (t *Type) IsInner() bool { return t.outer != nil }

// OuterName returns the enclosing type's name, or "" for top-level types.
func (t *Type) OuterName() string {
	if t.outer == nil {
		return ""
	}
	return t.outer.String()
}

// NumConstructors returns the number of declared constructor candidates.
func (t *Type) NumConstructors() int { return len(t.ctors) }

// canHoldNil reports whether a parameter type accepts nil. Everything else
// is treated as primitive for the nil-argument rule.
func canHoldNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// valueAssignable reports whether a non-nil explicit value can be used for
// a parameter of type t.
func valueAssignable(v any, t reflect.Type) bool {
	if v == nil {
		return canHoldNil(t)
	}
	return reflect.TypeOf(v).AssignableTo(t)
}
