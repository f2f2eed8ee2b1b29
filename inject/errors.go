package inject

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrNilType is returned when NewInstance is called with a nil *Type.
	ErrNilType = errors.New("inject: nil type")

	// ErrConstructorPanic is the sentinel wrapped into a ConstructionError
	// when a constructor body panics instead of returning.
	ErrConstructorPanic = errors.New("inject: panic during construction")

	// ErrNilInstance is the sentinel wrapped into a ConstructionError when a
	// constructor returns a nil instance without an error.
	ErrNilInstance = errors.New("inject: constructor returned nil instance")
)

// InstantiationError is the single outer classification for every failed
// NewInstance call. The specific cause is always one of the typed errors
// below and is reachable via errors.As / errors.Is through Unwrap.
type InstantiationError struct {
	// TypeName is the target type's name as reported by Type.Name().
	TypeName string

	// Cause is the specific classified failure.
	Cause error
}

// Error implements the error interface.
func (e *InstantiationError) Error() string {
	// Example: inject: could not create instance of type "main.Conn": multiple constructors match parameters: ["a"]
	return "inject: could not create instance of type " + strconv.Quote(e.TypeName) + ": " + e.Cause.Error()
}

// Unwrap returns the specific cause.
func (e *InstantiationError) Unwrap() error { return e.Cause }

// NoMatchingConstructorError is returned (wrapped) when the explicit
// parameters satisfy none of the declared constructors.
type NoMatchingConstructorError struct {
	// TypeName is the target type's name.
	TypeName string

	// Params is the rendered explicit parameter list, e.g. [12, "a"].
	Params string
}

// Error implements the error interface.
func (e NoMatchingConstructorError) Error() string {
	// Example: no constructors match parameters: [12, "a"]
	return "no constructors match parameters: " + e.Params
}

// AmbiguousConstructorError is returned (wrapped) when the explicit
// parameters satisfy more than one declared constructor. Ambiguity is always
// fatal; there is no specificity-based tie-break.
type AmbiguousConstructorError struct {
	// TypeName is the target type's name.
	TypeName string

	// Params is the rendered explicit parameter list.
	Params string
}

// Error implements the error interface.
func (e AmbiguousConstructorError) Error() string {
	// Example: multiple constructors match parameters: ["a"]
	return "multiple constructors match parameters: " + e.Params
}

// ArgumentMismatchError is returned (wrapped) when an explicit value cannot
// be used for the parameter it lands on.
type ArgumentMismatchError struct {
	// Index is the 1-based constructor parameter position.
	Index int

	// Value is the rejected value's rendered form.
	Value string

	// TypeName is the required parameter type's name.
	TypeName string
}

// Error implements the error interface.
func (e ArgumentMismatchError) Error() string {
	// Example: value "b" is not assignable to parameter 2 of type "int"
	return "value " + e.Value + " is not assignable to parameter " + strconv.Itoa(e.Index) +
		" of type " + strconv.Quote(e.TypeName)
}

// NilArgumentError is returned (wrapped) when a parameter whose type cannot
// hold nil receives nil, either from an explicit value or from a nil/absent
// service resolution.
type NilArgumentError struct {
	// Index is the 1-based constructor parameter position.
	Index int

	// TypeName is the parameter type's name.
	TypeName string
}

// Error implements the error interface.
func (e NilArgumentError) Error() string {
	// Example: nil value provided for parameter 2 of type "bool"
	return "nil value provided for parameter " + strconv.Itoa(e.Index) +
		" of type " + strconv.Quote(e.TypeName)
}

// UnresolvedParameterError is returned (wrapped) when a committed
// constructor has a parameter that is neither covered by an explicit value
// nor available from the service lookup.
type UnresolvedParameterError struct {
	// Index is the 1-based constructor parameter position.
	Index int

	// TypeName is the parameter type's name.
	TypeName string
}

// Error implements the error interface.
func (e UnresolvedParameterError) Error() string {
	// Example: unable to resolve parameter 1 of type "*main.DB"
	return "unable to resolve parameter " + strconv.Itoa(e.Index) +
		" of type " + strconv.Quote(e.TypeName)
}

// MissingEnclosingInstanceError is returned (wrapped) when an inner type is
// instantiated without its enclosing instance as the first explicit
// parameter, or with a first parameter of the wrong type.
type MissingEnclosingInstanceError struct {
	// TypeName is the inner type's name.
	TypeName string

	// OuterName is the required enclosing type's name.
	OuterName string
}

// Error implements the error interface.
func (e MissingEnclosingInstanceError) Error() string {
	// Example: inner type requires an enclosing "*main.House" instance as its first parameter
	return "inner type requires an enclosing " + strconv.Quote(e.OuterName) +
		" instance as its first parameter"
}

// ConstructionError is returned (wrapped) when the selected constructor
// itself fails: it returned an error, returned a nil instance, or panicked.
// The original cause is preserved, never reclassified.
type ConstructionError struct {
	// TypeName is the target type's name.
	TypeName string

	// Cause is the constructor's own failure.
	Cause error
}

// Error implements the error interface.
func (e ConstructionError) Error() string {
	// Example: constructor failed: connect: refused
	return "constructor failed: " + e.Cause.Error()
}

// Unwrap returns the constructor's own failure.
func (e ConstructionError) Unwrap() error { return e.Cause }

// LookupFailedError is returned (wrapped) when the service lookup itself
// errors while resolving a parameter, as opposed to merely reporting the
// type absent.
type LookupFailedError struct {
	// Index is the 1-based constructor parameter position.
	Index int

	// TypeName is the parameter type's name.
	TypeName string

	// Cause is the lookup's failure.
	Cause error
}

// Error implements the error interface.
func (e LookupFailedError) Error() string {
	// Example: service lookup failed for parameter 1 of type "*main.DB": boom
	return "service lookup failed for parameter " + strconv.Itoa(e.Index) +
		" of type " + strconv.Quote(e.TypeName) + ": " + e.Cause.Error()
}

// Unwrap returns the lookup's failure.
func (e LookupFailedError) Unwrap() error { return e.Cause }

// InvalidConstructorError is returned by TypeFor / InnerTypeFor when a
// declared constructor does not have an acceptable shape.
type InvalidConstructorError struct {
	// TypeName is the target type's name.
	TypeName string

	// Reason describes what is wrong with the declaration.
	Reason string
}

// Error implements the error interface.
func (e InvalidConstructorError) Error() string {
	// Example: inject: invalid constructor for type "main.Room": first parameter must be the enclosing "*main.House"
	return "inject: invalid constructor for type " + strconv.Quote(e.TypeName) + ": " + e.Reason
}

// WrongTargetTypeError is returned by the typed entry points (Build,
// NewInstanceOf) when the Type descriptor does not construct the requested
// Go type.
type WrongTargetTypeError struct {
	// Want is the requested type's name.
	Want string

	// Got is the constructed value's type name.
	Got string
}

// Error implements the error interface.
func (e WrongTargetTypeError) Error() string {
	// Example: inject: constructed value of type "*main.DB" is not "*main.Logger"
	return "inject: constructed value of type " + strconv.Quote(e.Got) + " is not " + strconv.Quote(e.Want)
}

// MissingDependencyError is returned by Constructed accessors when a
// recorded dependency key is not present.
type MissingDependencyError struct{ Key DependencyKey }

// Error implements the error interface.
func (e MissingDependencyError) Error() string {
	// Example: inject: dependency "*main.DB" missing
	return "inject: dependency " + strconv.Quote(string(e.Key)) + " missing"
}

// WrongTypeDependencyError is returned by Constructed accessors when a
// recorded dependency exists but is of a different type.
type WrongTypeDependencyError struct {
	// Key is the dependency key requested.
	Key DependencyKey

	// GotType is the stored value's type name.
	GotType string
}

// Error implements the error interface.
func (e WrongTypeDependencyError) Error() string {
	// Example: inject: dependency "*main.DB" has wrong type (*main.Logger)
	return "inject: dependency " + strconv.Quote(string(e.Key)) + " has wrong type (" + e.GotType + ")"
}

// formatValue renders a single explicit parameter for diagnostics.
//
// Strings are quoted so that the value's textual form is unambiguous in the
// rendered parameter list; nil renders as the keyword.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatValues renders the explicit parameter list, e.g. [12, "a", nil].
func formatValues(vals []any) string {
	out := "["
	for i, v := range vals {
		if i > 0 {
			out += ", "
		}
		out += formatValue(v)
	}
	return out + "]"
}
