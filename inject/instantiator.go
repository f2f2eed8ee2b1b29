package inject

import (
	"fmt"
	"reflect"
)

// Instantiator creates instances of declared types by picking the
// constructor that best fits a mix of explicit parameters and values
// resolved from a ServiceLookup.
//
// Selection is lenient: explicit values are consumed in order by the first
// parameter that can hold them, every remaining parameter is left to the
// service lookup, and a candidate matches only when all explicit values are
// consumed. Zero matches and multiple matches are both fatal; there is no
// specificity tie-break between overloads.
//
// An Instantiator holds only the ServiceLookup reference and writes no
// state during a call, so a single instance is safe for concurrent use.
type Instantiator struct {
	services ServiceLookup
}

// New returns an Instantiator backed by the given lookup.
//
// A nil lookup is treated as empty: every unresolved parameter is absent.
func New(services ServiceLookup) *Instantiator {
	if services == nil {
		services = emptyLookup
	}
	return &Instantiator{services: services}
}

// NewInstance creates an instance of t, filling constructor parameters from
// the explicit params and the service lookup.
//
// On success the result is the *T the winning constructor returned. Apart
// from the ErrNilType guard, every failure is an *InstantiationError
// wrapping the specific cause; see the error types in this package.
func (in *Instantiator) NewInstance(t *Type, params ...any) (any, error) {
	if t == nil {
		return nil, ErrNilType
	}
	v, _, err := in.instantiate(t, params)
	if err != nil {
		return nil, &InstantiationError{TypeName: t.name, Cause: err}
	}
	return v, nil
}

// NewInstanceOf is NewInstance with a typed result.
func NewInstanceOf[T any](in *Instantiator, t *Type, params ...any) (*T, error) {
	v, err := in.NewInstance(t, params...)
	if err != nil {
		return nil, err
	}
	typed, ok := v.(*T)
	if !ok {
		return nil, WrongTargetTypeError{
			Want: reflect.TypeFor[*T]().String(),
			Got:  reflect.TypeOf(v).String(),
		}
	}
	return typed, nil
}

// instantiate runs the full pipeline: inner-type precheck, constructor
// selection, argument resolution, construction. It also returns the bag of
// service-resolved values for Build.
func (in *Instantiator) instantiate(t *Type, params []any) (any, map[DependencyKey]any, error) {
	// The enclosing-instance check is per type, not per candidate.
	if t.outer != nil {
		if len(params) == 0 || params[0] == nil || !valueAssignable(params[0], t.outer) {
			return nil, nil, MissingEnclosingInstanceError{TypeName: t.name, OuterName: t.outer.String()}
		}
	}

	if len(t.ctors) == 0 {
		if len(params) == 0 {
			return reflect.New(t.goType).Interface(), map[DependencyKey]any{}, nil
		}
		return nil, nil, NoMatchingConstructorError{TypeName: t.name, Params: formatValues(params)}
	}

	ct, err := in.selectConstructor(t, params)
	if err != nil {
		return nil, nil, err
	}
	return in.construct(t, ct, params)
}

// selectConstructor commits to exactly one candidate.
//
// A type with a single declared constructor is committed without matching;
// its per-parameter diagnostics come from resolution instead, which is what
// makes the selector lenient. With several candidates, matching considers
// only the explicit values (the lookup is not probed speculatively).
func (in *Instantiator) selectConstructor(t *Type, params []any) (*constructor, error) {
	if len(t.ctors) == 1 {
		return &t.ctors[0], nil
	}

	var match *constructor
	for i := range t.ctors {
		if !matches(&t.ctors[i], params) {
			continue
		}
		if match != nil {
			return nil, AmbiguousConstructorError{TypeName: t.name, Params: formatValues(params)}
		}
		match = &t.ctors[i]
	}
	if match == nil {
		return nil, NoMatchingConstructorError{TypeName: t.name, Params: formatValues(params)}
	}
	return match, nil
}

// matches reports whether a candidate can consume every explicit value.
//
// Explicit values are consumed in order by the first parameter that can
// hold them; a parameter that cannot hold the next value is left for the
// service lookup. A candidate with fewer parameters than explicit values is
// discarded outright.
func matches(ct *constructor, params []any) bool {
	if len(ct.params) < len(params) {
		return false
	}
	next := 0
	for _, pt := range ct.params {
		if next < len(params) && valueAssignable(params[next], pt) {
			next++
		}
	}
	return next == len(params)
}

// construct resolves every parameter of the committed candidate and invokes
// it. Resolution failures carry 1-based parameter positions.
func (in *Instantiator) construct(t *Type, ct *constructor, params []any) (any, map[DependencyKey]any, error) {
	if len(ct.params) < len(params) {
		return nil, nil, NoMatchingConstructorError{TypeName: t.name, Params: formatValues(params)}
	}

	args := make([]reflect.Value, len(ct.params))
	deps := map[DependencyKey]any{}
	next := 0
	for i, pt := range ct.params {
		// A slot is forced to take the next explicit value when the
		// remaining values exactly cover the remaining slots.
		forced := len(ct.params)-i == len(params)-next

		if next < len(params) {
			v := params[next]
			switch {
			case v == nil && canHoldNil(pt):
				args[i] = reflect.Zero(pt)
				next++
				continue
			case v != nil && reflect.TypeOf(v).AssignableTo(pt):
				args[i] = reflect.ValueOf(v)
				next++
				continue
			case forced && v == nil:
				return nil, nil, NilArgumentError{Index: i + 1, TypeName: pt.String()}
			case forced:
				return nil, nil, ArgumentMismatchError{Index: i + 1, Value: formatValue(v), TypeName: pt.String()}
			}
		}

		v, err := in.resolveService(pt, i)
		if err != nil {
			return nil, nil, err
		}
		args[i] = reflect.ValueOf(v)
		deps[Key(pt.String())] = v
	}

	out, err := ct.invoke(args)
	if err != nil {
		return nil, nil, ConstructionError{TypeName: t.name, Cause: err}
	}
	return out, deps, nil
}

// resolveService fetches one parameter from the lookup. slot is 0-based.
func (in *Instantiator) resolveService(pt reflect.Type, slot int) (any, error) {
	v, ok, err := in.services.Find(pt)
	if err != nil {
		return nil, LookupFailedError{Index: slot + 1, TypeName: pt.String(), Cause: err}
	}
	if !ok || v == nil {
		// An absent or nil resolution can never fill a parameter that
		// cannot hold nil.
		if !canHoldNil(pt) {
			return nil, NilArgumentError{Index: slot + 1, TypeName: pt.String()}
		}
		return nil, UnresolvedParameterError{Index: slot + 1, TypeName: pt.String()}
	}
	if !reflect.TypeOf(v).AssignableTo(pt) {
		return nil, ArgumentMismatchError{Index: slot + 1, Value: formatValue(v), TypeName: pt.String()}
	}
	return v, nil
}

// invoke calls the constructor and converts panics into errors, so a
// misbehaving constructor cannot take down the caller.
func (ct *constructor) invoke(args []reflect.Value) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrConstructorPanic, rec)
		}
	}()

	results := ct.fn.Call(args)
	if ct.errOut && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	if results[0].IsNil() {
		return nil, ErrNilInstance
	}
	return results[0].Interface(), nil
}
