package cereal

import (
	"reflect"
)

var (
	errorType  = reflect.TypeFor[error]()
	stringType = reflect.TypeFor[string]()
)

// Lookup resolves name on source, attribute first and key second.
//
// The attribute phase consults an Attributer implementation, then exported
// struct fields (by Go name or `cereal` tag name, promoted fields included),
// then exported zero-argument methods returning (T) or (T, error). The key
// phase consults a Mapping implementation, then Go maps keyed by a string
// kind or by an interface a string satisfies. When both phases miss, Lookup returns a *LookupError.
func Lookup(source any, name string) (any, error) {
	v, found, err := lookupAttr(source, name)
	if err != nil {
		return nil, err
	}
	if found {
		return v, nil
	}

	if v, found := lookupKey(source, name); found {
		return v, nil
	}

	return nil, newLookupError(name, source)
}

// lookupAttr runs the attribute phase.
func lookupAttr(source any, name string) (any, bool, error) {
	if a, ok := source.(Attributer); ok {
		v, found := a.Attr(name)
		return v, found, nil
	}

	rv := reflect.ValueOf(source)
	if !rv.IsValid() {
		return nil, false, nil
	}

	sv := indirect(rv)
	if !sv.IsValid() {
		// nil pointer
		return nil, false, nil
	}

	if sv.Kind() == reflect.Struct {
		if index, ok := attrIndexFor(sv.Type())[name]; ok {
			if f, err := sv.FieldByIndexErr(index); err == nil && f.CanInterface() {
				return f.Interface(), true, nil
			}
		}
	}

	if v, found, err := callMethod(rv, name); found || err != nil {
		return v, found, err
	}
	if rv.Kind() == reflect.Pointer {
		return callMethod(sv, name)
	}
	return nil, false, nil
}

// callMethod invokes an exported zero-argument accessor named name on rv.
func callMethod(rv reflect.Value, name string) (any, bool, error) {
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return nil, false, nil
	}

	mt := m.Type()
	if mt.NumIn() != 0 {
		return nil, false, nil
	}

	switch mt.NumOut() {
	case 1:
		// error-only methods are actions such as Close, not accessors
		if mt.Out(0).Implements(errorType) {
			return nil, false, nil
		}
		return m.Call(nil)[0].Interface(), true, nil
	case 2:
		if !mt.Out(1).Implements(errorType) {
			return nil, false, nil
		}
		out := m.Call(nil)
		if !out[1].IsNil() {
			return nil, true, out[1].Interface().(error)
		}
		return out[0].Interface(), true, nil
	default:
		return nil, false, nil
	}
}

// lookupKey runs the key phase.
func lookupKey(source any, name string) (any, bool) {
	switch m := source.(type) {
	case Mapping:
		return m.Key(name)
	case map[string]any:
		v, ok := m[name]
		return v, ok
	}

	rv := indirect(reflect.ValueOf(source))
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil, false
	}

	var key reflect.Value
	switch keyType := rv.Type().Key(); {
	case keyType.Kind() == reflect.String:
		key = reflect.ValueOf(name).Convert(keyType)
	case keyType.Kind() == reflect.Interface && stringType.AssignableTo(keyType):
		key = reflect.ValueOf(name)
	default:
		return nil, false
	}

	v := rv.MapIndex(key)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

// indirect follows pointers and interfaces. It returns the zero Value on nil.
func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}
