package cereal

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// Shape classifies a related value for nested serialization.
type Shape uint8

// Shapes are tested in declaration order: a value that is both enumerable and
// queryable is treated as enumerable, and anything that is neither is a
// single object.
const (
	ShapeSingle Shape = iota
	ShapeEnumerable
	ShapeQueryable
)

func (s Shape) String() string {
	switch s {
	case ShapeEnumerable:
		return "enumerable"
	case ShapeQueryable:
		return "queryable"
	default:
		return "single"
	}
}

// Enumerable is a collection that is not a Go slice but can be walked once.
// Each stops at the first error returned by fn and returns it.
type Enumerable interface {
	Each(fn func(item any) error) error
}

// QuerySet is the query side of a Relation.
type QuerySet interface {
	All() ([]any, error)
}

// Relation is a lazy related collection, such as an ORM relation proxy,
// that is enumerated by querying it rather than by iterating it directly.
type Relation interface {
	Objects() QuerySet
}

// ShapeOf classifies v. Byte slices are scalar values, not collections, and
// maps are single objects unless their element type is struct{} (a set).
// Any iter.Seq[T] is enumerable.
func ShapeOf(v any) Shape {
	switch v.(type) {
	case nil, []byte:
		return ShapeSingle
	case Enumerable:
		return ShapeEnumerable
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return ShapeEnumerable
	case reflect.Func:
		if isSeq(rv.Type()) {
			return ShapeEnumerable
		}
	case reflect.Map:
		if isSet(rv.Type()) {
			return ShapeEnumerable
		}
	}

	if _, ok := v.(Relation); ok {
		return ShapeQueryable
	}
	return ShapeSingle
}

// each walks an enumerable or queryable value in order.
func each(v any, fn func(item any) error) error {
	switch c := v.(type) {
	case Enumerable:
		return c.Each(fn)
	case []any:
		for _, item := range c {
			if err := fn(item); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		if isSeq(rv.Type()) {
			if rv.IsNil() {
				return nil
			}
			for item := range rv.Seq() {
				if err := fn(item.Interface()); err != nil {
					return err
				}
			}
			return nil
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := fn(rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if isSet(rv.Type()) {
			for _, key := range sortedKeys(rv) {
				if err := fn(key.Interface()); err != nil {
					return err
				}
			}
			return nil
		}
	}

	if r, ok := v.(Relation); ok {
		items, err := r.Objects().All()
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := fn(item); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("%T is not a collection", v)
}

// isSeq reports whether rt has the shape of iter.Seq[T]:
// func(yield func(T) bool).
func isSeq(rt reflect.Type) bool {
	if rt.NumIn() != 1 || rt.NumOut() != 0 || rt.IsVariadic() {
		return false
	}
	yield := rt.In(0)
	return yield.Kind() == reflect.Func &&
		yield.NumIn() == 1 && yield.NumOut() == 1 &&
		yield.Out(0).Kind() == reflect.Bool
}

func isSet(rt reflect.Type) bool {
	elem := rt.Elem()
	return elem.Kind() == reflect.Struct && elem.NumField() == 0
}

// sortedKeys orders set members so repeated serializations agree.
func sortedKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		switch {
		case a.CanInt():
			return cmp.Compare(a.Int(), b.Int())
		case a.CanUint():
			return cmp.Compare(a.Uint(), b.Uint())
		case a.CanFloat():
			return cmp.Compare(a.Float(), b.Float())
		case a.Kind() == reflect.String:
			return cmp.Compare(a.String(), b.String())
		default:
			return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		}
	})
	return keys
}
