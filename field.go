package cereal

import (
	"context"
	"iter"
	"sync"
)

// Field resolves the value of one output key from a source object.
// The serializer calls Value once per key per pass, passing the key as name.
type Field interface {
	Value(source any, name string) (any, error)
}

// AsDicter converts one object into a plain mapping.
// *Serializer is the usual implementation.
type AsDicter interface {
	AsDict(obj any) (map[string]any, error)
}

// PassthroughField resolves a key by looking up the same name on the source.
// It is the default for keys declared without a field.
type PassthroughField struct{}

// Passthrough returns a field that reads name off the source.
func Passthrough() PassthroughField {
	return PassthroughField{}
}

// Value returns Lookup(source, name).
func (PassthroughField) Value(source any, name string) (any, error) {
	return Lookup(source, name)
}

// ConstantField returns the same value for every source.
type ConstantField struct {
	value any
}

// Constant returns a field that always yields v. v may be nil.
func Constant(v any) *ConstantField {
	return &ConstantField{value: v}
}

// Value returns the stored value; source and name are ignored.
func (f *ConstantField) Value(_ any, _ string) (any, error) {
	return f.value, nil
}

// SerializerField serializes a related object, or each member of a related
// collection, with a nested serializer.
type SerializerField struct {
	delegate AsDicter
}

// Nested builds the delegate once by calling factory and returns a field
// that uses it for every call. It panics if factory is nil or returns nil.
func Nested(factory func() AsDicter) *SerializerField {
	if factory == nil {
		panic("cereal: Nested called with nil factory")
	}
	delegate := factory()
	if delegate == nil {
		panic("cereal: Nested factory returned nil")
	}
	return &SerializerField{delegate: delegate}
}

// Value looks up name on source and serializes it according to its shape:
// enumerable and queryable values yield []map[string]any in enumeration
// order, anything else a single map[string]any. Lookup and delegate errors
// are returned as is.
func (f *SerializerField) Value(source any, name string) (any, error) {
	related, err := Lookup(source, name)
	if err != nil {
		return nil, err
	}

	if ShapeOf(related) == ShapeSingle {
		return f.delegate.AsDict(related)
	}

	out := []map[string]any{}
	err = each(related, func(item any) error {
		d, err := f.delegate.AsDict(item)
		if err != nil {
			return err
		}
		out = append(out, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cursor advances over a sequence one element at a time.
// Next reports false once the sequence has ended.
type Cursor interface {
	Next() (any, bool)
}

// IteratorField yields successive elements of a sequence, one per call,
// then nil forever once the sequence ends.
//
// The field is either active (holding a cursor) or exhausted (holding
// nothing). The first failed advance moves it to exhausted, and it never
// goes back. Calls are serialized by a per-instance mutex, so each element
// is observed by exactly one caller.
type IteratorField struct {
	mu     sync.Mutex
	cursor Cursor
	stop   func()
}

// Iterate returns a field that pulls from seq. seq may be infinite; call
// Close to release it before it ends.
func Iterate[T any](seq iter.Seq[T]) *IteratorField {
	next, stop := iter.Pull(seq)
	return &IteratorField{
		cursor: pullCursor[T](next),
		stop:   stop,
	}
}

// IterateSlice returns a field that yields the items in order.
func IterateSlice[T any](items []T) *IteratorField {
	return &IteratorField{cursor: &sliceCursor[T]{items: items}}
}

// IterateCursor returns a field that drains c. A nil cursor starts exhausted.
func IterateCursor(c Cursor) *IteratorField {
	return &IteratorField{cursor: c}
}

// Value returns the next element, or nil once the sequence is exhausted.
// source and name are ignored.
func (f *IteratorField) Value(_ any, name string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cursor == nil {
		return nil, nil
	}

	if v, ok := f.cursor.Next(); ok {
		return v, nil
	}

	f.release()
	emitIteratorExhausted(context.Background(), name)
	return nil, nil
}

// Exhausted reports whether the sequence has ended or the field was closed.
func (f *IteratorField) Exhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor == nil
}

// Close releases the cursor and moves the field to exhausted.
// It is safe to call more than once.
func (f *IteratorField) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release()
}

func (f *IteratorField) release() {
	if f.stop != nil {
		f.stop()
		f.stop = nil
	}
	f.cursor = nil
}

type pullCursor[T any] func() (T, bool)

func (c pullCursor[T]) Next() (any, bool) {
	v, ok := c()
	if !ok {
		return nil, false
	}
	return v, true
}

type sliceCursor[T any] struct {
	items []T
	pos   int
}

func (c *sliceCursor[T]) Next() (any, bool) {
	if c.pos >= len(c.items) {
		return nil, false
	}
	v := c.items[c.pos]
	c.pos++
	return v, true
}
