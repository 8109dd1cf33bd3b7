package cereal

import (
	"context"
	"time"
)

// Serializer converts objects into plain mappings using an ordered set of
// field declarations.
//
// Declare all keys before the first call to AsDict. After that a Serializer
// is safe for concurrent use as long as each of its fields is; see the
// individual field types.
type Serializer struct {
	name   string
	keys   []string
	fields map[string]Field
}

// NewSerializer returns an empty serializer. name appears in errors and
// signals.
func NewSerializer(name string) *Serializer {
	return &Serializer{
		name:   name,
		fields: make(map[string]Field),
	}
}

// Declare binds key to f. A nil f means Passthrough. Declaring a key again
// replaces its field but keeps its original position.
// Returns the serializer for chaining.
func (s *Serializer) Declare(key string, f Field) *Serializer {
	if f == nil {
		f = Passthrough()
	}
	if _, ok := s.fields[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.fields[key] = f
	return s
}

// Name returns the serializer name.
func (s *Serializer) Name() string {
	return s.name
}

// Keys returns the declared keys in declaration order.
func (s *Serializer) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Field returns the field bound to key.
func (s *Serializer) Field(key string) (Field, bool) {
	f, ok := s.fields[key]
	return f, ok
}

// AsDict resolves every declared key against obj. It stops at the first
// failing key and returns a *FieldError wrapping the field's error.
func (s *Serializer) AsDict(obj any) (map[string]any, error) {
	ctx := context.Background()
	start := time.Now()
	emitAsDictStart(ctx, s.name, len(s.keys))

	out := make(map[string]any, len(s.keys))
	for _, key := range s.keys {
		v, err := s.fields[key].Value(obj, key)
		if err != nil {
			err = &FieldError{Serializer: s.name, Key: key, Err: err}
			emitAsDictComplete(ctx, s.name, key, time.Since(start), err)
			return nil, err
		}
		out[key] = v
	}

	emitAsDictComplete(ctx, s.name, "", time.Since(start), nil)
	return out, nil
}

// AsDicts serializes each member of a collection, using the same
// enumerable and queryable rules as SerializerField.
func (s *Serializer) AsDicts(objs any) ([]map[string]any, error) {
	out := []map[string]any{}
	err := each(objs, func(item any) error {
		d, err := s.AsDict(item)
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

// Encode serializes obj and marshals the result with codec.
func (s *Serializer) Encode(ctx context.Context, codec Codec, obj any) ([]byte, error) {
	start := time.Now()
	emitEncodeStart(ctx, s.name, codec.ContentType())

	var retErr error
	var retData []byte
	defer func() {
		emitEncodeComplete(ctx, s.name, codec.ContentType(), len(retData), time.Since(start), retErr)
	}()

	dict, err := s.AsDict(obj)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	retData, err = codec.Marshal(dict)
	if err != nil {
		retErr = newCodecError(ErrMarshal, err)
		return nil, retErr
	}
	return retData, nil
}
