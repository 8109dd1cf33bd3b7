package cereal

import (
	"fmt"
	"reflect"
)

// TransformField rewrites the value resolved by another field.
//
// Strings, byte slices, string-kinded types, and fmt.Stringer values are
// transformed; []string is transformed element-wise; nil passes through.
// Any other type fails with a *TransformError. Errors from the inner field
// are returned as is.
type TransformField struct {
	inner    Field
	op       string
	sentinel error
	fn       func(string) (string, error)
}

// Masked applies m to the value resolved by inner.
func Masked(inner Field, m Masker) *TransformField {
	return newTransformField(inner, "mask", ErrMask, func(s string) (string, error) {
		return m.Mask(s), nil
	})
}

// Redacted replaces the value resolved by inner with replacement.
func Redacted(inner Field, replacement string) *TransformField {
	return newTransformField(inner, "redact", ErrRedact, func(string) (string, error) {
		return replacement, nil
	})
}

// Hashed replaces the value resolved by inner with its hash.
func Hashed(inner Field, h Hasher) *TransformField {
	return newTransformField(inner, "hash", ErrHash, func(s string) (string, error) {
		return h.Hash([]byte(s))
	})
}

// Encrypted replaces the value resolved by inner with EncryptValue of it.
func Encrypted(inner Field, e Encryptor) *TransformField {
	return newTransformField(inner, "encrypt", ErrEncrypt, func(s string) (string, error) {
		return EncryptValue(e, s)
	})
}

func newTransformField(inner Field, op string, sentinel error, fn func(string) (string, error)) *TransformField {
	if inner == nil {
		inner = Passthrough()
	}
	return &TransformField{inner: inner, op: op, sentinel: sentinel, fn: fn}
}

// Value resolves the inner field and transforms the result.
func (f *TransformField) Value(source any, name string) (any, error) {
	v, err := f.inner.Value(source, name)
	if err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return f.apply(name, x)
	case []byte:
		return f.apply(name, string(x))
	case []string:
		out := make([]string, len(x))
		for i, s := range x {
			t, err := f.apply(fmt.Sprintf("%s[%d]", name, i), s)
			if err != nil {
				return nil, err
			}
			out[i] = t
		}
		return out, nil
	case fmt.Stringer:
		return f.apply(name, x.String())
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return f.apply(name, rv.String())
	}
	return nil, newTransformError(f.sentinel, f.op, name, fmt.Errorf("unsupported type %T", v))
}

func (f *TransformField) apply(name, s string) (string, error) {
	out, err := f.fn(s)
	if err != nil {
		return "", newTransformError(f.sentinel, f.op, name, err)
	}
	return out, nil
}
