package cereal

import (
	"context"
	"fmt"
	"reflect"

	"github.com/zoobzio/sentinel"
)

func init() {
	for _, tag := range knownTags {
		sentinel.Tag(tag)
	}
}

// Option configures Infer and Use.
type Option func(*inferConfig)

type inferConfig struct {
	name       string
	encryptors map[EncryptAlgo]Encryptor
	hashers    map[HashAlgo]Hasher
	maskers    map[MaskType]Masker
}

// WithName overrides the serializer name, which defaults to the type name.
func WithName(name string) Option {
	return func(c *inferConfig) { c.name = name }
}

// WithEncryptor registers the encryptor used for `cereal.encrypt` tags.
func WithEncryptor(algo EncryptAlgo, enc Encryptor) Option {
	return func(c *inferConfig) { c.encryptors[algo] = enc }
}

// WithHasher replaces the builtin hasher for algo.
func WithHasher(algo HashAlgo, h Hasher) Option {
	return func(c *inferConfig) { c.hashers[algo] = h }
}

// WithMasker replaces the builtin masker for mt.
func WithMasker(mt MaskType, m Masker) Option {
	return func(c *inferConfig) { c.maskers[mt] = m }
}

// FromField resolves a key by looking up a different attribute name.
type FromField struct {
	attr string
}

// From returns a field that reads attr off the source, whatever the key.
func From(attr string) FromField {
	return FromField{attr: attr}
}

// Value returns Lookup(source, attr).
func (f FromField) Value(source any, _ string) (any, error) {
	return Lookup(source, f.attr)
}

// Infer builds a serializer from the exported fields of struct type T, in
// declaration order. See the package documentation for the tag syntax.
//
// Tag values are validated here: unknown algorithms and mask types fail
// with ErrInvalidTag, an encrypt tag without a matching WithEncryptor fails
// with ErrMissingEncryptor, and so on.
func Infer[T any](opts ...Option) (*Serializer, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cereal: cannot infer a serializer for non-struct type %s", rt)
	}

	cfg := &inferConfig{
		name:       rt.Name(),
		encryptors: make(map[EncryptAlgo]Encryptor),
		hashers:    builtinHashers(),
		maskers:    builtinMaskers(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	meta := sentinel.Scan[T]()
	s := NewSerializer(cfg.name)

	for _, field := range meta.Fields {
		if !isExportedName(field.Name) {
			continue
		}

		tags := mergeTags(rt, field)

		key := field.Name
		if alias := tagName(tags[tagKey]); alias == "-" {
			continue
		} else if alias != "" {
			key = alias
		}
		if _, dup := s.Field(key); dup {
			return nil, newConfigError(ErrInvalidTag, "", fmt.Sprintf("%s (duplicate key %q)", field.Name, key))
		}

		f, err := cfg.fieldFor(field.Name, tags)
		if err != nil {
			return nil, err
		}
		s.Declare(key, f)
	}

	emitSerializerCreated(context.Background(), s.name, len(s.keys))
	return s, nil
}

// fieldFor builds the field for one struct field. At most one transform tag
// may be present.
func (c *inferConfig) fieldFor(name string, tags map[string]string) (Field, error) {
	var base Field = From(name)

	var transforms []string
	for _, tag := range []string{tagMask, tagRedact, tagHash, tagEncrypt} {
		if _, ok := tags[tag]; ok {
			transforms = append(transforms, tag)
		}
	}

	switch len(transforms) {
	case 0:
		return base, nil
	case 1:
	default:
		return nil, newConfigError(ErrInvalidTag, "", fmt.Sprintf("%s (conflicting tags %v)", name, transforms))
	}

	val := tags[transforms[0]]
	switch transforms[0] {
	case tagMask:
		mt := MaskType(val)
		if !IsValidMaskType(mt) {
			return nil, newConfigError(ErrInvalidTag, val, name)
		}
		m, ok := c.maskers[mt]
		if !ok || m == nil {
			return nil, newConfigError(ErrMissingMasker, val, name)
		}
		return Masked(base, m), nil

	case tagRedact:
		return Redacted(base, val), nil

	case tagHash:
		algo := HashAlgo(val)
		if !IsValidHashAlgo(algo) {
			return nil, newConfigError(ErrInvalidTag, val, name)
		}
		h, ok := c.hashers[algo]
		if !ok || h == nil {
			return nil, newConfigError(ErrMissingHasher, val, name)
		}
		return Hashed(base, h), nil

	default:
		algo := EncryptAlgo(val)
		if !IsValidEncryptAlgo(algo) {
			return nil, newConfigError(ErrInvalidTag, val, name)
		}
		e, ok := c.encryptors[algo]
		if !ok || e == nil {
			return nil, newConfigError(ErrMissingEncryptor, val, name)
		}
		return Encrypted(base, e), nil
	}
}

// mergeTags prefers the tags sentinel captured and fills in any known tag it
// did not.
func mergeTags(rt reflect.Type, field sentinel.FieldMetadata) map[string]string {
	tags := make(map[string]string, len(knownTags))
	var parsed map[string]string
	if sf, ok := rt.FieldByName(field.Name); ok {
		parsed = parseTags(sf.Tag)
	}
	for _, key := range knownTags {
		if val, ok := field.Tags[key]; ok {
			tags[key] = val
		} else if val, ok := parsed[key]; ok {
			tags[key] = val
		}
	}
	return tags
}
