// Package cereal converts objects into plain key-value mappings through
// declarative fields.
//
// A Serializer holds an ordered set of output keys, each bound to a Field.
// For every key the serializer calls field.Value(source, key) and stores the
// result, producing a map[string]any ready for any encoder.
//
// # Fields
//
//   - Passthrough() reads the key off the source: struct field, `cereal`
//     tag alias, or zero-argument method first, then map key.
//   - Constant(v) always yields v.
//   - Nested(factory) serializes a related object, or each member of a
//     related collection or Relation, with a nested serializer.
//   - Iterate(seq), IterateSlice(items) yield the next element of a
//     sequence per call, then nil once it is exhausted.
//
// # Basic Usage
//
//	tags := func() cereal.AsDicter {
//	    return cereal.NewSerializer("Tag").Declare("name", nil)
//	}
//
//	books := cereal.NewSerializer("Book").
//	    Declare("schema", cereal.Constant("v1")).
//	    Declare("Title", nil).
//	    Declare("tags", cereal.Nested(tags))
//
//	dict, err := books.AsDict(book)
//
// # Struct Tags
//
// Infer and Use build a serializer from a struct type:
//
//	type User struct {
//	    ID       string `cereal:"id"`
//	    Email    string `cereal:"email" cereal.mask:"email"`
//	    Password string `cereal:"password" cereal.redact:"***"`
//	    Token    string `cereal:"-"`
//	}
//
//	s, err := cereal.Use[User]()
//
// # Codec Providers
//
// Serializer.Encode marshals the mapping with a Codec. Implementations are
// available as submodules:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
package cereal

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
