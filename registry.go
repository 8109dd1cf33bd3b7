package cereal

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/zoobzio/sentinel"
)

// attrIndex maps an attribute name to its reflect.Value.FieldByIndex path.
type attrIndex map[string][]int

var (
	attrIndexes  = make(map[reflect.Type]attrIndex)
	attrIndexMu  sync.RWMutex
	serializers  = make(map[reflect.Type]*Serializer)
	serializerMu sync.RWMutex
)

// attrIndexFor returns the cached attribute index for a struct type,
// building it on first use.
func attrIndexFor(rt reflect.Type) attrIndex {
	// Fast path: read-lock cache check
	attrIndexMu.RLock()
	if idx, ok := attrIndexes[rt]; ok {
		attrIndexMu.RUnlock()
		return idx
	}
	attrIndexMu.RUnlock()

	attrIndexMu.Lock()
	defer attrIndexMu.Unlock()

	// Double-check pattern
	if idx, ok := attrIndexes[rt]; ok {
		return idx
	}

	idx := make(attrIndex)
	buildAttrIndex(idx, rt, nil, make(map[reflect.Type]bool))
	attrIndexes[rt] = idx
	return idx
}

// buildAttrIndex records direct fields before promoted ones so that a
// shallower field always shadows a deeper one with the same name.
func buildAttrIndex(idx attrIndex, rt reflect.Type, parent []int, seen map[reflect.Type]bool) {
	if seen[rt] {
		return
	}
	seen[rt] = true

	meta := scanType(rt)
	var embedded []sentinel.FieldMetadata

	for _, field := range meta.Fields {
		fullIndex := append(append([]int{}, parent...), field.Index...)

		if rt.FieldByIndex(field.Index).Anonymous {
			embedded = append(embedded, field)
		}
		if !isExportedName(field.Name) {
			continue
		}

		if _, ok := idx[field.Name]; !ok {
			idx[field.Name] = fullIndex
		}
		if alias := tagName(field.Tags[tagKey]); alias != "" && alias != "-" {
			if _, ok := idx[alias]; !ok {
				idx[alias] = fullIndex
			}
		}
	}

	for _, field := range embedded {
		et := field.ReflectType
		if et.Kind() == reflect.Pointer {
			et = et.Elem()
		}
		if et.Kind() != reflect.Struct {
			continue
		}
		buildAttrIndex(idx, et, append(append([]int{}, parent...), field.Index...), seen)
	}
}

// scanType returns struct metadata, preferring sentinel's registry when the
// type has already been scanned there.
func scanType(rt reflect.Type) sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok && meta.TypeName == rt.Name() && len(meta.Fields) == rt.NumField() {
		return meta
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() && !sf.Anonymous {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		meta.Fields = append(meta.Fields, fm)
	}

	return meta
}

// parseTags extracts the cereal tags from a struct tag.
func parseTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, key := range knownTags {
		if val, ok := tag.Lookup(key); ok {
			tags[key] = val
		}
	}
	return tags
}

// tagName strips options from a `cereal:"name,opts"` tag value.
func tagName(val string) string {
	name, _, _ := strings.Cut(val, ",")
	return name
}

func isExportedName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// Use returns a cached serializer inferred from T, building one on first use.
// Options only take effect on the call that builds the serializer.
func Use[T any](opts ...Option) (*Serializer, error) {
	typ := reflect.TypeFor[T]()

	// Fast path: read-lock cache check
	serializerMu.RLock()
	if cached, ok := serializers[typ]; ok {
		serializerMu.RUnlock()
		return cached, nil
	}
	serializerMu.RUnlock()

	// Slow path: build and cache with write-lock
	serializerMu.Lock()
	defer serializerMu.Unlock()

	// Double-check pattern
	if cached, ok := serializers[typ]; ok {
		return cached, nil
	}

	s, err := Infer[T](opts...)
	if err != nil {
		return nil, err
	}

	serializers[typ] = s
	return s, nil
}

// Reset clears the serializer cache.
// This is primarily useful for test isolation.
func Reset() {
	serializerMu.Lock()
	defer serializerMu.Unlock()
	serializers = make(map[reflect.Type]*Serializer)
}
