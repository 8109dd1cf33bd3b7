// Package xml provides an XML codec for cereal.
//
// Dicts and lists of dicts have no natural XML form, so the codec writes
// them in a fixed layout: a mapping becomes a <record> whose children are
// named after its keys in sorted order, a list becomes <records> holding
// one <item> per element. Container and nil elements carry a kind attribute
// so that Unmarshal can rebuild them. Scalars decode as strings.
//
// Values that are neither maps nor slices use encoding/xml directly.
package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/zoobzio/cereal"
)

const (
	recordName  = "record"
	recordsName = "records"
	itemName    = "item"

	kindAttr   = "kind"
	kindRecord = "record"
	kindList   = "list"
	kindNil    = "nil"
)

// ErrNoRoot is returned when the input holds no root element.
var ErrNoRoot = errors.New("xml: no root element")

type xmlCodec struct{}

// New returns an XML codec.
func New() cereal.Codec {
	return xmlCodec{}
}

func (xmlCodec) ContentType() string {
	return "application/xml"
}

func (xmlCodec) Marshal(v any) ([]byte, error) {
	if v == nil {
		return xml.Marshal(v)
	}

	var root string
	switch rv := reflect.ValueOf(v); {
	case isDict(rv):
		root = recordName
	case isList(rv):
		root = recordsName
	default:
		return xml.Marshal(v)
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := encodeValue(enc, root, v); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes into *map[string]any, *[]map[string]any and *any using
// the record layout. Any other target is handed to encoding/xml.
func (xmlCodec) Unmarshal(data []byte, v any) error {
	switch out := v.(type) {
	case *map[string]any:
		val, err := decodeDocument(data)
		if err != nil {
			return err
		}
		dict, ok := val.(map[string]any)
		if !ok {
			return fmt.Errorf("xml: cannot decode %T into map[string]any", val)
		}
		*out = dict
		return nil

	case *[]map[string]any:
		val, err := decodeDocument(data)
		if err != nil {
			return err
		}
		list, ok := val.([]any)
		if !ok {
			return fmt.Errorf("xml: cannot decode %T into []map[string]any", val)
		}
		dicts := make([]map[string]any, 0, len(list))
		for i, item := range list {
			dict, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("xml: item %d is %T, not a record", i, item)
			}
			dicts = append(dicts, dict)
		}
		*out = dicts
		return nil

	case *any:
		val, err := decodeDocument(data)
		if err != nil {
			return err
		}
		*out = val
		return nil

	default:
		return xml.Unmarshal(data, v)
	}
}

func isDict(rv reflect.Value) bool {
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

func isList(rv reflect.Value) bool {
	k := rv.Kind()
	return (k == reflect.Slice || k == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8
}

func encodeValue(enc *xml.Encoder, name string, v any) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return encodeNil(enc, start)
		}
		rv = rv.Elem()
	}

	switch {
	case !rv.IsValid(), (rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice) && rv.IsNil():
		return encodeNil(enc, start)

	case isDict(rv):
		start.Attr = []xml.Attr{{Name: xml.Name{Local: kindAttr}, Value: kindRecord}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		for _, key := range keys {
			if !validName(key) {
				return fmt.Errorf("xml: key %q is not a valid element name", key)
			}
			val := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
			if err := encodeValue(enc, key, val.Interface()); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())

	case isList(rv):
		start.Attr = []xml.Attr{{Name: xml.Name{Local: kindAttr}, Value: kindList}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for i := range rv.Len() {
			if err := encodeValue(enc, itemName, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())

	default:
		return enc.EncodeElement(rv.Interface(), start)
	}
}

func encodeNil(enc *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{{Name: xml.Name{Local: kindAttr}, Value: kindNil}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func decodeDocument(data []byte) (any, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRoot
		}
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return decodeElement(dec, start)
		}
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (any, error) {
	var kind string
	for _, attr := range start.Attr {
		if attr.Name.Local == kindAttr {
			kind = attr.Value
		}
	}

	var text strings.Builder
	dict := map[string]any{}
	list := []any{}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			val, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			if kind == kindList {
				list = append(list, val)
			} else {
				dict[t.Name.Local] = val
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			switch kind {
			case kindNil:
				return nil, nil
			case kindList:
				return list, nil
			case kindRecord:
				return dict, nil
			}
			if len(dict) > 0 {
				return dict, nil
			}
			return text.String(), nil
		}
	}
}

func validName(s string) bool {
	if s == "" || strings.HasPrefix(strings.ToLower(s), "xml") {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}
