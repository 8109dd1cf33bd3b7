// Package bson provides a BSON codec for cereal.
//
// A BSON document must be a mapping at the top level, so lists of dicts are
// stored as {"items": [...]} and unwrapped again when decoding into
// *[]map[string]any.
package bson

import (
	"reflect"

	"github.com/zoobzio/cereal"
	"go.mongodb.org/mongo-driver/bson"
)

const itemsKey = "items"

type envelope struct {
	Items []map[string]any `bson:"items"`
}

type bsonCodec struct{}

// New returns a BSON codec.
func New() cereal.Codec {
	return bsonCodec{}
}

func (bsonCodec) ContentType() string {
	return "application/bson"
}

func (bsonCodec) Marshal(v any) ([]byte, error) {
	if v != nil {
		if k := reflect.TypeOf(v).Kind(); k == reflect.Slice || k == reflect.Array {
			return bson.Marshal(bson.M{itemsKey: v})
		}
	}
	return bson.Marshal(v)
}

func (bsonCodec) Unmarshal(data []byte, v any) error {
	if out, ok := v.(*[]map[string]any); ok {
		var env envelope
		if err := bson.Unmarshal(data, &env); err != nil {
			return err
		}
		*out = env.Items
		return nil
	}
	return bson.Unmarshal(data, v)
}
