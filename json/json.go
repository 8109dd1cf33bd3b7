// Package json provides a JSON codec for cereal.
package json

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/zoobzio/cereal"
)

// api matches encoding/json output, including sorted map keys.
var api = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonCodec struct{}

// New returns a JSON codec.
func New() cereal.Codec {
	return jsonCodec{}
}

func (jsonCodec) ContentType() string {
	return "application/json"
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}
