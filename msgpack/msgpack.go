// Package msgpack provides a MessagePack codec for cereal.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/cereal"
)

type msgpackCodec struct{}

// New returns a MessagePack codec. Map keys are sorted and integers use the
// smallest encoding that fits, so equal dicts always encode to equal bytes.
func New() cereal.Codec {
	return msgpackCodec{}
}

func (msgpackCodec) ContentType() string {
	return "application/msgpack"
}

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
