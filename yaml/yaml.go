// Package yaml provides a YAML codec for cereal.
package yaml

import (
	"bytes"

	"github.com/zoobzio/cereal"
	"gopkg.in/yaml.v3"
)

const indent = 2

type yamlCodec struct{}

// New returns a YAML codec. Mappings are written with sorted keys and
// two-space indentation.
func New() cereal.Codec {
	return yamlCodec{}
}

func (yamlCodec) ContentType() string {
	return "application/yaml"
}

func (yamlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
