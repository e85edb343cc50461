package codec

import (
	"gopkg.in/yaml.v3"
)

// YAMLCodec encodes values as YAML.
type YAMLCodec struct{}

func YAML() YAMLCodec {
	return YAMLCodec{}
}

func (YAMLCodec) Encode(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAMLCodec) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

func (YAMLCodec) MediaType() string {
	return "application/yaml"
}
