package codec

import (
	"encoding/json"

	"github.com/tidwall/jsonc"
)

// JSONCodec encodes values as JSON.
// Decode also accepts JSON with comments and trailing commas, as hand-edited files often have.
type JSONCodec struct {
	Indent string
}

// JSON returns a compact JSON codec.
func JSON() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) Encode(v any) ([]byte, error) {
	if c.Indent != "" {
		return json.MarshalIndent(v, "", c.Indent)
	}
	return json.Marshal(v)
}

func (c *JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(jsonc.ToJSON(data), v)
}

func (c *JSONCodec) MediaType() string {
	return "application/json"
}
