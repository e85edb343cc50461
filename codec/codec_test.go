package codec_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Jumpaku/go-drivestore/codec"
)

type dog struct {
	Name string   `json:"name" yaml:"name" cbor:"name"`
	Age  int      `json:"age" yaml:"age" cbor:"age"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty" cbor:"tags,omitempty"`
}

func TestCodecs_Roundtrip(t *testing.T) {
	cborCodec, err := codec.CBOR()
	if err != nil {
		t.Fatalf("CBOR() error = %v", err)
	}
	zstdCodec, err := codec.Zstd(codec.JSON())
	if err != nil {
		t.Fatalf("Zstd() error = %v", err)
	}
	defer zstdCodec.Close()

	cases := []struct {
		name      string
		codec     codec.Inner
		mediaType string
	}{
		{"json", codec.JSON(), "application/json"},
		{"json-indent", &codec.JSONCodec{Indent: "  "}, "application/json"},
		{"cbor", cborCodec, "application/cbor"},
		{"yaml", codec.YAML(), "application/yaml"},
		{"zstd-json", zstdCodec, "application/zstd"},
	}

	want := dog{Name: "Rex", Age: 3, Tags: []string{"good", "boy"}}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			data, err := c.codec.Encode(want)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			var got dog
			if err := c.codec.Decode(data, &got); err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("Decode(Encode(v)) = %#v, want %#v", got, want)
			}
			if got := c.codec.MediaType(); got != c.mediaType {
				t.Fatalf("MediaType() = %q, want %q", got, c.mediaType)
			}
		})
	}
}

func TestJSON_EncodesCompactly(t *testing.T) {
	data, err := codec.JSON().Encode(map[string]string{"name": "Rex"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got, want := string(data), `{"name":"Rex"}`; got != want {
		t.Fatalf("Encode() = %s, want %s", got, want)
	}
}

func TestJSON_DecodeAcceptsComments(t *testing.T) {
	input := []byte(`{
		// the dog's name
		"name": "Rex",
		"age": 3, /* years */
	}`)
	var got dog
	if err := codec.JSON().Decode(input, &got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Name != "Rex" || got.Age != 3 {
		t.Fatalf("Decode() = %#v, want name Rex and age 3", got)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cborCodec, err := codec.CBOR()
	if err != nil {
		t.Fatalf("CBOR() error = %v", err)
	}
	zstdCodec, err := codec.Zstd(codec.JSON())
	if err != nil {
		t.Fatalf("Zstd() error = %v", err)
	}
	defer zstdCodec.Close()

	cases := []struct {
		name  string
		codec codec.Inner
		input []byte
	}{
		{"json", codec.JSON(), []byte(`{"name":`)},
		{"cbor", cborCodec, []byte{0xff, 0x00}},
		{"yaml", codec.YAML(), []byte("name: [unclosed")},
		{"zstd", zstdCodec, []byte("not zstd at all")},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			var got dog
			if err := c.codec.Decode(c.input, &got); err == nil {
				t.Fatalf("Decode(%q) error = nil, want error", c.input)
			}
		})
	}
}

func TestCBOR_IsDeterministic(t *testing.T) {
	c, err := codec.CBOR()
	if err != nil {
		t.Fatalf("CBOR() error = %v", err)
	}
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	first, err := c.Encode(m)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := c.Encode(m)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if string(again) != string(first) {
			t.Fatalf("Encode() is not deterministic: %x != %x", again, first)
		}
	}
}

func TestZstd_Compresses(t *testing.T) {
	c, err := codec.Zstd(codec.JSON())
	if err != nil {
		t.Fatalf("Zstd() error = %v", err)
	}
	defer c.Close()
	v := map[string]string{"text": strings.Repeat("woof ", 1000)}
	plain, _ := codec.JSON().Encode(v)
	compressed, err := c.Encode(v)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(compressed) >= len(plain) {
		t.Fatalf("compressed size %d >= plain size %d", len(compressed), len(plain))
	}
}
