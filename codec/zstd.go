package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Inner is the codec wrapped by ZstdCodec.
type Inner interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	MediaType() string
}

// ZstdCodec compresses the output of an inner codec with zstd.
// It is safe for concurrent use.
type ZstdCodec struct {
	inner   Inner
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Zstd wraps inner with zstd compression.
func Zstd(inner Inner) (*ZstdCodec, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCodec{inner: inner, encoder: encoder, decoder: decoder}, nil
}

func (c *ZstdCodec) Encode(v any) ([]byte, error) {
	data, err := c.inner.Encode(v)
	if err != nil {
		return nil, err
	}
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data))), nil
}

func (c *ZstdCodec) Decode(data []byte, v any) error {
	raw, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("failed to decompress: %w", err)
	}
	return c.inner.Decode(raw, v)
}

func (c *ZstdCodec) MediaType() string {
	return "application/zstd"
}

// Close releases the encoder and decoder.
func (c *ZstdCodec) Close() error {
	c.encoder.Close()
	c.decoder.Close()
	return nil
}
