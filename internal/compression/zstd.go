// Package compression provides optional transparent zstd compression for
// stored documents and snapshot layers.
package compression

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Compression levels accepted by New. Disabled is the default: bytes pass
// through untouched in both directions, so the on-disk file always equals the
// document exactly.
const (
	Disabled = 0
	Fastest  = 1
	Default  = 2
	Better   = 3
)

// Documents smaller than this are never compressed; the frame overhead is not
// worth it.
const minSize = 128

// zstd frame magic. When compression is enabled it marks compressed files;
// payloads that already begin with it are therefore always framed on encode,
// so Decode never has to guess whether magic-prefixed bytes are user data.
var frameMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Codec encodes document bytes on their way to disk and decodes them on the
// way back.
type Codec struct {
	enc     *zstd.Encoder
	dec     *zstd.Decoder
	enabled bool
}

func New(level int) (*Codec, error) {
	if level <= Disabled {
		return &Codec{}, nil
	}

	var el zstd.EncoderLevel
	switch level {
	case Fastest:
		el = zstd.SpeedFastest
	case Default:
		el = zstd.SpeedDefault
	case Better:
		el = zstd.SpeedBetterCompression
	default:
		return nil, fmt.Errorf("unknown compression level %d", level)
	}

	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(el),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}

	return &Codec{enc: enc, dec: dec, enabled: true}, nil
}

// Enabled reports whether Encode may alter bytes.
func (c *Codec) Enabled() bool { return c.enabled }

// Encode returns data compressed, or data itself when compression is disabled,
// the input is too small, or compression would not shrink it. Input that
// already begins with the frame magic is framed unconditionally, keeping
// stored raw bytes free of the magic prefix.
func (c *Codec) Encode(data []byte) []byte {
	if !c.enabled {
		return data
	}

	magic := bytes.HasPrefix(data, frameMagic)
	if len(data) < minSize && !magic {
		return data
	}

	out := c.enc.EncodeAll(data, make([]byte, 0, len(data)))
	if len(out) >= len(data) && !magic {
		return data
	}
	return out
}

// Decode reverses Encode. With compression disabled it is the identity, like
// Encode. With compression enabled, files without the frame magic were stored
// raw (by this codec, or before compression was switched on) and pass through
// unchanged; files with it are decompressed.
func (c *Codec) Decode(data []byte) ([]byte, error) {
	if !c.enabled || !bytes.HasPrefix(data, frameMagic) {
		return data, nil
	}

	out, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return out, nil
}

func (c *Codec) Close() {
	if c.enc != nil {
		c.enc.Close()
	}
	if c.dec != nil {
		c.dec.Close()
	}
}
