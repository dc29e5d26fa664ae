package compression

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledIsIdentity(t *testing.T) {
	c, err := New(Disabled)
	require.NoError(t, err)
	require.False(t, c.Enabled())

	// Even bytes that look like a zstd frame pass through untouched.
	payloads := [][]byte{
		[]byte("plain text"),
		append(bytes.Clone(frameMagic), 0xDE, 0xAD, 0xBE, 0xEF),
		bytes.Repeat([]byte("abc"), 200),
	}
	for _, p := range payloads {
		require.Equal(t, p, c.Encode(p))

		got, err := c.Decode(p)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}

func TestEncodeCompressesLargeInput(t *testing.T) {
	c, err := New(Default)
	require.NoError(t, err)

	data := []byte(strings.Repeat("all work and no play makes jack a dull boy\n", 100))
	out := c.Encode(data)
	require.Less(t, len(out), len(data))

	got, err := c.Decode(out)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestEncodeSkipsSmallAndIncompressible(t *testing.T) {
	c, err := New(Default)
	require.NoError(t, err)

	small := []byte("tiny")
	require.Equal(t, small, c.Encode(small))

	got, err := c.Decode(small)
	require.NoError(t, err)
	require.Equal(t, small, got)
}

func TestMagicPrefixedPayloadRoundTrip(t *testing.T) {
	c, err := New(Default)
	require.NoError(t, err)

	payloads := [][]byte{
		append(bytes.Clone(frameMagic), 0xDE, 0xAD, 0xBE, 0xEF),
		bytes.Clone(frameMagic),
		append(bytes.Clone(frameMagic), bytes.Repeat([]byte{0x00}, 500)...),
	}
	for _, p := range payloads {
		out := c.Encode(p)
		require.True(t, bytes.HasPrefix(out, frameMagic),
			"magic-prefixed input is always framed")

		got, err := c.Decode(out)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}

	// A stored document that itself is a valid zstd frame comes back as that
	// frame, not as the frame's contents.
	inner := c.enc.EncodeAll([]byte("inner payload"), nil)
	got, err := c.Decode(c.Encode(inner))
	require.NoError(t, err)
	require.Equal(t, inner, got)
}

func TestEnabledReadsRawFiles(t *testing.T) {
	c, err := New(Fastest)
	require.NoError(t, err)

	// Data written before compression was switched on has no frame magic and
	// passes through.
	raw := []byte(strings.Repeat("previously uncompressed", 20))
	got, err := c.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, raw, got)
}
