package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"abcXYZ019-_", "abcXYZ019-_"},
		{"hello world", "hello+world"},
		{"a.b", "a%2Eb"},
		{"a+b", "a%2Bb"},
		{"foo(>!<)", "foo%28%3E%21%3C%29"},
		{"a/b", "a%2Fb"},
		{"100%", "100%25"},
	}

	for _, c := range cases {
		require.Equal(t, c.want, Encode(c.in), "encode %q", c.in)
	}
}

func TestDecode(t *testing.T) {
	t.Run("case insensitive hex", func(t *testing.T) {
		require.Equal(t, "a.b", Decode("a%2Eb"))
		require.Equal(t, "a.b", Decode("a%2eb"))
	})

	t.Run("plus is space", func(t *testing.T) {
		require.Equal(t, "hello world", Decode("hello+world"))
	})

	t.Run("unsafe passthrough", func(t *testing.T) {
		// Characters Encode would have escaped still decode as themselves.
		require.Equal(t, "a.b(c)", Decode("a.b(c)"))
	})

	t.Run("truncated escapes are literal", func(t *testing.T) {
		require.Equal(t, "abc%", Decode("abc%"))
		require.Equal(t, "abc%2", Decode("abc%2"))
		require.Equal(t, "abc%zz", Decode("abc%zz"))
	})
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"with space",
		"foo(>!<)/hello",
		"unicode: žluťoučký kůň 🐎",
		"%%%+++",
		string([]byte{0x00, 0x01, 0xFE, 0xFF}),
	}

	for _, in := range inputs {
		require.Equal(t, in, Decode(Encode(in)), "round trip %q", in)
	}
}

func TestRoundTripAllBytes(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	got := AppendDecoded(nil, AppendEncoded(nil, all))
	require.Equal(t, all, got)
}
