package keyfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var d Document
		require.False(t, d.Valid())
		require.Nil(t, d.Bytes())
	})

	t.Run("empty is valid and distinct from invalid", func(t *testing.T) {
		empty := NewDocument(nil)
		require.True(t, empty.Valid())
		require.Zero(t, empty.Len())
		require.False(t, empty.Equal(Document{}))
	})

	t.Run("text round trip", func(t *testing.T) {
		d := NewTextDocument("héllo wörld")
		require.Equal(t, "héllo wörld", d.String())
		require.Equal(t, []byte("héllo wörld"), d.Bytes())
	})

	t.Run("immutability", func(t *testing.T) {
		src := []byte("abc")
		d := NewDocument(src)
		src[0] = 'x'
		require.Equal(t, "abc", d.String())

		out := d.Bytes()
		out[0] = 'y'
		require.Equal(t, "abc", d.String())
	})

	t.Run("structural equality", func(t *testing.T) {
		require.True(t, NewDocument([]byte("a")).Equal(NewTextDocument("a")))
		require.False(t, NewDocument([]byte("a")).Equal(NewDocument([]byte("b"))))
		require.True(t, Document{}.Equal(Document{}))
	})
}

func TestEtag(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var e Etag
		require.False(t, e.Valid())
		require.Equal(t, "<invalid>", e.String())
	})

	t.Run("equality is timestamp equality", func(t *testing.T) {
		now := time.Now()
		a := Etag{mtime: now}
		b := Etag{mtime: now}
		c := Etag{mtime: now.Add(time.Nanosecond)}

		require.True(t, a.Equal(b))
		require.False(t, a.Equal(c))
		require.True(t, a.Valid())
	})
}
