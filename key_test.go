package keyfs

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, s := range []string{"a", "a/b", "a/b/c", "with space", "a b/c-d_e", "ключ/值"} {
			k, err := ParseKey(s)
			require.NoError(t, err, "key %q", s)
			require.Equal(t, s, k.String())
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, s := range []string{"", "   ", "\t\n", "/a", "a/", "/", "a//b", "a///b"} {
			_, err := ParseKey(s)
			require.ErrorIs(t, err, ErrInvalidKey, "key %q", s)
		}
	})
}

func TestParseKeyPath(t *testing.T) {
	p, err := ParseKeyPath("")
	require.NoError(t, err)
	require.True(t, p.IsRoot())
	require.Nil(t, p.Segments())

	p, err = ParseKeyPath("a/b")
	require.NoError(t, err)
	require.False(t, p.IsRoot())
	require.Equal(t, []string{"a", "b"}, p.Segments())

	for _, s := range []string{"  ", "/a", "a/", "a//b"} {
		_, err := ParseKeyPath(s)
		require.ErrorIs(t, err, ErrInvalidPath, "path %q", s)
	}
}

func TestKeyDecomposition(t *testing.T) {
	k, err := ParseKey("a/b/c")
	require.NoError(t, err)
	require.Equal(t, "a/b", k.Path().String())
	require.Equal(t, "c", k.Leaf())
	require.Equal(t, []string{"a", "b", "c"}, k.Segments())

	top, err := ParseKey("x")
	require.NoError(t, err)
	require.True(t, top.Path().IsRoot())
	require.Equal(t, "x", top.Leaf())
}

func TestKeyPathLeafInvariant(t *testing.T) {
	for _, s := range []string{"a/b/c", "single", "we ird/na%me/x", "a/b"} {
		k, err := ParseKey(s)
		require.NoError(t, err)

		if k.Path().IsRoot() {
			require.Equal(t, s, k.Leaf())
		} else {
			require.Equal(t, s, k.Path().String()+Separator+k.Leaf())
		}
	}
}

func TestKeyFilesystemProjection(t *testing.T) {
	k, err := ParseKey("foo(>!<)/hello")
	require.NoError(t, err)

	rel, err := filepath.Rel("/root", k.absPath("/root", ""))
	require.NoError(t, err)
	require.Equal(t,
		filepath.Join("foo%28%3E%21%3C%29", "hello"),
		rel)
}

func TestKeyExtensionOnLeafOnly(t *testing.T) {
	k, err := ParseKey("dir.a/leaf")
	require.NoError(t, err)

	p := k.absPath("/root", ".dat")
	require.True(t, strings.HasSuffix(p, "leaf.dat"))
	require.Contains(t, p, "dir%2Ea"+string(filepath.Separator))
}

func TestKeyFromRel(t *testing.T) {
	for _, s := range []string{"a/b/c", "foo(>!<)/hello world", "plain"} {
		k, err := ParseKey(s)
		require.NoError(t, err)

		rel, err := filepath.Rel("/root", k.absPath("/root", ".dat"))
		require.NoError(t, err)
		require.Equal(t, s, keyFromRel(rel, ".dat").String())
	}
}
