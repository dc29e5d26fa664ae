package keyfs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/keyfs/keyfs/internal/codec"
)

// Separator splits hierarchical keys into segments.
const Separator = "/"

// Key identifies one stored document. Keys are hierarchical: "a/b/c" names
// document "c" under path "a/b". A valid key is non-empty, not whitespace-only,
// has no leading or trailing separator and no empty segments.
type Key struct {
	raw string
}

// KeyPath is the hierarchy prefix of a Key and corresponds to a directory.
// Unlike a Key it may be empty, denoting the storage root.
type KeyPath struct {
	raw string
}

// ParseKey validates s as a Key.
func ParseKey(s string) (Key, error) {
	if err := validate(s, false); err != nil {
		return Key{}, err
	}
	return Key{raw: s}, nil
}

// ParseKeyPath validates s as a KeyPath. The empty string is the root path.
func ParseKeyPath(s string) (KeyPath, error) {
	if s == "" {
		return KeyPath{}, nil
	}
	if err := validate(s, true); err != nil {
		return KeyPath{}, err
	}
	return KeyPath{raw: s}, nil
}

func validate(s string, isPath bool) error {
	sentinel := ErrInvalidKey
	if isPath {
		sentinel = ErrInvalidPath
	}

	switch {
	case strings.TrimSpace(s) == "":
		return fmt.Errorf("%w: empty", sentinel)
	case strings.HasPrefix(s, Separator), strings.HasSuffix(s, Separator):
		return fmt.Errorf("%w: leading or trailing separator in %q", sentinel, s)
	case strings.Contains(s, Separator+Separator):
		return fmt.Errorf("%w: empty segment in %q", sentinel, s)
	}
	return nil
}

func (k Key) String() string { return k.raw }

// Segments splits the key on the separator.
func (k Key) Segments() []string { return strings.Split(k.raw, Separator) }

// Path returns everything before the final segment, or the root path for a
// top-level key.
func (k Key) Path() KeyPath {
	if i := strings.LastIndex(k.raw, Separator); i >= 0 {
		return KeyPath{raw: k.raw[:i]}
	}
	return KeyPath{}
}

// Leaf returns the final segment.
func (k Key) Leaf() string {
	if i := strings.LastIndex(k.raw, Separator); i >= 0 {
		return k.raw[i+1:]
	}
	return k.raw
}

// Child returns the key for name under this path.
func (p KeyPath) Child(name string) Key {
	if p.raw == "" {
		return Key{raw: name}
	}
	return Key{raw: p.raw + Separator + name}
}

func (p KeyPath) String() string { return p.raw }

// IsRoot reports whether p denotes the storage root.
func (p KeyPath) IsRoot() bool { return p.raw == "" }

// Segments splits the path on the separator; the root path has none.
func (p KeyPath) Segments() []string {
	if p.raw == "" {
		return nil
	}
	return strings.Split(p.raw, Separator)
}

// relPath is the path's filesystem projection relative to the storage root:
// each segment percent-encoded, joined with the host separator.
func (p KeyPath) relPath() string {
	segs := p.Segments()
	if len(segs) == 0 {
		return ""
	}
	enc := make([]string, len(segs))
	for i, s := range segs {
		enc[i] = codec.Encode(s)
	}
	return filepath.Join(enc...)
}

// absPath resolves the path beneath the storage root.
func (p KeyPath) absPath(root string) string {
	return filepath.Join(root, p.relPath())
}

// filename is the encoded leaf with the data-file extension appended. The
// extension never applies to directory segments.
func (k Key) filename(ext string) string {
	return codec.Encode(k.Leaf()) + ext
}

// absPath resolves the key's data file beneath the storage root.
func (k Key) absPath(root, ext string) string {
	return filepath.Join(k.Path().absPath(root), k.filename(ext))
}

// keyFromRel decodes a data-file path relative to the storage root back into
// the Key it was written for. rel uses host separators and still carries the
// data-file extension on its final element.
func keyFromRel(rel, ext string) Key {
	rel = strings.TrimSuffix(rel, ext)
	parts := strings.Split(rel, string(filepath.Separator))
	for i, p := range parts {
		parts[i] = codec.Decode(p)
	}
	return Key{raw: strings.Join(parts, Separator)}
}
