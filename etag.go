package keyfs

import (
	"io/fs"
	"time"
)

// Etag is an opaque version token for optimistic concurrency. It wraps the
// data file's last-modification time; any write (or any external touch of the
// file) produces a new value. The zero Etag is the invalid sentinel returned
// for absent keys.
type Etag struct {
	mtime time.Time
}

func etagOf(fi fs.FileInfo) Etag {
	return Etag{mtime: fi.ModTime()}
}

// Valid reports whether the etag refers to an existing version.
func (e Etag) Valid() bool { return !e.mtime.IsZero() }

// Equal reports whether two etags denote the same version. Comparison is
// exact, down to the timestamp resolution the filesystem records.
func (e Etag) Equal(other Etag) bool { return e.mtime.Equal(other.mtime) }

// Time exposes the underlying modification time.
func (e Etag) Time() time.Time { return e.mtime }

func (e Etag) String() string {
	if !e.Valid() {
		return "<invalid>"
	}
	return e.mtime.Format(time.RFC3339Nano)
}
