package keyfs

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/keyfs/keyfs/internal/compression"
	"github.com/keyfs/keyfs/internal/remote"
)

// Store is a filesystem-mapped key/value document store. Every key resolves to
// one file beneath the storage root: intermediate key segments become
// directories, the percent-encoded leaf (plus the configured extension)
// becomes the file name.
//
// One reader/writer lock guards all filesystem access. Contains, Get, Keys and
// Entries run concurrently with each other; Set, CheckAndSet, Remove and
// Destroy are exclusive. The lock is not recursive: store methods must not be
// called from inside another call on the same goroutine (iteration bodies are
// safe, see Keys).
type Store struct {
	root     string
	ext      string
	dirPerm  os.FileMode
	filePerm os.FileMode

	codec  *compression.Codec
	remote *remote.OCIRemote
	log    *zap.Logger

	mu sync.RWMutex
}

// Entry is one enumerated document with the version it was read at.
type Entry struct {
	Key      Key
	Etag     Etag
	Document Document
}

// Open creates or opens a store rooted at dir, creating the directory if it
// does not exist.
func Open(dir string, opts ...Option) (*Store, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(root, options.DirPerm); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	codec, err := compression.New(options.Compression)
	if err != nil {
		return nil, fmt.Errorf("create compression codec: %w", err)
	}

	var rem *remote.OCIRemote
	if options.Remote != "" {
		auth := options.Auth
		if auth == nil {
			auth = remote.NewDefaultAuthenticator()
		}
		rem, err = remote.New(options.Remote, auth)
		if err != nil {
			return nil, err
		}
		rem.SetConcurrency(options.Concurrency)
	}

	return &Store{
		root:     root,
		ext:      options.Extension,
		dirPerm:  options.DirPerm,
		filePerm: options.FilePerm,
		codec:    codec,
		remote:   rem,
		log:      options.Logger,
	}, nil
}

// Root returns the absolute storage root directory.
func (s *Store) Root() string { return s.root }

// Extension returns the data-file extension, possibly empty.
func (s *Store) Extension() string { return s.ext }

// Contains reports whether a document exists under key.
func (s *Store) Contains(key string) (bool, error) {
	k, err := ParseKey(key)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	fi, err := os.Stat(k.absPath(s.root, s.ext))
	switch {
	case err == nil:
		// A directory at the key's path is a hierarchy segment, not a document.
		return !fi.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %q: %w", key, err)
	}
}

// Get reads the document stored under key and the etag it was read at. An
// absent key is not an error: both return values are invalid and err is nil.
func (s *Store) Get(key string) (Document, Etag, error) {
	k, err := ParseKey(key)
	if err != nil {
		return Document{}, Etag{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getLocked(k)
}

func (s *Store) getLocked(k Key) (Document, Etag, error) {
	p := k.absPath(s.root, s.ext)

	fi, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, Etag{}, nil
	}
	if err != nil {
		return Document{}, Etag{}, fmt.Errorf("stat %q: %w", k, err)
	}
	if fi.IsDir() {
		// A directory here means the key only exists as a hierarchy segment.
		return Document{}, Etag{}, nil
	}

	raw, err := os.ReadFile(p)
	if err != nil {
		return Document{}, Etag{}, fmt.Errorf("read %q: %w", k, err)
	}

	data, err := s.codec.Decode(raw)
	if err != nil {
		return Document{}, Etag{}, fmt.Errorf("read %q: %w", k, err)
	}

	return Document{data: data, valid: true}, etagOf(fi), nil
}

// Set writes doc under key unconditionally, creating any missing intermediate
// directories and overwriting an existing document. It returns the new etag.
// An invalid document is rejected before any filesystem access.
func (s *Store) Set(key string, doc Document) (Etag, error) {
	k, err := ParseKey(key)
	if err != nil {
		return Etag{}, err
	}
	if !doc.Valid() {
		return Etag{}, fmt.Errorf("%w: set %q", ErrInvalidDocument, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.writeLocked(k, doc)
	if err != nil {
		return Etag{}, err
	}

	s.log.Debug("document stored",
		zap.String("key", k.String()),
		zap.Int("size", doc.Len()),
		zap.Time("etag", e.Time()))
	return e, nil
}

// CheckAndSet writes doc under key only if the document exists and its current
// etag equals expect. On success it returns (true, new etag); on a missing key
// or etag mismatch it returns (false, invalid) without writing, and the caller
// must re-fetch before retrying.
func (s *Store) CheckAndSet(key string, doc Document, expect Etag) (bool, Etag, error) {
	k, err := ParseKey(key)
	if err != nil {
		return false, Etag{}, err
	}
	if !doc.Valid() {
		return false, Etag{}, fmt.Errorf("%w: check-and-set %q", ErrInvalidDocument, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fi, err := os.Stat(k.absPath(s.root, s.ext))
	if errors.Is(err, fs.ErrNotExist) {
		return false, Etag{}, nil
	}
	if err != nil {
		return false, Etag{}, fmt.Errorf("stat %q: %w", key, err)
	}
	if fi.IsDir() {
		return false, Etag{}, nil
	}

	if cur := etagOf(fi); !cur.Equal(expect) {
		s.log.Debug("check-and-set conflict",
			zap.String("key", k.String()),
			zap.Time("current", cur.Time()),
			zap.Time("expected", expect.Time()))
		return false, Etag{}, nil
	}

	e, err := s.writeLocked(k, doc)
	if err != nil {
		return false, Etag{}, err
	}
	return true, e, nil
}

// writeLocked is the single byte-exact write path shared by Set and
// CheckAndSet. If the filesystem's timestamp resolution is too coarse for the
// overwrite to change the mtime, the mtime is nudged forward so sequential
// writes always yield distinct etags.
func (s *Store) writeLocked(k Key, doc Document) (Etag, error) {
	p := k.absPath(s.root, s.ext)

	var prev Etag
	if fi, err := os.Stat(p); err == nil {
		prev = etagOf(fi)
	}

	if err := os.MkdirAll(filepath.Dir(p), s.dirPerm); err != nil {
		return Etag{}, fmt.Errorf("create directories for %q: %w", k, err)
	}
	if err := os.WriteFile(p, s.codec.Encode(doc.data), s.filePerm); err != nil {
		return Etag{}, fmt.Errorf("write %q: %w", k, err)
	}

	fi, err := os.Stat(p)
	if err != nil {
		return Etag{}, fmt.Errorf("stat %q: %w", k, err)
	}

	e := etagOf(fi)
	if e.Equal(prev) {
		t := prev.Time().Add(time.Nanosecond)
		if err := os.Chtimes(p, t, t); err != nil {
			return Etag{}, fmt.Errorf("touch %q: %w", k, err)
		}
		// Re-stat rather than trusting t: the filesystem may round the
		// timestamp, and the returned etag must match what a later read sees.
		fi, err = os.Stat(p)
		if err != nil {
			return Etag{}, fmt.Errorf("stat %q: %w", k, err)
		}
		e = etagOf(fi)
	}
	return e, nil
}

// Remove deletes the document stored under key. It reports whether a document
// was present. After a deletion, now-empty parent directories are removed
// walking from the leaf toward the storage root, stopping at the first
// non-empty one.
func (s *Store) Remove(key string) (bool, error) {
	k, err := ParseKey(key)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := k.absPath(s.root, s.ext)
	fi, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", key, err)
	}
	if fi.IsDir() {
		// Only a hierarchy segment lives here; there is no document to remove.
		return false, nil
	}

	if err := os.Remove(p); err != nil {
		return false, fmt.Errorf("remove %q: %w", key, err)
	}

	s.pruneLocked(k.Path())

	s.log.Debug("document removed", zap.String("key", k.String()))
	return true, nil
}

// pruneLocked deletes empty ancestor directories of p, leaf first. The walk is
// iterative over the segment list, so deep keys cost no stack. A failed
// deletion (directory non-empty, already gone, or any other fault) stops the
// walk; the store is still consistent either way.
func (s *Store) pruneLocked(p KeyPath) {
	segs := p.Segments()
	for i := len(segs); i > 0; i-- {
		dir := KeyPath{raw: strings.Join(segs[:i], Separator)}.absPath(s.root)
		if err := os.Remove(dir); err != nil {
			return
		}
	}
}

// Destroy deletes the entire storage root recursively. It reports whether the
// root existed. The store is unusable afterwards until re-opened.
func (s *Store) Destroy() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.root); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("stat storage root: %w", err)
	}

	if err := os.RemoveAll(s.root); err != nil {
		return false, fmt.Errorf("destroy storage root: %w", err)
	}

	s.log.Info("store destroyed", zap.String("root", s.root))
	return true, nil
}

// Keys enumerates the documents under path ("" denotes the root). With
// recursive set it descends into every subdirectory; otherwise only direct
// children are listed. A nonexistent directory yields an empty sequence.
//
// The sequence is finite and restartable: every fresh iteration re-walks the
// filesystem. Order is filesystem-dependent and unspecified. The walk happens
// under one read-lock window and the keys are then yielded outside it, so the
// iteration body may call back into the store.
func (s *Store) Keys(path string, recursive bool) (iter.Seq2[Key, error], error) {
	p, err := ParseKeyPath(path)
	if err != nil {
		return nil, err
	}

	return func(yield func(Key, error) bool) {
		s.mu.RLock()
		keys, err := s.walkLocked(p, recursive)
		s.mu.RUnlock()

		if err != nil {
			yield(Key{}, err)
			return
		}
		for _, k := range keys {
			if !yield(k, nil) {
				return
			}
		}
	}, nil
}

// Entries enumerates (key, etag, document) triples under path. Each document
// is fetched under its own short read-lock window after the key walk, so a
// concurrent writer may interleave: the documents of one iteration can reflect
// different points in time, and a key removed mid-iteration is skipped.
func (s *Store) Entries(path string, recursive bool) (iter.Seq2[Entry, error], error) {
	keys, err := s.Keys(path, recursive)
	if err != nil {
		return nil, err
	}

	return func(yield func(Entry, error) bool) {
		for k, kerr := range keys {
			if kerr != nil {
				yield(Entry{}, kerr)
				return
			}

			s.mu.RLock()
			doc, e, gerr := s.getLocked(k)
			s.mu.RUnlock()

			if gerr != nil {
				yield(Entry{Key: k}, gerr)
				return
			}
			if !doc.Valid() {
				continue
			}
			if !yield(Entry{Key: k, Etag: e, Document: doc}, nil) {
				return
			}
		}
	}, nil
}

func (s *Store) walkLocked(p KeyPath, recursive bool) ([]Key, error) {
	var keys []Key
	err := s.walkDir(p.absPath(s.root), recursive, &keys)
	return keys, err
}

func (s *Store) walkDir(dir string, recursive bool, keys *[]Key) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("list %q: %w", dir, err)
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if recursive {
				if err := s.walkDir(full, true, keys); err != nil {
					return err
				}
			}
			continue
		}

		if s.ext != "" && !strings.HasSuffix(entry.Name(), s.ext) {
			continue
		}

		rel, err := filepath.Rel(s.root, full)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", full, err)
		}
		*keys = append(*keys, keyFromRel(rel, s.ext))
	}
	return nil
}
