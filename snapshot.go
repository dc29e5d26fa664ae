package keyfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Push uploads a snapshot of the whole store to the configured remote ref,
// and to any additional tags of the same repository. The snapshot is taken
// under the read lock; the network transfer happens outside it.
func (s *Store) Push(ctx context.Context, tags ...string) error {
	if s.remote == nil {
		return ErrNoRemote
	}

	entries, err := s.snapshot()
	if err != nil {
		return err
	}

	if err := s.remote.Push(ctx, entries); err != nil {
		return err
	}
	for _, tag := range tags {
		r, err := s.remote.WithTag(tag)
		if err != nil {
			return fmt.Errorf("invalid tag %q: %w", tag, err)
		}
		if err := r.Push(ctx, entries); err != nil {
			return err
		}
	}

	s.log.Info("snapshot pushed",
		zap.String("remote", s.remote.String()),
		zap.Int("documents", len(entries)))
	return nil
}

// Pull downloads the snapshot at the configured remote ref and replaces the
// local store contents with it.
func (s *Store) Pull(ctx context.Context) error {
	if s.remote == nil {
		return ErrNoRemote
	}

	entries, err := s.remote.Pull(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clearLocked(); err != nil {
		return err
	}
	for key, data := range entries {
		k, err := ParseKey(key)
		if err != nil {
			return fmt.Errorf("snapshot contains %q: %w", key, err)
		}
		if _, err := s.writeLocked(k, Document{data: data, valid: true}); err != nil {
			return err
		}
	}

	s.log.Info("snapshot pulled",
		zap.String("remote", s.remote.String()),
		zap.Int("documents", len(entries)))
	return nil
}

// snapshot reads every (key, document) pair under one read-lock window.
func (s *Store) snapshot() (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, err := s.walkLocked(KeyPath{}, true)
	if err != nil {
		return nil, err
	}

	entries := make(map[string][]byte, len(keys))
	for _, k := range keys {
		doc, _, err := s.getLocked(k)
		if err != nil {
			return nil, err
		}
		if !doc.Valid() {
			continue
		}
		entries[k.String()] = doc.data
	}
	return entries, nil
}

// clearLocked empties the storage root without removing the root itself.
func (s *Store) clearLocked() error {
	children, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("list storage root: %w", err)
	}
	for _, child := range children {
		if err := os.RemoveAll(filepath.Join(s.root, child.Name())); err != nil {
			return fmt.Errorf("clear storage root: %w", err)
		}
	}
	return nil
}
