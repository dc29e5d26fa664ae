// Package keyfs provides a filesystem-mapped key/value document store.
//
// Hierarchical keys ("a/b/c") map to paths under a storage root: intermediate
// segments become directories, the percent-encoded leaf becomes one file whose
// contents are the document bytes. Versioning for optimistic concurrency is
// derived from file modification times, so there are no sidecar metadata
// files and any external tool can read the tree directly.
//
// Basic usage:
//
//	store, _ := keyfs.Open("/var/lib/myapp", keyfs.WithExtension(".dat"))
//
//	// Store and fetch documents
//	etag, _ := store.Set("users/alice", keyfs.NewTextDocument(`{"name":"alice"}`))
//	doc, etag, _ := store.Get("users/alice")
//
//	// Conditional write; re-fetch and retry on conflict
//	ok, etag, _ := store.CheckAndSet("users/alice", newDoc, etag)
//
//	// Enumerate
//	keys, _ := store.Keys("users", true)
//	for key, err := range keys { ... }
//
//	// Delete one document, or the whole store
//	store.Remove("users/alice")
//	store.Destroy()
//
// With remote snapshots:
//
//	store, _ := keyfs.Open(dir, keyfs.WithRemote("ttl.sh/myorg/store:main"))
//	store.Push(ctx)
//	store.Pull(ctx)
//
// All operations on one Store are safe for concurrent use from multiple
// goroutines; reads run in parallel, writes are exclusive. There is no
// cross-process coordination.
package keyfs
