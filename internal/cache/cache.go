// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists extraction results on disk, keyed by a fingerprint
// of the source file's path, size, and modification time. Two independent
// namespaces keep full-record results and model-assisted partial results
// separate, so toggling the vision path never invalidates heuristic-only
// work. Entries for a changed file are orphaned, not evicted: a new
// size/mtime produces a new fingerprint and the old entry is simply never
// read again.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Namespaces for the two result stores.
const (
	NSRecords = "records"
	NSVision  = "vision"
)

// Store is a disk-backed, fingerprint-keyed result cache. A nil or
// disabled Store is safe to use; all operations become no-ops.
type Store struct {
	root    string
	enabled bool
}

// New returns a Store rooted at dir. When enabled is false every Get
// misses and every Put is dropped.
func New(dir string, enabled bool) *Store {
	return &Store{root: dir, enabled: enabled}
}

// Fingerprint derives the cache key for path from its absolute path, byte
// size, and modification time. It returns an empty key when the file
// cannot be stat'd; callers treat that as uncacheable.
func Fingerprint(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())))
	return fmt.Sprintf("%x", sum)
}

// entryPath returns the JSON file backing key within namespace ns.
func (s *Store) entryPath(ns, key string) string {
	return filepath.Join(s.root, ns, key+".json")
}

// Get loads the cached value for path in namespace ns into out. It
// reports whether a valid entry was found. Corrupt or unreadable entries
// count as misses; the cache never fails the pipeline.
func (s *Store) Get(ns, path string, out any) bool {
	if s == nil || !s.enabled {
		return false
	}
	key := Fingerprint(path)
	if key == "" {
		return false
	}
	data, err := os.ReadFile(s.entryPath(ns, key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false
	}
	return true
}

// Put stores v for path in namespace ns. Failures are swallowed: a cache
// write error degrades to redundant future work, never to a lost record.
func (s *Store) Put(ns, path string, v any) {
	if s == nil || !s.enabled {
		return
	}
	key := Fingerprint(path)
	if key == "" {
		return
	}
	dir := filepath.Join(s.root, ns)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(s.entryPath(ns, key), data, 0o644)
}
