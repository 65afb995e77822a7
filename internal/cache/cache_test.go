// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Title string `json:"title"`
	Year  string `json:"year"`
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "paper.pdf", "pdf bytes")
	s := New(filepath.Join(dir, "cache"), true)

	var got payload
	assert.False(t, s.Get(NSRecords, src, &got), "empty cache should miss")

	want := payload{Title: "A Study of Things", Year: "2009"}
	s.Put(NSRecords, src, want)

	require.True(t, s.Get(NSRecords, src, &got))
	assert.Equal(t, want, got)
}

func TestNamespacesAreIndependent(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "paper.pdf", "pdf bytes")
	s := New(filepath.Join(dir, "cache"), true)

	s.Put(NSRecords, src, payload{Title: "full record"})

	var got payload
	assert.False(t, s.Get(NSVision, src, &got), "vision namespace must not see record entries")
	require.True(t, s.Get(NSRecords, src, &got))
	assert.Equal(t, "full record", got.Title)
}

func TestFingerprintInvalidation(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "paper.pdf", "pdf bytes")
	s := New(filepath.Join(dir, "cache"), true)

	s.Put(NSRecords, src, payload{Title: "before"})

	// Changing size produces a new fingerprint.
	require.NoError(t, os.WriteFile(src, []byte("pdf bytes plus more"), 0o644))
	var got payload
	assert.False(t, s.Get(NSRecords, src, &got))

	// Restore size but bump mtime: still a miss.
	require.NoError(t, os.WriteFile(src, []byte("pdf bytes"), 0o644))
	future := time.Now().Add(2 * time.Hour)
	require.NoError(t, os.Chtimes(src, future, future))
	assert.False(t, s.Get(NSRecords, src, &got))
}

func TestDisabledStoreIsNoop(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "paper.pdf", "pdf bytes")
	s := New(filepath.Join(dir, "cache"), false)

	s.Put(NSRecords, src, payload{Title: "dropped"})
	var got payload
	assert.False(t, s.Get(NSRecords, src, &got))
	_, err := os.Stat(filepath.Join(dir, "cache"))
	assert.True(t, os.IsNotExist(err), "disabled store should not create directories")
}

func TestCorruptEntryIsAMiss(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "paper.pdf", "pdf bytes")
	root := filepath.Join(dir, "cache")
	s := New(root, true)

	s.Put(NSRecords, src, payload{Title: "good"})
	entry := s.entryPath(NSRecords, Fingerprint(src))
	require.NoError(t, os.WriteFile(entry, []byte("{not json"), 0o644))

	var got payload
	assert.False(t, s.Get(NSRecords, src, &got))
}

func TestFingerprintMissingFile(t *testing.T) {
	assert.Equal(t, "", Fingerprint(filepath.Join(t.TempDir(), "absent.pdf")))
}
