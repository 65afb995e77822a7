// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/catalog-engine/internal/cache"
	"github.com/pdiddy/catalog-engine/internal/segment"
	"github.com/pdiddy/catalog-engine/internal/vision"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

// countingBackend records whether the model path was consulted.
type countingBackend struct {
	calls int
}

func (b *countingBackend) ExtractPage(ctx context.Context, jpeg []byte) (vision.Fields, error) {
	b.calls++
	return vision.Fields{}, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(types.ExtractionConfig{CacheDir: t.TempDir(), UseCache: true}, nil)
}

// writeStubPDF writes a file the text backends cannot parse. Extraction
// must still return a sentinel-filled record for it.
func writeStubPDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 not really"), 0o644))
	return path
}

func TestExtractMissingFile(t *testing.T) {
	s := newTestService(t)

	rec := s.Extract(context.Background(), "/nonexistent/paper.pdf", false)

	assert.Equal(t, "Error", rec.Title)
	assert.NotEmpty(t, rec.Error)
	assert.Equal(t, "/nonexistent/paper.pdf", rec.FilePath)
}

func TestExtractUnparseableFileYieldsSentinels(t *testing.T) {
	s := newTestService(t)
	path := writeStubPDF(t, t.TempDir(), "broken.pdf")

	rec := s.Extract(context.Background(), path, false)

	assert.Empty(t, rec.Error)
	assert.Equal(t, types.UnknownValue, rec.Title)
	assert.Equal(t, types.UnknownValue, rec.Authors)
	assert.Equal(t, types.NotAvailable, rec.Journal)
	assert.Equal(t, path, rec.FilePath)
}

func TestExtractServesSecondCallFromCache(t *testing.T) {
	dir := t.TempDir()
	s := New(types.ExtractionConfig{CacheDir: filepath.Join(dir, "cache"), UseCache: true}, nil)
	path := writeStubPDF(t, dir, "paper.pdf")

	first := s.Extract(context.Background(), path, false)

	// Plant a marker in the cached entry; an unchanged file must be
	// answered from the cache, surfacing the marker.
	first.Title = "From The Cache"
	s.cache.Put(cache.NSRecords, path, first)

	second := s.Extract(context.Background(), path, false)
	assert.Equal(t, "From The Cache", second.Title)
}

func TestExtractFastModeSkipsVision(t *testing.T) {
	dir := t.TempDir()
	backend := &countingBackend{}
	s := New(types.ExtractionConfig{CacheDir: filepath.Join(dir, "cache"), UseCache: false, UseVision: true}, backend)
	path := writeStubPDF(t, dir, "paper.pdf")

	s.Extract(context.Background(), path, true)

	assert.Zero(t, backend.calls)
}

func TestExtractBatchOneRecordPerPath(t *testing.T) {
	dir := t.TempDir()
	s := New(types.ExtractionConfig{CacheDir: filepath.Join(dir, "cache"), UseCache: true, MaxWorkers: 2}, nil)

	paths := []string{
		writeStubPDF(t, dir, "a.pdf"),
		filepath.Join(dir, "missing.pdf"),
		writeStubPDF(t, dir, "b.pdf"),
	}

	var out bytes.Buffer
	records, summary := s.ExtractBatch(context.Background(), paths, true, &out)

	require.Len(t, records, 3)
	assert.Equal(t, 2, summary.Extracted)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 3, summary.Total())
	assert.True(t, summary.HasFailures())

	got := map[string]bool{}
	failures := 0
	for _, rec := range records {
		got[rec.FilePath] = true
		if rec.Error != "" {
			failures++
		}
	}
	for _, p := range paths {
		assert.True(t, got[p], "missing record for %s", p)
	}
	assert.Equal(t, 1, failures)
	assert.Contains(t, out.String(), "failed  "+paths[1])
}

func TestExtractBatchEmptyInput(t *testing.T) {
	s := newTestService(t)

	records, summary := s.ExtractBatch(context.Background(), nil, false, &bytes.Buffer{})

	assert.Empty(t, records)
	assert.False(t, summary.HasFailures())
}

func TestDetectAndSplitSinglePaper(t *testing.T) {
	dir := t.TempDir()
	s := New(types.ExtractionConfig{CacheDir: filepath.Join(dir, "cache"), UseCache: false}, nil)
	path := writeStubPDF(t, dir, "single.pdf")

	records := s.DetectAndSplit(context.Background(), path)

	require.Len(t, records, 1)
	assert.False(t, records[0].IsMultiPaper)
}

func TestExtractSection(t *testing.T) {
	s := newTestService(t)
	pages := []string{
		"front matter",
		"Urban Migration and Family Structure\nJane Smith\nUniversity of Somewhere\nAbstract\nThis paper examines migration in 2009年.",
		"body text continues",
		"more body text",
	}

	rec := s.extractSection("multi.pdf", pages, segment.Boundary{StartPage: 1, EndPage: 3}, 2, 3)

	assert.True(t, rec.IsMultiPaper)
	assert.Equal(t, 2, rec.PaperNumber)
	assert.Equal(t, 3, rec.TotalPapers)
	assert.Equal(t, "2-4", rec.PageRange)
	assert.Equal(t, "2-4", rec.Pages)
	assert.Equal(t, "2009", rec.Year)
	assert.Contains(t, rec.FullContent, "body text continues")
	assert.NotContains(t, rec.FullContent, "front matter")
}

func TestExtractSectionUnresolvedTitle(t *testing.T) {
	s := newTestService(t)

	rec := s.extractSection("multi.pdf", []string{"", "", ""}, segment.Boundary{StartPage: 0, EndPage: 2}, 1, 2)

	assert.Equal(t, "Paper 1 (Unknown Title)", rec.Title)
}
