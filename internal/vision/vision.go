// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vision extracts bibliographic metadata from the rendered first
// page of a PDF via a multimodal model. It is an optional refinement
// stage: every failure degrades to an empty result so the caller keeps
// its heuristic values.
package vision

import (
	"context"
	"strings"

	"github.com/pdiddy/catalog-engine/internal/cache"
	"github.com/pdiddy/catalog-engine/internal/pdftext"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

// Backend abstracts the multimodal inference API so tests can supply a mock.
type Backend interface {
	ExtractPage(ctx context.Context, jpeg []byte) (Fields, error)
}

// Fields is the structured metadata returned by the model. Absent fields
// stay empty and are treated as placeholders when merging.
type Fields struct {
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Year    string `json:"year"`
	Journal string `json:"journal"`
	Volume  string `json:"volume"`
	Issue   string `json:"issue"`
	Pages   string `json:"pages"`
}

// IsEmpty reports whether the model produced nothing usable.
func (f Fields) IsEmpty() bool {
	return f == Fields{}
}

// MergeInto overwrites rec's fields with the model's values wherever the
// model produced a real answer. A placeholder from the model never
// downgrades a value the heuristics already resolved.
func (f Fields) MergeInto(rec *types.PaperRecord) {
	merge := func(dst *string, v string) {
		if !types.IsPlaceholder(v) {
			*dst = v
		}
	}
	merge(&rec.Title, f.Title)
	merge(&rec.Authors, f.Authors)
	merge(&rec.Year, f.Year)
	merge(&rec.Journal, f.Journal)
	merge(&rec.Volume, f.Volume)
	merge(&rec.Issue, f.Issue)
	merge(&rec.Pages, f.Pages)
}

// Extractor runs the model path for a file: render page 1, ask the
// backend, cache the answer keyed by the file's fingerprint.
type Extractor struct {
	backend Backend
	cache   *cache.Store

	// renderPage is swappable for tests.
	renderPage func(path string) ([]byte, error)
}

// NewExtractor returns an Extractor using the given backend and cache.
func NewExtractor(backend Backend, store *cache.Store) *Extractor {
	return &Extractor{
		backend: backend,
		cache:   store,
		renderPage: func(path string) ([]byte, error) {
			return pdftext.PageImage(path, 1, pdftext.DefaultMaxEdge, pdftext.DefaultJPEGQuality)
		},
	}
}

// Extract returns model-derived metadata for the file's first page.
// Failures of any kind (render, network, parse) yield empty Fields;
// this path never fails the extraction pipeline.
func (e *Extractor) Extract(ctx context.Context, path string) Fields {
	if e == nil || e.backend == nil {
		return Fields{}
	}

	var cached Fields
	if e.cache.Get(cache.NSVision, path, &cached) {
		return cached
	}

	jpeg, err := e.renderPage(path)
	if err != nil || len(jpeg) == 0 {
		return Fields{}
	}

	fields, err := e.backend.ExtractPage(ctx, jpeg)
	if err != nil {
		return Fields{}
	}

	e.cache.Put(cache.NSVision, path, fields)
	return fields
}

// stripCodeFence unwraps a ```json ... ``` (or bare ```) block around the
// model's answer. Models often fence JSON despite instructions not to.
func stripCodeFence(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+len("```"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s)
}
