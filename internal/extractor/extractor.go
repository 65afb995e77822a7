// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extractor orchestrates the metadata extraction pipeline for PDF
// files: cached-result lookup, text acquisition, heuristic enhancement,
// optional model-assisted refinement, and multi-paper splitting. A
// Service instance carries all state; there are no package-level
// singletons, so concurrent services with different configurations can
// coexist.
package extractor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/catalog-engine/internal/cache"
	"github.com/pdiddy/catalog-engine/internal/metadata"
	"github.com/pdiddy/catalog-engine/internal/pdftext"
	"github.com/pdiddy/catalog-engine/internal/segment"
	"github.com/pdiddy/catalog-engine/internal/vision"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

const (
	defaultWorkers      = 4
	defaultFastMaxPages = 3
	previewChars        = 500
	sectionChars        = 3000
)

// Service runs metadata extraction for PDF files. Construct with New;
// the zero value is not usable.
type Service struct {
	cfg    types.ExtractionConfig
	cache  *cache.Store
	vision *vision.Extractor
}

// New builds a Service from cfg. backend may be nil; the model-assisted
// path runs only when cfg.UseVision is set and a backend is supplied.
func New(cfg types.ExtractionConfig, backend vision.Backend) *Service {
	store := cache.New(cfg.CacheDir, cfg.UseCache)
	s := &Service{cfg: cfg, cache: store}
	if cfg.UseVision && backend != nil {
		s.vision = vision.NewExtractor(backend, store)
	}
	return s
}

// Extract produces one PaperRecord for the file at path. In fast mode the
// page window shrinks and the model-assisted path is skipped. Extraction
// never fails: an unreadable file yields an error-tagged record.
func (s *Service) Extract(ctx context.Context, path string, fastMode bool) types.PaperRecord {
	var cached types.PaperRecord
	if s.cache.Get(cache.NSRecords, path, &cached) {
		return cached
	}

	if _, err := os.Stat(path); err != nil {
		return types.ErrorRecord(path, err)
	}

	rec := types.NewPaperRecord(path)
	seedFromProperties(&rec, pdftext.ReadProperties(path))

	content := pdftext.Text(path, s.maxPages(fastMode))
	metadata.Enhance(&rec, content, pdftext.HeaderFooterText(path))

	if !fastMode && s.vision != nil {
		s.vision.Extract(ctx, path).MergeInto(&rec)
	}

	rec.ContentPreview = firstRunes(content, previewChars)
	rec.FullContent = content

	s.cache.Put(cache.NSRecords, path, rec)
	return rec
}

// BatchSummary holds counts from a batch extraction run.
type BatchSummary struct {
	Extracted int
	Failed    int
}

// Total returns the number of files processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.Failed
}

// HasFailures reports whether any files produced error-tagged records.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ExtractBatch extracts metadata from many files concurrently across a
// bounded worker pool. One record is returned per input path, in
// completion order; a single file's failure is isolated into its
// error-tagged record and never aborts the batch. Progress lines are
// written to w.
func (s *Service) ExtractBatch(ctx context.Context, paths []string, fastMode bool, w io.Writer) ([]types.PaperRecord, BatchSummary) {
	workers := s.cfg.MaxWorkers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make(chan types.PaperRecord)

	for i := 0; i < workers; i++ {
		go func() {
			for path := range jobs {
				results <- s.extractIsolated(ctx, path, fastMode)
			}
		}()
	}

	go func() {
		for _, path := range paths {
			jobs <- path
		}
		close(jobs)
	}()

	records := make([]types.PaperRecord, 0, len(paths))
	var summary BatchSummary
	for range paths {
		rec := <-results
		if rec.Error != "" {
			fmt.Fprintf(w, "failed  %s: %s\n", rec.FilePath, rec.Error)
			summary.Failed++
		} else {
			fmt.Fprintf(w, "extracted %s\n", rec.FilePath)
			summary.Extracted++
		}
		records = append(records, rec)
	}
	return records, summary
}

// extractIsolated shields the batch from a panicking extraction backend.
// The PDF parsers recover internally, but a worker must never take the
// whole batch down.
func (s *Service) extractIsolated(ctx context.Context, path string, fastMode bool) (rec types.PaperRecord) {
	defer func() {
		if r := recover(); r != nil {
			rec = types.ErrorRecord(path, fmt.Errorf("extraction panic: %v", r))
		}
	}()
	return s.Extract(ctx, path, fastMode)
}

// DetectAndSplit checks whether the file holds several distinct papers.
// A single-paper file goes through the normal Extract path; a multi-paper
// file yields one record per detected page range, each independently
// enhanced from that range's text and tagged with its position.
func (s *Service) DetectAndSplit(ctx context.Context, path string) []types.PaperRecord {
	pages := pdftext.PageTexts(path, 0)
	boundaries := segment.FindBoundaries(pages, pdftext.PageCount(path))

	if len(boundaries) <= 1 {
		return []types.PaperRecord{s.Extract(ctx, path, false)}
	}

	records := make([]types.PaperRecord, 0, len(boundaries))
	for i, b := range boundaries {
		records = append(records, s.extractSection(path, pages, b, i+1, len(boundaries)))
	}
	return records
}

// extractSection builds the record for one page range of a multi-paper
// file. Only the range's own text feeds the heuristics; the pages field
// carries the 1-based page range within the file.
func (s *Service) extractSection(path string, pages []string, b segment.Boundary, number, total int) types.PaperRecord {
	var parts []string
	for i := b.StartPage; i <= b.EndPage && i < len(pages); i++ {
		parts = append(parts, pages[i])
	}
	text := strings.TrimSpace(strings.Join(parts, "\n\n"))

	rec := types.NewPaperRecord(path)
	metadata.Enhance(&rec, firstRunes(text, sectionChars), "")

	pageRange := fmt.Sprintf("%d-%d", b.StartPage+1, b.EndPage+1)
	rec.Pages = pageRange
	rec.PageRange = pageRange
	rec.IsMultiPaper = true
	rec.PaperNumber = number
	rec.TotalPapers = total
	rec.ContentPreview = firstRunes(text, previewChars)
	rec.FullContent = text

	if types.IsPlaceholder(rec.Title) {
		rec.Title = fmt.Sprintf("Paper %d (Unknown Title)", number)
	}
	return rec
}

// seedFromProperties pre-fills the record from the document information
// dictionary. Year is seeded too but the enhancer always re-derives it
// from content, which is more trustworthy for scanned periodicals.
func seedFromProperties(rec *types.PaperRecord, props pdftext.Properties) {
	if strings.TrimSpace(props.Title) != "" {
		rec.Title = strings.TrimSpace(props.Title)
	}
	if strings.TrimSpace(props.Author) != "" {
		rec.Authors = strings.TrimSpace(props.Author)
	}
	if props.Year != "" {
		rec.Year = props.Year
	}
}

func (s *Service) maxPages(fastMode bool) int {
	if fastMode {
		if s.cfg.FastMaxPages > 0 {
			return s.cfg.FastMaxPages
		}
		return defaultFastMaxPages
	}
	if s.cfg.MaxPages > 0 {
		return s.cfg.MaxPages
	}
	return pdftext.DefaultMaxPages
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
