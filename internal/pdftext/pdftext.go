// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext acquires text and embedded properties from PDF files.
//
// Two extraction backends are layered: ledongthuc/pdf reads the document
// structure directly and is tried first; when it fails (malformed xref
// tables, broken encodings) a pdfcpu content-stream parser takes over.
// Total failure yields empty text rather than an error — metadata mining
// continues with whatever was obtained.
package pdftext

import (
	"regexp"
	"strings"
)

// DefaultMaxPages bounds how many pages of text feed metadata mining.
const DefaultMaxPages = 10

// headerFooterPages is the page window scanned for recurring periodical
// identifiers.
const headerFooterPages = 3

// Properties holds the embedded document information dictionary fields
// relevant to cataloging.
type Properties struct {
	Title     string
	Author    string
	Subject   string
	PageCount int

	// Year is derived from the /CreationDate entry when parseable. Content
	// text outranks it for periodicals; it survives only as a last resort.
	Year string
}

var creationYearRe = regexp.MustCompile(`(19|20)\d{2}`)

// ReadProperties extracts the information dictionary from the PDF at path.
// It never fails: unreadable files produce a zero Properties.
func ReadProperties(path string) Properties {
	props, err := readerProperties(path)
	if err != nil {
		return Properties{}
	}
	return props
}

// Text returns the concatenated plain text of the first maxPages pages.
// maxPages <= 0 applies DefaultMaxPages. Backend failure falls through to
// the secondary extractor; total failure returns "".
func Text(path string, maxPages int) string {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	pages := PageTexts(path, maxPages)
	return strings.TrimSpace(strings.Join(pages, "\n\n"))
}

// PageTexts returns one text block per page, up to maxPages pages
// (maxPages <= 0 means all pages). The result is empty when both backends
// fail.
func PageTexts(path string, maxPages int) []string {
	pages, err := readerPageTexts(path, maxPages)
	if err == nil && nonEmptyCount(pages) > 0 {
		return pages
	}
	pages, err = streamPageTexts(path, maxPages)
	if err != nil {
		return nil
	}
	return pages
}

// HeadersFooters returns the first and last non-empty line of each of the
// first headerFooterPages pages. Periodical identifiers (journal name,
// volume, issue) recur there more reliably than in body text.
func HeadersFooters(path string) (headers, footers []string) {
	pages := PageTexts(path, headerFooterPages)
	for _, page := range pages {
		var lines []string
		for _, line := range strings.Split(page, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, strings.TrimSpace(line))
			}
		}
		if len(lines) == 0 {
			continue
		}
		headers = append(headers, lines[0])
		if len(lines) > 1 {
			footers = append(footers, lines[len(lines)-1])
		}
	}
	return headers, footers
}

// HeaderFooterText joins headers and footers into the single search zone
// the metadata patterns run against.
func HeaderFooterText(path string) string {
	headers, footers := HeadersFooters(path)
	return strings.Join(append(headers, footers...), "\n")
}

// PageCount returns the number of pages in the PDF, or 0 when unreadable.
func PageCount(path string) int {
	return ReadProperties(path).PageCount
}

func nonEmptyCount(pages []string) int {
	n := 0
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
