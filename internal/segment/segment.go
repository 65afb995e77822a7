// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment detects when one PDF file holds several distinct papers
// and partitions it into page ranges, one per paper. Detection is a
// one-shot analysis: candidate boundary lines are matched per page,
// scored by local context, filtered to one per page, and turned into
// contiguous ranges. A legitimately single paper with an "Introduction"
// heading mid-document can be over-segmented; the confidence score and
// the two-page minimum range are the only guards, a deliberate
// precision/recall tradeoff.
package segment

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Boundary is one detected paper span. Pages are 0-based inclusive.
type Boundary struct {
	StartPage int
	EndPage   int
	Title     string
}

// candidate is a line hypothesized to start a new paper.
type candidate struct {
	page       int
	line       string
	confidence float64
}

// newPaperPatterns match lines that can open a paper, ordered from
// title-shaped lines to explicit front-matter headers.
var newPaperPatterns = compile(
	`^[A-Z][A-Za-z\s:]{10,100}$`,
	`^\s*Abstract[\s:]*`,
	`^\s*ABSTRACT[\s:]*`,
	`^\s*Introduction[\s:]*`,
	`^\s*INTRODUCTION[\s:]*`,
	`^\s*1\.?\s+Introduction`,
	`^\s*I\.?\s+INTRODUCTION`,
	`^\s*Keywords?[\s:]*`,
	`^\s*KEYWORDS?[\s:]*`,
)

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// startIndicators distinguish a genuine paper opening from a mid-paper
// section heading: real openings are followed by front matter.
var startIndicators = []string{
	"abstract", "author", "university", "department",
	"email", "@", "keywords", "introduction",
}

// FindBoundaries partitions a document into paper spans. pages holds the
// text of each page; totalPages is the page count of the file (pages may
// be shorter when trailing pages had no text). The result always covers
// pages 0..totalPages-1 and has at least one element.
func FindBoundaries(pages []string, totalPages int) []Boundary {
	if totalPages < 1 {
		totalPages = len(pages)
	}
	if totalPages < 1 {
		totalPages = 1
	}

	wholeDocument := []Boundary{{StartPage: 0, EndPage: totalPages - 1, Title: "Unknown"}}

	candidates := findCandidates(pages)
	if len(candidates) == 0 {
		return wholeDocument
	}

	// One candidate per page, best confidence first within a page.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].page != candidates[j].page {
			return candidates[i].page < candidates[j].page
		}
		return candidates[i].confidence > candidates[j].confidence
	})
	var starts []candidate
	lastPage := -1
	for _, c := range candidates {
		if c.page != lastPage {
			starts = append(starts, c)
			lastPage = c.page
		}
	}

	var boundaries []Boundary
	for i, start := range starts {
		endPage := totalPages - 1
		if i+1 < len(starts) {
			endPage = starts[i+1].page - 1
		}
		// A paper needs at least two pages; shorter spans are section
		// headings misread as openings.
		if endPage-start.page < 1 {
			continue
		}
		boundaries = append(boundaries, Boundary{
			StartPage: start.page,
			EndPage:   endPage,
			Title:     truncate(start.line, 100),
		})
	}

	if len(boundaries) == 0 {
		return wholeDocument
	}

	// Cover any preamble before the first detected opening.
	if boundaries[0].StartPage > 0 {
		boundaries = append([]Boundary{{
			StartPage: 0,
			EndPage:   boundaries[0].StartPage - 1,
			Title:     "Unknown",
		}}, boundaries...)
	}

	return boundaries
}

// findCandidates scans the first 10 non-blank lines of every page for
// paper-opening shapes, keeping only those that look like genuine starts.
func findCandidates(pages []string) []candidate {
	var candidates []candidate
	for pageNum, pageText := range pages {
		lines := nonBlankLines(pageText)
		scan := lines
		if len(scan) > 10 {
			scan = scan[:10]
		}
		for lineNum, line := range scan {
			if utf8.RuneCountInString(line) < 10 {
				continue
			}
			for _, re := range newPaperPatterns {
				if !re.MatchString(line) {
					continue
				}
				if likelyPaperStart(lines, lineNum, pageNum) {
					candidates = append(candidates, candidate{
						page:       pageNum,
						line:       line,
						confidence: startConfidence(lines, lineNum),
					})
				}
				break
			}
		}
	}
	return candidates
}

// likelyPaperStart reports whether the matched line is a genuine paper
// opening rather than a section heading. Page 0 always qualifies; later
// pages need front-matter context within the next four lines.
func likelyPaperStart(lines []string, lineNum, pageNum int) bool {
	if pageNum == 0 {
		return true
	}
	following := strings.ToLower(strings.Join(window(lines, lineNum+1, lineNum+5), " "))
	for _, indicator := range startIndicators {
		if strings.Contains(following, indicator) {
			return true
		}
	}
	return false
}

// startConfidence scores a candidate from its surrounding lines. The base
// is 0.5; front-matter vocabulary raises it, back-matter and structural
// vocabulary lowers it. Clamped to [0,1].
func startConfidence(lines []string, lineNum int) float64 {
	confidence := 0.5
	context := strings.ToLower(strings.Join(window(lines, lineNum-2, lineNum+5), " "))

	if strings.Contains(context, "abstract") {
		confidence += 0.3
	}
	if strings.Contains(context, "author") || strings.Contains(context, "university") {
		confidence += 0.2
	}
	if strings.Contains(context, "keywords") {
		confidence += 0.1
	}
	if strings.Contains(context, "@") || strings.Contains(context, "email") {
		confidence += 0.1
	}
	if strings.Contains(context, "conclusion") || strings.Contains(context, "references") {
		confidence -= 0.3
	}
	if strings.Contains(context, "section") || strings.Contains(context, "chapter") {
		confidence -= 0.2
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

// window returns lines[from:to] clamped to valid indices.
func window(lines []string, from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from >= to {
		return nil
	}
	return lines[from:to]
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
