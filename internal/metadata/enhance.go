// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata fills bibliographic fields from extracted PDF text by
// trying ordered regular-expression groups against the text window where
// each field is most likely to appear. Periodical identifiers come from
// header/footer lines first; titles and authors from the opening of the
// body; years are always re-derived from content because embedded document
// properties lie about periodicals.
package metadata

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

// Search-window sizes in characters, per field.
const (
	journalBodyWindow = 500
	titleWindow       = 1500
	authorWindow      = 2000
	yearHeaderWindow  = 500
	yearBodyWindow    = 3000
	volumeIssueWindow = 2000
	pagesWindow       = 2000
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Enhance fills every empty or placeholder field of rec from content and
// headerFooter text. Each field resolves independently and short-circuits
// on the first non-empty result; a field no pattern matches keeps its
// sentinel.
func Enhance(rec *types.PaperRecord, content, headerFooter string) {
	lines := strings.Split(content, "\n")

	if types.IsPlaceholder(rec.Journal) {
		if j := Journal(headerFooter, content); j != "" {
			rec.Journal = j
		}
	}
	if types.IsPlaceholder(rec.Title) {
		if t := Title(content, lines); t != "" {
			rec.Title = t
		}
	}
	if types.IsPlaceholder(rec.Authors) {
		if a := Authors(content, lines); a != "" {
			rec.Authors = a
		}
	}

	// Year is always re-derived: content outranks embedded properties.
	if y := Year(content); y != "" {
		rec.Year = y
	}

	if types.IsPlaceholder(rec.Volume) {
		if v := firstMatch(volumePatterns, headerFooter, head(content, volumeIssueWindow)); v != "" {
			rec.Volume = v
		}
	}
	if types.IsPlaceholder(rec.Issue) {
		if v := firstMatch(issuePatterns, headerFooter, head(content, volumeIssueWindow)); v != "" {
			rec.Issue = v
		}
	}
	if types.IsPlaceholder(rec.Pages) {
		if p := Pages(content); p != "" {
			rec.Pages = p
		}
	}
}

// Journal resolves the periodical name, preferring header/footer text over
// the first 500 characters of body text. Accepted names are 3-100
// characters after whitespace normalization.
func Journal(headerFooter, content string) string {
	for _, zone := range []string{headerFooter, head(content, journalBodyWindow)} {
		if zone == "" {
			continue
		}
		for _, re := range journalPatterns {
			m := re.FindStringSubmatch(zone)
			if m == nil {
				continue
			}
			journal := whitespaceRe.ReplaceAllString(strings.TrimSpace(m[1]), " ")
			if n := utf8.RuneCountInString(journal); n >= 3 && n <= 100 {
				return journal
			}
		}
	}
	return ""
}

var pageNumberLineRe = regexp.MustCompile(`^\d+$`)

// Title resolves the paper title from the first 1500 characters, falling
// back to the first of the opening 10 lines that looks like one. Accepted
// titles are 10-300 characters.
func Title(content string, lines []string) string {
	window := head(content, titleWindow)
	for _, re := range titlePatterns {
		m := re.FindStringSubmatch(window)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[1])
		if n := utf8.RuneCountInString(title); n >= 10 && n <= 300 {
			title = whitespaceRe.ReplaceAllString(title, " ")
			return strings.Trim(title, ".,;:")
		}
	}

	// Fallback: first substantial line shaped like a title.
	for _, line := range limit(lines, 10) {
		line = strings.TrimSpace(line)
		n := utf8.RuneCountInString(line)
		if n < 10 || n > 300 {
			continue
		}
		if pageNumberLineRe.MatchString(line) {
			continue
		}
		switch strings.ToLower(line) {
		case "abstract", "introduction", "keywords":
			continue
		}
		if line[0] >= 'A' && line[0] <= 'Z' && !strings.HasSuffix(line, ":") {
			return line
		}
	}
	return ""
}

var namePairRe = regexp.MustCompile(`[A-Z][a-z]+\s+[A-Z][a-z]+`)

// affiliationIndicators mark a line as being followed by author context.
var affiliationIndicators = []string{"@", "university", "department", "institute", "college"}

// Authors resolves the author line. The three highest-priority explicit
// patterns run against the first 2000 characters; failing that, the first
// 20 lines are scanned for a two-capitalized-word name whose surrounding
// lines carry an affiliation or email indicator.
func Authors(content string, lines []string) string {
	window := head(content, authorWindow)
	for _, re := range authorPatterns[:3] {
		m := re.FindStringSubmatch(window)
		if m == nil {
			continue
		}
		authors := whitespaceRe.ReplaceAllString(strings.TrimSpace(m[1]), " ")
		if n := utf8.RuneCountInString(authors); n > 3 && n < 500 {
			return authors
		}
	}

	for i, line := range limit(lines, 20) {
		line = strings.TrimSpace(line)
		// The first line is the title; abstract lines are past the authors.
		if i == 0 || strings.Contains(strings.ToLower(line), "abstract") {
			continue
		}
		if !namePairRe.MatchString(line) {
			continue
		}
		context := strings.ToLower(strings.Join(limit(lines[i:], 3), " "))
		for _, indicator := range affiliationIndicators {
			if strings.Contains(context, indicator) {
				return head(line, 200)
			}
		}
	}
	return ""
}

// traditionalDigits maps traditional numeral glyphs to Arabic digits,
// covering both zero glyph variants plus 零.
var traditionalDigits = map[rune]rune{
	'○': '0', '〇': '0', '零': '0',
	'一': '1', '二': '2', '三': '3', '四': '4',
	'五': '5', '六': '6', '七': '7', '八': '8', '九': '9',
}

var traditionalYearRe = regexp.MustCompile(`^[二三四五六七八九○〇零一]{4}`)

// TraditionalYearToArabic converts a 4-character traditional numeral year
// (e.g. 二○○九) to its Arabic form. It returns "" when any character has
// no digit mapping.
func TraditionalYearToArabic(year string) string {
	var sb strings.Builder
	for _, r := range year {
		d, ok := traditionalDigits[r]
		if !ok {
			return ""
		}
		sb.WriteRune(d)
	}
	if sb.Len() != 4 {
		return ""
	}
	return sb.String()
}

// Year resolves the publication year. The header zone (first 500 chars) is
// searched first across all patterns; the body zone (first 3000 chars)
// only when the header yields nothing. Candidates are validated to
// [1900, current_year+1]; among valid candidates the largest not exceeding
// the current year wins, with the overall largest as last resort.
func Year(content string) string {
	current := time.Now().Year()

	if y := pickYear(collectYears(head(content, yearHeaderWindow), current), current); y != "" {
		return y
	}
	return pickYear(collectYears(head(content, yearBodyWindow), current), current)
}

func collectYears(zone string, current int) []int {
	var years []int
	for _, re := range yearPatterns {
		for _, m := range re.FindAllStringSubmatch(zone, -1) {
			candidate := m[1]
			if traditionalYearRe.MatchString(candidate) {
				if arabic := TraditionalYearToArabic(head(candidate, 4)); arabic != "" {
					candidate = arabic
				}
			}
			year, err := strconv.Atoi(candidate)
			if err != nil {
				continue
			}
			if year >= 1900 && year <= current+1 {
				years = append(years, year)
			}
		}
	}
	return years
}

func pickYear(years []int, current int) string {
	if len(years) == 0 {
		return ""
	}
	best, fallback := 0, 0
	for _, y := range years {
		if y > fallback {
			fallback = y
		}
		if y <= current && y > best {
			best = y
		}
	}
	if best == 0 {
		// Every candidate is in the future; implausible, but better than
		// nothing as a last resort.
		best = fallback
	}
	return strconv.Itoa(best)
}

// Pages resolves a page range "start-end" from the first 2000 characters.
func Pages(content string) string {
	window := head(content, pagesWindow)
	for _, re := range pagesPatterns {
		m := re.FindStringSubmatch(window)
		if m != nil && len(m) >= 3 {
			return m[1] + "-" + m[2]
		}
	}
	return ""
}

// firstMatch tries every pattern against each zone in order, returning the
// first capture. Earlier zones fully outrank later ones.
func firstMatch(patterns []*regexp.Regexp, zones ...string) string {
	for _, zone := range zones {
		if zone == "" {
			continue
		}
		for _, re := range patterns {
			if m := re.FindStringSubmatch(zone); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

// head returns the first n runes of s.
func head(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// limit returns at most n leading elements of lines.
func limit(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
