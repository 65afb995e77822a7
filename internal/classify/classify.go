// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns subject categories to extracted papers. The
// primary path asks a Generative AI API; a bilingual keyword scorer
// serves as the fallback when no API is configured or a call fails.
package classify

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

// keywordContentChars bounds how much body text feeds keyword scoring.
const keywordContentChars = 500

// Backend abstracts the AI classification API so tests can supply a mock.
type Backend interface {
	Classify(ctx context.Context, title, content, authors string) (types.Classification, error)
}

// Classifier assigns subject categories to papers. Construct with New.
type Classifier struct {
	backend Backend
}

// New returns a Classifier. backend may be nil, in which case every paper
// goes through the keyword fallback.
func New(backend Backend) *Classifier {
	return &Classifier{backend: backend}
}

// Classify produces a subject assignment for one paper. A backend
// failure falls back to keyword scoring rather than surfacing an error:
// an unclassified paper is worse than a keyword-classified one.
func (c *Classifier) Classify(ctx context.Context, title, content, authors string) types.Classification {
	if c.backend != nil {
		cls, err := c.backend.Classify(ctx, title, content, authors)
		if err == nil {
			return cls
		}
	}
	return KeywordClassify(title, content)
}

// ClassifyBatch attaches a Classification to every record in place,
// writing one progress line per paper to w.
func (c *Classifier) ClassifyBatch(ctx context.Context, records []types.PaperRecord, w io.Writer) []types.PaperRecord {
	for i := range records {
		cls := c.Classify(ctx, records[i].Title, records[i].ContentPreview, records[i].Authors)
		records[i].Classification = &cls
		fmt.Fprintf(w, "classified %s: %s (%s)\n", records[i].Title, cls.PrimarySubject, cls.Confidence)
	}
	return records
}

// KeywordClassify scores every category's keyword list against the title
// plus the first 500 characters of content. The top score wins; the next
// two become secondary subjects. Confidence tracks the hit count: high at
// three or more, medium at two, low below.
func KeywordClassify(title, content string) types.Classification {
	text := strings.ToLower(title + " " + firstRunes(content, keywordContentChars))

	type scored struct {
		category string
		score    int
	}
	var scores []scored
	for _, group := range keywordGroups {
		score := 0
		for _, keyword := range group.keywords {
			if strings.Contains(text, keyword) {
				score++
			}
		}
		if score > 0 {
			scores = append(scores, scored{group.category, score})
		}
	}

	if len(scores) == 0 {
		return types.Classification{
			PrimarySubject:    "Other",
			SecondarySubjects: []string{},
			Confidence:        "low",
			Reasoning:         "No matching keywords found",
			Method:            types.MethodKeyword,
		}
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	var secondary []string
	for _, s := range scores[1:] {
		secondary = append(secondary, s.category)
		if len(secondary) == 2 {
			break
		}
	}
	if secondary == nil {
		secondary = []string{}
	}

	confidence := "low"
	switch {
	case scores[0].score >= 3:
		confidence = "high"
	case scores[0].score >= 2:
		confidence = "medium"
	}

	return types.Classification{
		PrimarySubject:    scores[0].category,
		SecondarySubjects: secondary,
		Confidence:        confidence,
		Reasoning:         fmt.Sprintf("Keyword matches: %d", scores[0].score),
		Method:            types.MethodKeyword,
	}
}

func firstRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
