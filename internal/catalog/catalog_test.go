// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

func sampleRecords() []types.PaperRecord {
	classified := types.NewPaperRecord("/papers/networks.pdf")
	classified.Title = "Village Networks in Southern China"
	classified.Authors = "Wei Chen"
	classified.Year = "2009"
	classified.Journal = "二十一世紀"
	classified.Issue = "84"
	classified.Pages = "71-79"
	classified.Classification = &types.Classification{
		PrimarySubject:    "Social Sciences",
		SecondarySubjects: []string{"History"},
		Confidence:        "high",
		Method:            types.MethodKeyword,
	}

	unclassified := types.NewPaperRecord("/papers/mystery.pdf")
	return []types.PaperRecord{classified, unclassified}
}

func TestGenerateAllFormats(t *testing.T) {
	g := NewGenerator(t.TempDir())

	var out bytes.Buffer
	paths, err := g.Generate(sampleRecords(), nil, &out)

	require.NoError(t, err)
	require.Len(t, paths, 4)
	for format, path := range paths {
		info, err := os.Stat(path)
		require.NoError(t, err, format)
		assert.Greater(t, info.Size(), int64(0), format)
	}
	assert.Contains(t, out.String(), "wrote json catalog")
}

func TestGenerateJSONShape(t *testing.T) {
	g := NewGenerator(t.TempDir())

	paths, err := g.Generate(sampleRecords(), []string{"json"}, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(paths["json"])
	require.NoError(t, err)

	var catalog struct {
		Metadata struct {
			TotalPapers int    `json:"total_papers"`
			Version     string `json:"version"`
		} `json:"metadata"`
		SubjectSummary []subjectRow        `json:"subject_summary"`
		Papers         []types.PaperRecord `json:"papers"`
	}
	require.NoError(t, json.Unmarshal(data, &catalog))

	assert.Equal(t, 2, catalog.Metadata.TotalPapers)
	assert.Equal(t, "1.0", catalog.Metadata.Version)
	require.Len(t, catalog.Papers, 2)
	assert.Equal(t, "Village Networks in Southern China", catalog.Papers[0].Title)
	require.Len(t, catalog.SubjectSummary, 2)
}

func TestGenerateCSV(t *testing.T) {
	g := NewGenerator(t.TempDir())

	paths, err := g.Generate(sampleRecords(), []string{"csv"}, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(paths["csv"])
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")

	lines := strings.Split(strings.TrimSpace(string(data[3:])), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "標題 (Title)")
	assert.Contains(t, lines[1], "二十一世紀")
	assert.Contains(t, lines[1], "Social Sciences")
	assert.Contains(t, lines[2], types.UnknownValue)
}

func TestGenerateHTML(t *testing.T) {
	g := NewGenerator(t.TempDir())

	paths, err := g.Generate(sampleRecords(), []string{"html"}, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(paths["html"])
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "Village Networks in Southern China")
	assert.Contains(t, html, "confidence-high")
	assert.Contains(t, html, "學科分布 Subject Distribution")
	assert.Contains(t, html, "50.0%")
}

func TestGenerateUnknownFormat(t *testing.T) {
	g := NewGenerator(t.TempDir())

	_, err := g.Generate(sampleRecords(), []string{"xlsx"}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx")
}

func TestSortedSubjects(t *testing.T) {
	rows := sortedSubjects(map[string]int{"History": 1, "Law": 3, "Art": 1})

	require.Len(t, rows, 3)
	assert.Equal(t, subjectRow{"Law", 3}, rows[0])
	// Ties resolve alphabetically for stable output.
	assert.Equal(t, subjectRow{"Art", 1}, rows[1])
	assert.Equal(t, subjectRow{"History", 1}, rows[2])
}

func TestSubjectCountsUnclassifiedAsOther(t *testing.T) {
	counts := subjectCounts(sampleRecords())

	assert.Equal(t, 1, counts["Social Sciences"])
	assert.Equal(t, 1, counts["Other"])
}
