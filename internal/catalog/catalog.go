// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog renders extracted paper records into catalog files
// (JSON, CSV, HTML, YAML) and maintains a searchable SQLite index.
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

// Formats supported by Generate, in emission order.
var allFormats = []string{"json", "csv", "html", "yaml"}

// Generator writes catalog files into an output directory.
type Generator struct {
	outputDir string

	// now is swappable for tests; file names carry a timestamp.
	now func() time.Time
}

// NewGenerator returns a Generator writing to outputDir. The directory is
// created on first use.
func NewGenerator(outputDir string) *Generator {
	if outputDir == "" {
		outputDir = "output"
	}
	return &Generator{outputDir: outputDir, now: time.Now}
}

// Generate renders records in each requested format ("json", "csv",
// "html", "yaml"; empty means all) and returns format → written path.
// Progress lines go to w.
func (g *Generator) Generate(records []types.PaperRecord, formats []string, w io.Writer) (map[string]string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if len(formats) == 0 {
		formats = allFormats
	}

	writers := map[string]func([]types.PaperRecord, string) error{
		"json": g.writeJSON,
		"csv":  g.writeCSV,
		"html": g.writeHTML,
		"yaml": g.writeYAML,
	}

	stamp := g.now().Format("20060102_150405")
	out := make(map[string]string, len(formats))
	for _, format := range formats {
		write, ok := writers[format]
		if !ok {
			return nil, fmt.Errorf("unknown catalog format %q", format)
		}
		path := filepath.Join(g.outputDir, fmt.Sprintf("academic_catalog_%s.%s", stamp, format))
		if err := write(records, path); err != nil {
			return nil, fmt.Errorf("writing %s catalog: %w", format, err)
		}
		fmt.Fprintf(w, "wrote %s catalog: %s\n", format, path)
		out[format] = path
	}
	return out, nil
}

// subjectCounts tallies records per primary subject, unclassified ones
// under "Other".
func subjectCounts(records []types.PaperRecord) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		subject := "Other"
		if rec.Classification != nil && rec.Classification.PrimarySubject != "" {
			subject = rec.Classification.PrimarySubject
		}
		counts[subject]++
	}
	return counts
}

// subjectRow is one line of the subject distribution summary.
type subjectRow struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

// sortedSubjects orders the distribution by descending count, then name
// for a stable output.
func sortedSubjects(counts map[string]int) []subjectRow {
	rows := make([]subjectRow, 0, len(counts))
	for subject, count := range counts {
		rows = append(rows, subjectRow{subject, count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Subject < rows[j].Subject
	})
	return rows
}

// jsonCatalog is the top-level JSON (and YAML) document shape.
type jsonCatalog struct {
	Metadata struct {
		GeneratedAt string `json:"generated_at" yaml:"generated_at"`
		TotalPapers int    `json:"total_papers" yaml:"total_papers"`
		Version     string `json:"version" yaml:"version"`
	} `json:"metadata" yaml:"metadata"`
	SubjectSummary []subjectRow        `json:"subject_summary" yaml:"subject_summary"`
	Papers         []types.PaperRecord `json:"papers" yaml:"papers"`
}

func (g *Generator) buildCatalog(records []types.PaperRecord) jsonCatalog {
	var cat jsonCatalog
	cat.Metadata.GeneratedAt = g.now().Format(time.RFC3339)
	cat.Metadata.TotalPapers = len(records)
	cat.Metadata.Version = "1.0"
	cat.SubjectSummary = sortedSubjects(subjectCounts(records))
	cat.Papers = records
	return cat
}

func (g *Generator) writeJSON(records []types.PaperRecord, path string) error {
	data, err := json.MarshalIndent(g.buildCatalog(records), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func (g *Generator) writeYAML(records []types.PaperRecord, path string) error {
	data, err := yaml.Marshal(g.buildCatalog(records))
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// csvHeader carries bilingual column names so the file opens cleanly for
// both audiences.
var csvHeader = []string{
	"標題 (Title)", "作者 (Authors)", "年份 (Year)", "期刊 (Journal)",
	"卷號 (Volume)", "期號 (Issue)", "頁數 (Pages)",
	"主要學科 (Primary Subject)", "次要學科 (Secondary Subjects)",
	"分類信心度 (Confidence)", "檔案路徑 (File Path)",
}

func (g *Generator) writeCSV(records []types.PaperRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// UTF-8 BOM so spreadsheet applications decode the Chinese headers.
	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		primary, secondary, confidence := classificationColumns(rec)
		row := []string{
			rec.Title, rec.Authors, rec.Year, rec.Journal,
			rec.Volume, rec.Issue, rec.Pages,
			primary, secondary, confidence, rec.FilePath,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func classificationColumns(rec types.PaperRecord) (primary, secondary, confidence string) {
	if rec.Classification == nil {
		return "Other", "", types.NotAvailable
	}
	return rec.Classification.PrimarySubject,
		strings.Join(rec.Classification.SecondarySubjects, ", "),
		rec.Classification.Confidence
}
