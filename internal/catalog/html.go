// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"html/template"
	"os"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

var htmlTmpl = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html lang="zh-TW">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>學術論文目錄 - Academic Paper Catalog</title>
    <style>
        body { font-family: 'Segoe UI', Arial, sans-serif; max-width: 1400px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
        .summary { background: white; padding: 20px; border-radius: 8px; margin: 20px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; margin: 20px 0; }
        .stat-card { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 15px; border-radius: 8px; text-align: center; }
        .stat-card h3 { margin: 0; font-size: 2em; }
        .stat-card p { margin: 5px 0 0 0; opacity: 0.9; }
        table { width: 100%; border-collapse: collapse; background: white; box-shadow: 0 2px 4px rgba(0,0,0,0.1); border-radius: 8px; overflow: hidden; }
        th { background: #3498db; color: white; padding: 12px; text-align: left; font-weight: 600; }
        td { padding: 10px 12px; border-bottom: 1px solid #ecf0f1; }
        tr:hover { background: #f8f9fa; }
        .subject-tag { display: inline-block; padding: 4px 12px; border-radius: 20px; font-size: 0.85em; font-weight: 500; margin: 2px; }
        .confidence-high { background: #d4edda; color: #155724; }
        .confidence-medium { background: #fff3cd; color: #856404; }
        .confidence-low { background: #f8d7da; color: #721c24; }
        .footer { text-align: center; margin-top: 40px; color: #7f8c8d; font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>📚 學術論文目錄 Academic Paper Catalog</h1>

    <div class="summary">
        <h2>📊 統計摘要 Statistics</h2>
        <div class="stats">
            <div class="stat-card">
                <h3>{{.TotalPapers}}</h3>
                <p>總論文數 Total Papers</p>
            </div>
            <div class="stat-card">
                <h3>{{len .Subjects}}</h3>
                <p>學科類別 Subject Categories</p>
            </div>
        </div>

        <h3>學科分布 Subject Distribution</h3>
        <table>
            <tr>
                <th>學科 Subject</th>
                <th>論文數量 Count</th>
                <th>百分比 Percentage</th>
            </tr>
{{- range .Subjects}}
            <tr>
                <td><strong>{{.Subject}}</strong></td>
                <td>{{.Count}}</td>
                <td>{{.Percentage}}</td>
            </tr>
{{- end}}
        </table>
    </div>

    <h2>📖 論文列表 Paper List</h2>
    <table>
        <tr>
            <th>標題 Title</th>
            <th>作者 Authors</th>
            <th>期刊 Journal</th>
            <th>年份 Year</th>
            <th>卷期 Vol/Issue</th>
            <th>頁數 Pages</th>
            <th>學科 Subject</th>
        </tr>
{{- range .Papers}}
        <tr>
            <td><strong>{{.Title}}</strong></td>
            <td>{{.Authors}}</td>
            <td>{{.Journal}}</td>
            <td>{{.Year}}</td>
            <td>{{.Volume}}/{{.Issue}}</td>
            <td>{{.Pages}}</td>
            <td><span class="subject-tag confidence-{{.Confidence}}">{{.Subject}}</span></td>
        </tr>
{{- end}}
    </table>

    <div class="footer">
        <p>Generated on {{.GeneratedAt}}</p>
        <p>catalog-engine - Academic Cataloging System</p>
    </div>
</body>
</html>
`))

// htmlSubject is one subject distribution row with a formatted share.
type htmlSubject struct {
	Subject    string
	Count      int
	Percentage string
}

// htmlPaper flattens a record for the paper list table.
type htmlPaper struct {
	Title, Authors, Journal, Year, Volume, Issue, Pages string
	Subject, Confidence                                 string
}

type htmlData struct {
	TotalPapers int
	Subjects    []htmlSubject
	Papers      []htmlPaper
	GeneratedAt string
}

func (g *Generator) writeHTML(records []types.PaperRecord, path string) error {
	data := htmlData{
		TotalPapers: len(records),
		GeneratedAt: g.now().Format("2006-01-02 15:04:05"),
	}

	for _, row := range sortedSubjects(subjectCounts(records)) {
		pct := 0.0
		if len(records) > 0 {
			pct = float64(row.Count) / float64(len(records)) * 100
		}
		data.Subjects = append(data.Subjects, htmlSubject{
			Subject:    row.Subject,
			Count:      row.Count,
			Percentage: fmt.Sprintf("%.1f%%", pct),
		})
	}

	for _, rec := range records {
		primary, _, confidence := classificationColumns(rec)
		if confidence == "" || confidence == types.NotAvailable {
			confidence = "low"
		}
		data.Papers = append(data.Papers, htmlPaper{
			Title: rec.Title, Authors: rec.Authors, Journal: rec.Journal,
			Year: rec.Year, Volume: rec.Volume, Issue: rec.Issue, Pages: rec.Pages,
			Subject: primary, Confidence: confidence,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return htmlTmpl.Execute(f, data)
}
