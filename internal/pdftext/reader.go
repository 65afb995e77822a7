// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// readerProperties reads the information dictionary via ledongthuc/pdf.
func readerProperties(path string) (props Properties, err error) {
	// The underlying parser panics on some malformed files; contain it.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return Properties{}, err
	}
	defer f.Close()

	props.PageCount = r.NumPage()

	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return props, nil
	}
	props.Title = infoString(info, "Title")
	props.Author = infoString(info, "Author")
	props.Subject = infoString(info, "Subject")

	if created := infoString(info, "CreationDate"); created != "" {
		if m := creationYearRe.FindString(created); m != "" {
			props.Year = m
		}
	}
	return props, nil
}

// infoString pulls one text entry from the Info dictionary, tolerating
// missing keys and non-string values.
func infoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.IsNull() || v.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(v.Text())
}

// readerPageTexts extracts per-page text via ledongthuc/pdf, preserving
// line structure from row positions so header and footer lines survive.
func readerPageTexts(path string, maxPages int) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n := r.NumPage()
	if maxPages > 0 && n > maxPages {
		n = maxPages
	}

	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText(page))
	}
	return pages, nil
}

// pageText renders one page as newline-separated rows, falling back to the
// flat plain-text stream when row grouping fails.
func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		var sb strings.Builder
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			text := strings.TrimSpace(line.String())
			if text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(text)
		}
		return sb.String()
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
