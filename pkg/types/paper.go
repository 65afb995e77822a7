// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Sentinel values for unresolved metadata fields. Downstream consumers
// (catalog writers, the classifier) render records without null-checking,
// so every field always carries either a real value or one of these.
const (
	UnknownValue = "Unknown"
	NotAvailable = "N/A"
)

// PaperRecord is one cataloged unit: the reconciled metadata for a single
// paper, either a whole PDF file or one sub-range of a multi-paper file.
type PaperRecord struct {
	// Title is the paper title, Chinese or English.
	Title string `json:"title" yaml:"title"`

	// Authors is free text, possibly semicolon or comma joined.
	Authors string `json:"authors" yaml:"authors"`

	// Year is a 4-digit year string bounded to [1900, current_year+1].
	Year string `json:"year" yaml:"year"`

	// Journal is the periodical name, without 網絡版/網路版 suffixes.
	Journal string `json:"journal" yaml:"journal"`

	// Volume is the journal volume number.
	Volume string `json:"volume" yaml:"volume"`

	// Issue is the journal issue number. For 總第84期 forms this is "84".
	Issue string `json:"issue" yaml:"issue"`

	// Pages is a page range string "N-M".
	Pages string `json:"pages" yaml:"pages"`

	// ContentPreview holds the first 500 characters of extracted text.
	ContentPreview string `json:"content_preview" yaml:"content_preview"`

	// FullContent is the complete extracted text for the record's page span.
	FullContent string `json:"full_content,omitempty" yaml:"full_content,omitempty"`

	// FilePath is the source PDF path.
	FilePath string `json:"file_path" yaml:"file_path"`

	// Error carries the failure message when extraction failed terminally.
	// Batch extraction never aborts on a single file; it tags the record.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// IsMultiPaper marks records produced by multi-paper splitting.
	IsMultiPaper bool `json:"is_multi_paper,omitempty" yaml:"is_multi_paper,omitempty"`

	// PaperNumber is the 1-based position within a multi-paper file.
	PaperNumber int `json:"paper_number,omitempty" yaml:"paper_number,omitempty"`

	// TotalPapers is the number of papers detected in the file.
	TotalPapers int `json:"total_papers,omitempty" yaml:"total_papers,omitempty"`

	// PageRange is the 1-based inclusive page span "start-end".
	PageRange string `json:"page_range,omitempty" yaml:"page_range,omitempty"`

	// Classification is attached by the subject classifier after extraction.
	Classification *Classification `json:"classification,omitempty" yaml:"classification,omitempty"`

	// SourceJournal records journal info derived from the crawl source URL,
	// which outranks content-derived journal names when present.
	SourceJournal *JournalSource `json:"source_journal,omitempty" yaml:"source_journal,omitempty"`
}

// NewPaperRecord returns a record for path with every field at its sentinel.
func NewPaperRecord(path string) PaperRecord {
	return PaperRecord{
		Title:    UnknownValue,
		Authors:  UnknownValue,
		Year:     UnknownValue,
		Journal:  NotAvailable,
		Volume:   NotAvailable,
		Issue:    NotAvailable,
		Pages:    NotAvailable,
		FilePath: path,
	}
}

// ErrorRecord returns a placeholder record tagging a terminal per-file failure.
func ErrorRecord(path string, err error) PaperRecord {
	rec := NewPaperRecord(path)
	rec.Title = "Error"
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}

// IsPlaceholder reports whether v is one of the sentinel strings meaning
// "field not yet resolved", in either script.
func IsPlaceholder(v string) bool {
	switch v {
	case "", UnknownValue, NotAvailable, "未知":
		return true
	}
	return false
}

// JournalSource describes a known periodical identified from its crawl URL.
type JournalSource struct {
	// Journal is the periodical name in its primary script.
	Journal string `json:"journal" yaml:"journal"`

	// JournalEN is the English periodical name, if any.
	JournalEN string `json:"journal_en,omitempty" yaml:"journal_en,omitempty"`

	// Publisher is the publishing institution.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// SourceURL is the URL the PDFs were crawled from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Confidence is "high" for table matches, "low" for URL-path guesses.
	Confidence string `json:"confidence" yaml:"confidence"`
}
