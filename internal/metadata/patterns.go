// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import "regexp"

// Pattern lists per field, ordered by decreasing specificity. The order is
// load-bearing: resolution takes the first match, so a bracketed journal
// form must outrank a generic "Journal of X" phrase, and 總第N期 (overall
// issue number) must outrank a bare 第N期. Do not reorder casually.

var journalPatterns = compile(
	// Chinese journals in corner brackets, the dominant periodical form.
	`《([^》]{3,40})》[^\n]{0,20}(?:網絡版|網路版)?`,
	`《([^》]{3,40})》`,
	// Chinese academic journals.
	`(?m)^([^\n]{3,30})[學学]報`,
	`(?m)^([^\n]{3,30})[學学]刊`,
	`([^\n]{4,30})(?:學報|学报|學刊|学刊)`,
	// English journals.
	`(?:Journal|JOURNAL)\s+(?:of|OF)\s+([A-Z][A-Za-z\s&]{5,60})`,
	`([A-Z][A-Za-z\s&]{10,60})\s*[,\n]?\s*(?:Vol|Volume)`,
	// Proceedings.
	`Proceedings?\s+of\s+(?:the\s+)?([A-Z][A-Za-z\s&]{5,60})`,
	// Journal name leading a line with a volume reference.
	`(?m)^([A-Z][A-Za-z\s&:]{10,60}),\s*Vol`,
)

var titlePatterns = compile(
	// Title with a colon, common in academic papers.
	`(?m)^([A-Z][A-Za-z0-9\s,:-]+(?::|：)[A-Za-z0-9\s,:-]+?)(?:\n|$)`,
	// Explicit title label.
	`(?:Title|TITLE|標題)\s*[：:]\s*(.+?)(?:\n|$)`,
	// First line that looks like a title.
	`(?m)^([A-Z][A-Za-z\s]{10,200})(?:\n|Abstract|ABSTRACT)`,
	// All-caps title.
	`(?m)^([A-Z][A-Z\s]{10,100})(?:\n)`,
	// Title case with multiple words.
	`(?m)^([A-Z][a-z]+(?:\s+[A-Z][a-z]+){2,})(?:\n)`,
)

var authorPatterns = compile(
	// Explicit author labels.
	`(?mi)(?:Author|AUTHORS|作者)s?\s*[：:]\s*(.+?)(?:\n|$)`,
	`(?mi)By[：:]?\s+(.+?)(?:\n|$)`,
	// First Last, First Last.
	`(?m)([A-Z][a-z]+\s+[A-Z][a-z]+(?:,\s*[A-Z][a-z]+\s+[A-Z][a-z]+)*)`,
	// Initials: J. Smith, A. B. Johnson.
	`([A-Z]\.\s*[A-Z]?\.?\s*[A-Z][a-z]+(?:,\s*[A-Z]\.\s*[A-Z]?\.?\s*[A-Z][a-z]+)*)`,
	// Names before email or affiliation.
	`([A-Z][a-z]+\s+[A-Z][a-z]+)\s*(?:@|\n.*?@|\n.*?University|\n.*?Department)`,
	// Asian names (Last First) or CJK name runs.
	`([A-Z][a-z]+\s+[A-Z][a-z]+|[\x{4e00}-\x{9fff}]{2,4})`,
)

var yearPatterns = compile(
	// Chinese year with 年, the most reliable periodical form.
	`(\d{4})年`,
	// Bare Arabic years.
	`\b((?:19|20)\d{2})\b`,
	`((?:19|20)\d{2})`,
	// Traditional numeral years (二○○九年, 二〇〇九年). PDF extraction
	// sometimes drops the ○ glyph, so this ranks below the Arabic forms.
	`([二三四五六七八九○〇零一]{4})年`,
	// Year following a month name.
	`(?i)(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[,\s]+((?:19|20)\d{2})`,
	// Copyright years.
	`©\s*((?:19|20)\d{2})`,
	`(?i)Copyright\s*©?\s*((?:19|20)\d{2})`,
	// Publication statements.
	`(?i)(?:Published|Publication)[：:]?\s*(?:in\s+)?((?:19|20)\d{2})`,
)

var volumePatterns = compile(
	`(?i)Vol(?:ume)?\.?\s*(\d+)`,
	`(?i)Volume\s+(\d+)`,
	`VOL\.?\s*(\d+)`,
	`V\.\s*(\d+)`,
	`(?i)Vol\.?\s*(\d+)\s*(?:,|\()`,
	// Chinese.
	`(?:卷|第.*?卷)[：:]?\s*(\d+)`,
)

var issuePatterns = compile(
	// Chinese issue forms, most specific first. 總第N期 is the overall
	// issue number and outranks a bare 第N期.
	`總第\s*(\d+)\s*期`,
	`第\s*(\d+)\s*期`,
	`(?:期|期號)[：:]?\s*(\d+)`,
	// English issue forms.
	`(?i)(?:No|Issue|Number)\s*\.?\s*[：:]?\s*(\d+)`,
	`(?i)Issue\s+(\d+)`,
	`(?i)No\.?\s*(\d+)`,
	`(?i)Number\s+(\d+)`,
	`#(\d+)`,
	// Issue in parentheses.
	`\((\d+)\)`,
	`(?:期|第.*?期)[：:]?\s*(\d+)`,
)

var pagesPatterns = compile(
	`(?i)pp?\.?\s*(\d+)\s*[-–—]\s*(\d+)`,
	`(?i)Pages?\s*[：:]?\s*(\d+)\s*[-–—]\s*(\d+)`,
	`P\.\s*(\d+)\s*[-–—]\s*(\d+)`,
	`(?i)(\d+)\s*[-–—]\s*(\d+)\s*(?:pp|pages)`,
	// Chinese.
	`(?:頁|页)[：:]?\s*(\d+)\s*[-–—]\s*(\d+)`,
)

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}
