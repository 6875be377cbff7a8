package pdf

import (
	"strings"
	"unicode/utf8"
)

// MinTextLength is the raw-text length (after trimming) below which an
// extraction is treated as low-content: usually an image-only or
// encrypted PDF.
const MinTextLength = 10

// Result holds the output of the full extraction pipeline.
type Result struct {
	Text          string // Cleaned, single-line text
	RawText       string // Page-marked text straight from the extractor
	PageCount     int    // Pages in the document
	PagesWithText int    // Pages that contributed text
	SkippedPages  []int  // Pages that failed and were skipped
	Stats         Stats
}

// IsLowContent reports whether the raw text is too short to be a real
// extraction. The pipeline only measures; callers decide what to do.
func (r *Result) IsLowContent() bool {
	return utf8.RuneCountInString(strings.TrimSpace(r.RawText)) < MinTextLength
}

// Process runs extraction, cleaning and statistics over one PDF buffer.
func (e *Extractor) Process(data []byte) (*Result, error) {
	scan, err := e.scan(data)
	if err != nil {
		return nil, err
	}

	cleaned := Clean(scan.raw)
	return &Result{
		Text:          cleaned,
		RawText:       scan.raw,
		PageCount:     scan.pageCount,
		PagesWithText: scan.withText,
		SkippedPages:  scan.skippedPages,
		Stats:         ComputeStats(cleaned),
	}, nil
}
