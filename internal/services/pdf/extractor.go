// Package pdf provides PDF text extraction.
//
// The pipeline is: open the uploaded bytes, pull text out of each page,
// join the pages with "--- Page N ---" markers, then clean the result into
// a single-spaced string and count words, characters and tokens.
//
// We use the ledongthuc/pdf library for the actual PDF parsing.
// It's a pure Go implementation with no CGO or external dependencies required.
package pdf

import (
	"fmt"
	"log"
	"strings"
)

// Extractor pulls per-page text out of PDF documents.
//
// Go Pattern: The struct holds its collaborators (the PDF opener and a
// logger) so tests can swap either one. An Extractor has no mutable state,
// so a single instance is safe to share across concurrent requests.
type Extractor struct {
	opener Opener
	logger *log.Logger
}

// NewExtractor creates an extractor backed by ledongthuc/pdf.
func NewExtractor() *Extractor {
	return &Extractor{
		opener: LedongthucOpener{},
		logger: log.Default(),
	}
}

// WithOpener returns a copy of the extractor that opens documents with o.
func (e *Extractor) WithOpener(o Opener) *Extractor {
	c := *e
	c.opener = o
	return &c
}

// WithLogger returns a copy of the extractor that logs skipped pages to l.
func (e *Extractor) WithLogger(l *log.Logger) *Extractor {
	c := *e
	c.logger = l
	return &c
}

// pageScan is what a pass over the document produced.
type pageScan struct {
	raw          string
	pageCount    int
	withText     int
	skippedPages []int
}

// Extract opens data as a PDF and returns the text of every page that has
// any, each preceded by a "--- Page N ---" marker line.
//
// It fails only when the document itself can't be opened. A page that
// errors is logged and skipped. A document with no text at all returns "".
func (e *Extractor) Extract(data []byte) (string, error) {
	scan, err := e.scan(data)
	if err != nil {
		return "", err
	}
	return scan.raw, nil
}

func (e *Extractor) scan(data []byte) (*pageScan, error) {
	doc, err := openDocument(e.opener, data)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	scan := &pageScan{pageCount: doc.NumPages()}

	var text strings.Builder
	for n := 1; n <= scan.pageCount; n++ {
		pageText, err := pageText(doc, n)
		if err != nil {
			e.logger.Printf("⚠️  Failed to extract text from page %d: %v", n, err)
			scan.skippedPages = append(scan.skippedPages, n)
			continue
		}
		// No text is the normal signal for an image-only page.
		if pageText == "" {
			continue
		}

		fmt.Fprintf(&text, "\n--- Page %d ---\n", n)
		text.WriteString(pageText)
		text.WriteString("\n")
		scan.withText++
	}

	scan.raw = strings.TrimSpace(text.String())
	return scan, nil
}

// openDocument opens data, reporting a parser panic as an ordinary error.
func openDocument(o Opener, data []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()
	return o.Open(data)
}

// pageText reads one page, turning a library panic into a PageError so a
// single malformed page can't take the whole document down with it.
func pageText(doc Document, n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &PageError{Page: n, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	text, err = doc.PageText(n)
	if err != nil {
		return "", &PageError{Page: n, Err: err}
	}
	return text, nil
}
