// document.go wraps the PDF parsing library behind a small interface.
//
// The extractor only needs three things from a PDF library: open a buffer,
// count pages, and pull plain text out of one page. Keeping that surface
// narrow means the ledongthuc/pdf backend can be swapped (or faked in tests)
// without touching the extraction or cleaning logic.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Document is an opened PDF whose pages can be read one at a time.
// Pages are numbered from 1.
type Document interface {
	NumPages() int
	PageText(n int) (string, error)
}

// Opener turns raw bytes into a Document.
type Opener interface {
	Open(data []byte) (Document, error)
}

// LedongthucOpener opens PDFs with the pure Go ledongthuc/pdf library.
// No CGO, so the service still ships as a single binary.
type LedongthucOpener struct{}

// Open parses the PDF structure held in data.
func (LedongthucOpener) Open(data []byte) (Document, error) {
	if !ValidatePDF(data) {
		return nil, fmt.Errorf("missing %%PDF- header")
	}

	// The library needs io.ReaderAt + size for random access to the xref table.
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &ledongthucDocument{r: r}, nil
}

type ledongthucDocument struct {
	r *pdf.Reader
}

func (d *ledongthucDocument) NumPages() int {
	return d.r.NumPage()
}

func (d *ledongthucDocument) PageText(n int) (string, error) {
	page := d.r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	// nil fonts makes the library resolve the page's own font resources.
	return page.GetPlainText(nil)
}

// ValidatePDF checks if the data looks like a valid PDF by checking the magic bytes.
func ValidatePDF(data []byte) bool {
	// PDF files start with "%PDF-"
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
