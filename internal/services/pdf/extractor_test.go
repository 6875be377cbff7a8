// extractor_test.go contains tests for page-by-page extraction.
//
// Most cases use a fake Document so page faults can be injected exactly.
// The tests at the bottom run real PDF bytes through ledongthuc/pdf.
package pdf

import (
	"bytes"
	"errors"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/Shimizu-Technology/pdf-text-service/internal/services/pdf/pdftest"
)

// fakePage is one page of a fakeDocument.
type fakePage struct {
	text  string
	err   error
	panic bool
}

type fakeDocument struct {
	pages []fakePage
	reads []int
}

func (d *fakeDocument) NumPages() int { return len(d.pages) }

func (d *fakeDocument) PageText(n int) (string, error) {
	d.reads = append(d.reads, n)
	p := d.pages[n-1]
	if p.panic {
		panic("corrupt content stream")
	}
	return p.text, p.err
}

type fakeOpener struct {
	doc *fakeDocument
	err error
}

func (o fakeOpener) Open([]byte) (Document, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.doc, nil
}

// newTestExtractor returns an extractor over doc plus the buffer its warnings go to.
func newTestExtractor(doc *fakeDocument) (*Extractor, *bytes.Buffer) {
	var logs bytes.Buffer
	e := NewExtractor().
		WithOpener(fakeOpener{doc: doc}).
		WithLogger(log.New(&logs, "", 0))
	return e, &logs
}

func TestExtract_PageMarkers(t *testing.T) {
	doc := &fakeDocument{pages: []fakePage{
		{text: "Hello World"},
		{text: ""}, // image-only page
		{text: "More   text here"},
	}}
	e, logs := newTestExtractor(doc)

	got, err := e.Extract(nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := "--- Page 1 ---\nHello World\n\n--- Page 3 ---\nMore   text here"
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
	if logs.Len() != 0 {
		t.Errorf("Extract() logged %q on a clean run, want nothing", logs.String())
	}
}

func TestExtract_MarkersInPageOrder(t *testing.T) {
	var pages []fakePage
	for i := 0; i < 12; i++ {
		text := ""
		if i%3 != 1 {
			text = "content"
		}
		pages = append(pages, fakePage{text: text})
	}
	e, _ := newTestExtractor(&fakeDocument{pages: pages})

	got, err := e.Extract(nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	last := -1
	for i, p := range pages {
		marker := "--- Page " + strconv.Itoa(i+1) + " ---\n"
		count := strings.Count(got, marker)
		if p.text == "" {
			if count != 0 {
				t.Errorf("page %d has no text but marker appears %d times", i+1, count)
			}
			continue
		}
		if count != 1 {
			t.Errorf("marker for page %d appears %d times, want 1", i+1, count)
		}
		idx := strings.Index(got, marker)
		if idx <= last {
			t.Errorf("marker for page %d at %d, not after previous marker at %d", i+1, idx, last)
		}
		last = idx
	}
}

func TestExtract_PageFaultIsSkipped(t *testing.T) {
	tests := []struct {
		name  string
		fault fakePage
	}{
		{"page returns error", fakePage{err: errors.New("bad font dictionary")}},
		{"page panics", fakePage{panic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pages []fakePage
			for i := 1; i <= 10; i++ {
				pages = append(pages, fakePage{text: "text of page " + strconv.Itoa(i)})
			}
			pages[4] = tt.fault // page 5

			doc := &fakeDocument{pages: pages}
			e, logs := newTestExtractor(doc)

			got, err := e.Extract(nil)
			if err != nil {
				t.Fatalf("Extract() error = %v, want page fault absorbed", err)
			}

			if n := strings.Count(got, "--- Page "); n != 9 {
				t.Errorf("got %d page markers, want 9", n)
			}
			if strings.Contains(got, "--- Page 5 ---") {
				t.Error("faulted page 5 still has a marker")
			}
			if !strings.Contains(got, "text of page 10") {
				t.Error("pages after the fault were not extracted")
			}
			if len(doc.reads) != 10 {
				t.Errorf("read %d pages, want all 10", len(doc.reads))
			}
			if !strings.Contains(logs.String(), "page 5") {
				t.Errorf("warning log %q does not mention page 5", logs.String())
			}
			if strings.Count(logs.String(), "\n") != 1 {
				t.Errorf("want exactly one warning line, got %q", logs.String())
			}
		})
	}
}

func TestExtract_NoTextIsNotAnError(t *testing.T) {
	doc := &fakeDocument{pages: []fakePage{{}, {}, {}}}
	e, _ := newTestExtractor(doc)

	got, err := e.Extract(nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "" {
		t.Errorf("Extract() = %q, want empty string", got)
	}
}

func TestExtract_OpenFailure(t *testing.T) {
	cause := errors.New("xref table corrupt")
	e := NewExtractor().WithOpener(fakeOpener{err: cause})

	_, err := e.Extract([]byte("whatever"))
	if err == nil {
		t.Fatal("Extract() error = nil, want ExtractionError")
	}
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("errors.Is(err, ErrExtraction) = false for %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error %v does not wrap the cause", err)
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Errorf("error %T is not *ExtractionError", err)
	}
}

func TestProcess_Result(t *testing.T) {
	doc := &fakeDocument{pages: []fakePage{
		{text: "Hello World\n42"},
		{err: errors.New("boom")},
		{text: "More   text here"},
	}}
	e, _ := newTestExtractor(doc)

	res, err := e.Process(nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if want := "--- Page 1 --- Hello World --- Page 3 --- More text here"; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
	if res.PageCount != 3 || res.PagesWithText != 2 {
		t.Errorf("PageCount/PagesWithText = %d/%d, want 3/2", res.PageCount, res.PagesWithText)
	}
	if len(res.SkippedPages) != 1 || res.SkippedPages[0] != 2 {
		t.Errorf("SkippedPages = %v, want [2]", res.SkippedPages)
	}
	if res.Stats != ComputeStats(res.Text) {
		t.Errorf("Stats = %+v, want %+v", res.Stats, ComputeStats(res.Text))
	}
	if res.IsLowContent() {
		t.Error("IsLowContent() = true for a normal document")
	}
}

func TestResult_IsLowContent(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", true},
		{"   \n  ", true},
		{"123456789", true},
		{"  12345678  ", true},
		{"1234567890", false},
		{"ééééééééé", true}, // nine characters, eighteen bytes
	}

	for _, tt := range tests {
		r := &Result{RawText: tt.raw}
		if got := r.IsLowContent(); got != tt.want {
			t.Errorf("IsLowContent(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

// --- Real PDF bytes through ledongthuc/pdf ---

func TestExtract_RealPDF(t *testing.T) {
	data := pdftest.Build("Hello World", "", "Second page text")

	got, err := NewExtractor().Extract(data)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	for _, want := range []string{"--- Page 1 ---", "Hello World", "--- Page 3 ---", "Second page text"} {
		if !strings.Contains(got, want) {
			t.Errorf("Extract() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "--- Page 2 ---") {
		t.Errorf("Extract() = %q, has a marker for the empty page", got)
	}
	if strings.Index(got, "Hello World") > strings.Index(got, "Second page text") {
		t.Errorf("pages out of order in %q", got)
	}
}

func TestProcess_RealPDF(t *testing.T) {
	data := pdftest.Build("Quarterly report", "Revenue grew")

	res, err := NewExtractor().Process(data)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", res.PageCount)
	}
	if !strings.Contains(res.Text, "Quarterly report") || !strings.Contains(res.Text, "Revenue grew") {
		t.Errorf("Text = %q, missing page text", res.Text)
	}
	if strings.Contains(res.Text, "\n") {
		t.Errorf("Text = %q contains a newline", res.Text)
	}
}

func TestExtract_NotAPDF(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	random := make([]byte, 4096)
	rng.Read(random)

	tests := []struct {
		name string
		data []byte
	}{
		{"nil buffer", nil},
		{"random bytes", random},
		{"plain text", []byte("this is definitely not a PDF document")},
		{"header only", []byte("%PDF-1.4\n")},
		{"truncated PDF", pdftest.Build("Hello")[:200]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewExtractor().Extract(tt.data)
			if !errors.Is(err, ErrExtraction) {
				t.Errorf("Extract() = %q, %v; want ErrExtraction", got, err)
			}
		})
	}
}

func TestValidatePDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"valid header", []byte("%PDF-1.7 rest"), true},
		{"generated file", pdftest.Build("x"), true},
		{"too short", []byte("%PDF"), false},
		{"wrong magic", []byte("PK\x03\x04 zip"), false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePDF(tt.data); got != tt.want {
				t.Errorf("ValidatePDF() = %v, want %v", got, tt.want)
			}
		})
	}
}
