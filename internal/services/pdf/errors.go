package pdf

import (
	"errors"
	"fmt"
)

// ErrExtraction is matched (via errors.Is) by every document-level failure:
// the buffer could not be opened as a PDF at all.
var ErrExtraction = errors.New("pdf extraction failed")

// ExtractionError means the whole document is unreadable. Callers should
// report it as a client error and never retry.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%v: %v", ErrExtraction, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrExtraction) match any ExtractionError.
func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// PageError is a fault on a single page. The extractor logs it and moves on;
// it never escapes Extract.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }
