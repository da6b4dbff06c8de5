// Package acquire turns an uploaded document (or caller-supplied text) into
// the best-available text blob via staged fallback: embedded text layer first,
// rasterize-and-recognize only when the text layer comes up short.
package acquire

import "fmt"

// Method tags how the final text was obtained. The values are part of the
// public API (the parsingMethod response field).
type Method string

const (
	MethodNone         Method = "none"
	MethodTextLayer    Method = "pdf-text"
	MethodOCR          Method = "ocr"
	MethodPreExtracted Method = "client-text"
)

// RawDocument is the caller-owned upload. The pipeline only reads it.
type RawDocument struct {
	Data      []byte
	Filename  string
	MediaType string
}

// AcquiredText is the outcome of one acquisition run. Content is never
// binary garbage when returned without error; the pipeline either fixes that
// via fallback or fails the request.
type AcquiredText struct {
	Content      string
	Method       Method
	Pages        int
	OCRAttempted bool
	OCRError     string
}

// UnusableTextError reports that every stage was exhausted and the resulting
// text is still empty, too short, or binary. It is distinct from a successful
// extraction that finds no fields.
type UnusableTextError struct {
	Method       Method
	OCRAttempted bool
	OCRError     string
}

func (e *UnusableTextError) Error() string {
	return fmt.Sprintf("no usable text extracted (method=%s ocrAttempted=%t)", e.Method, e.OCRAttempted)
}
