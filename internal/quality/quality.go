// Package quality decides whether a blob of extracted text is usable prose
// or a misdecoded byte stream that must be treated as an extraction failure.
package quality

import "strings"

const (
	// DefaultBinaryFraction is the fraction of non-printable characters above
	// which text is considered binary garbage.
	DefaultBinaryFraction = 0.2

	// MinAcceptLength is the trimmed length below which final text is rejected.
	MinAcceptLength = 50

	// OCRTriggerLength is the trimmed length below which the pipeline attempts
	// OCR even though the text is not yet disqualifying. Deliberately higher
	// than MinAcceptLength so thin text triggers the fallback proactively.
	OCRTriggerLength = 100

	// MinPreExtractedLength is the minimum trimmed length for caller-supplied
	// text to be accepted at all.
	MinPreExtractedLength = 20
)

// Classifier gates extracted text on printability and length.
type Classifier struct {
	binaryFraction float64
}

// NewClassifier creates a classifier with the default binary threshold.
func NewClassifier() *Classifier {
	return &Classifier{binaryFraction: DefaultBinaryFraction}
}

// IsLikelyBinary reports whether more than the threshold fraction of the
// string is control characters (outside tab/newline/carriage return) or DEL.
// An empty string is not binary.
func (c *Classifier) IsLikelyBinary(s string) bool {
	if len(s) == 0 {
		return false
	}
	nonPrintable := 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == '\t' || b == '\n' || b == '\r' {
			continue
		}
		if b < 0x20 || b == 0x7f {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(s)) > c.binaryFraction
}

// TooShort reports whether trimmed text is below the final acceptance length.
func (c *Classifier) TooShort(s string) bool {
	return len(strings.TrimSpace(s)) < MinAcceptLength
}

// NeedsOCR reports whether text-layer output is poor enough that the pipeline
// should attempt the OCR fallback: empty, under the trigger length, or binary.
func (c *Classifier) NeedsOCR(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	if len(strings.TrimSpace(s)) < OCRTriggerLength {
		return true
	}
	return c.IsLikelyBinary(s)
}

// Usable reports whether text passes the final gate: non-empty, at least
// MinAcceptLength trimmed characters, and not binary garbage.
func (c *Classifier) Usable(s string) bool {
	if c.TooShort(s) {
		return false
	}
	return !c.IsLikelyBinary(s)
}
