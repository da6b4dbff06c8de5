package acquire

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextLayerExtractor reads the embedded text layer of a PDF. Implementations
// may fail on malformed or encrypted documents; the pipeline absorbs that.
type TextLayerExtractor interface {
	Extract(data []byte) (string, error)
}

// LedongthucExtractor extracts the text layer with github.com/ledongthuc/pdf.
type LedongthucExtractor struct {
	maxTextSize int
}

// NewTextLayerExtractor creates the default text-layer extractor.
func NewTextLayerExtractor() *LedongthucExtractor {
	return &LedongthucExtractor{maxTextSize: 10 * 1024 * 1024}
}

// Extract returns the concatenated plain text of every page, pages joined by
// a newline so downstream heuristics see natural reading order. A page that
// fails to decode is skipped rather than failing the document.
func (e *LedongthucExtractor) Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var builder strings.Builder
	total := 0
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if total+len(content) > e.maxTextSize {
			remaining := e.maxTextSize - total
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(content)
		total += len(content)
	}

	return builder.String(), nil
}
