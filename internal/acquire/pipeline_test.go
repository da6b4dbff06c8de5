package acquire

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeTextLayer struct {
	text string
	err  error
}

func (f *fakeTextLayer) Extract(data []byte) (string, error) {
	return f.text, f.err
}

type fakeOCR struct {
	available bool
	text      string
	pages     int
	err       error
	calls     int
}

func (f *fakeOCR) Available() bool { return f.available }

func (f *fakeOCR) Recognize(ctx context.Context, data []byte) (string, int, error) {
	f.calls++
	return f.text, f.pages, f.err
}

var longProse = strings.Repeat("This is perfectly ordinary resume prose. ", 10) // ~410 chars

func TestFromDocumentTextLayerSufficient(t *testing.T) {
	ocr := &fakeOCR{available: true, text: "should never be used"}
	p := NewPipeline(&fakeTextLayer{text: longProse}, ocr, 0, nil)

	got, err := p.FromDocument(context.Background(), RawDocument{Data: []byte("%PDF-")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Method != MethodTextLayer {
		t.Errorf("Method = %q, want %q", got.Method, MethodTextLayer)
	}
	if got.Content != longProse {
		t.Error("content should be the text layer result")
	}
	if ocr.calls != 0 {
		t.Errorf("OCR was attempted %d times for a sufficient text layer", ocr.calls)
	}
	if got.OCRAttempted {
		t.Error("OCRAttempted should be false")
	}
}

func TestFromDocumentOCRReplacesThinTextLayer(t *testing.T) {
	thin := "only a few words here" // under the 100-char trigger
	ocr := &fakeOCR{available: true, text: longProse, pages: 2}
	p := NewPipeline(&fakeTextLayer{text: thin}, ocr, 0, nil)

	got, err := p.FromDocument(context.Background(), RawDocument{Data: []byte("%PDF-")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Method != MethodOCR {
		t.Errorf("Method = %q, want %q", got.Method, MethodOCR)
	}
	if got.Content != longProse {
		t.Error("OCR text should replace the thin text layer")
	}
	if !got.OCRAttempted {
		t.Error("OCRAttempted should be true")
	}
	if got.Pages != 2 {
		t.Errorf("Pages = %d, want 2", got.Pages)
	}
}

func TestFromDocumentOCRTooShortKeepsTextLayer(t *testing.T) {
	// text layer passes the 50-char accept gate but is under the 100-char
	// OCR trigger; OCR output is too thin to replace it
	layer := strings.Repeat("w ", 30) + "textual resume content" // ~82 chars
	ocr := &fakeOCR{available: true, text: "tiny"}
	p := NewPipeline(&fakeTextLayer{text: layer}, ocr, 0, nil)

	got, err := p.FromDocument(context.Background(), RawDocument{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Method != MethodTextLayer {
		t.Errorf("Method = %q, want %q", got.Method, MethodTextLayer)
	}
	if got.Content != layer {
		t.Error("text layer result should be retained")
	}
	if !got.OCRAttempted {
		t.Error("the OCR attempt must be recorded even when unused")
	}
	if got.OCRError != "" {
		t.Errorf("short OCR output is not an error, got %q", got.OCRError)
	}
}

func TestFromDocumentOCRFailureIsAbsorbed(t *testing.T) {
	layer := strings.Repeat("usable but thin text content ", 3) // ~87 chars, passes accept gate
	ocr := &fakeOCR{available: true, err: errors.New("tesseract exploded")}
	p := NewPipeline(&fakeTextLayer{text: layer}, ocr, 0, nil)

	got, err := p.FromDocument(context.Background(), RawDocument{})
	if err != nil {
		t.Fatalf("OCR failure must not fail the request when the text layer is usable: %v", err)
	}
	if got.Method != MethodTextLayer {
		t.Errorf("Method = %q, want %q", got.Method, MethodTextLayer)
	}
	if got.OCRError == "" || !strings.Contains(got.OCRError, "tesseract exploded") {
		t.Errorf("OCRError = %q, want the absorbed failure", got.OCRError)
	}
}

func TestFromDocumentCapabilityGapSkipsOCR(t *testing.T) {
	ocr := &fakeOCR{available: false, text: longProse}
	p := NewPipeline(&fakeTextLayer{text: ""}, ocr, 0, nil)

	_, err := p.FromDocument(context.Background(), RawDocument{})

	var unusable *UnusableTextError
	if !errors.As(err, &unusable) {
		t.Fatalf("expected UnusableTextError, got %v", err)
	}
	if unusable.OCRAttempted {
		t.Error("a capability gap is not an attempt")
	}
	if ocr.calls != 0 {
		t.Error("Recognize must not be called when unavailable")
	}
}

func TestFromDocumentExtractorFailureFallsThroughToOCR(t *testing.T) {
	ocr := &fakeOCR{available: true, text: longProse, pages: 1}
	p := NewPipeline(&fakeTextLayer{err: errors.New("encrypted pdf")}, ocr, 0, nil)

	got, err := p.FromDocument(context.Background(), RawDocument{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Method != MethodOCR {
		t.Errorf("Method = %q, want %q", got.Method, MethodOCR)
	}
}

func TestFromDocumentBinaryTextLayerTriggersOCR(t *testing.T) {
	binary := strings.Repeat("\x00\x01\x02x", 60) // long enough, but garbage
	ocr := &fakeOCR{available: true, text: longProse}
	p := NewPipeline(&fakeTextLayer{text: binary}, ocr, 0, nil)

	got, err := p.FromDocument(context.Background(), RawDocument{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Method != MethodOCR {
		t.Errorf("Method = %q, want %q", got.Method, MethodOCR)
	}
}

func TestFromDocumentUnusableAfterAllStages(t *testing.T) {
	ocr := &fakeOCR{available: true, err: errors.New("no pages rendered")}
	p := NewPipeline(&fakeTextLayer{text: ""}, ocr, 0, nil)

	_, err := p.FromDocument(context.Background(), RawDocument{})

	var unusable *UnusableTextError
	if !errors.As(err, &unusable) {
		t.Fatalf("expected UnusableTextError, got %v", err)
	}
	if !unusable.OCRAttempted {
		t.Error("OCRAttempted should be true")
	}
	if unusable.OCRError == "" {
		t.Error("OCRError should carry the absorbed failure")
	}
	if unusable.Method != MethodNone {
		t.Errorf("Method = %q, want %q", unusable.Method, MethodNone)
	}
}

func TestFromText(t *testing.T) {
	p := NewPipeline(&fakeTextLayer{}, nil, 0, nil)

	got, err := p.FromText(longProse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Method != MethodPreExtracted {
		t.Errorf("Method = %q, want %q", got.Method, MethodPreExtracted)
	}
	if got.Content != longProse {
		t.Error("content should pass through unchanged")
	}

	if _, err := p.FromText(strings.Repeat("\x00\x01\x02a", 50)); err == nil {
		t.Error("binary pre-extracted text must be rejected")
	}
}
