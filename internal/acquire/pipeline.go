package acquire

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/scholarform/applicant-parser/internal/quality"
)

// OCRFallback is the capability the pipeline probes before attempting the
// expensive rasterize-and-recognize stage.
type OCRFallback interface {
	Available() bool
	Recognize(ctx context.Context, data []byte) (text string, pages int, err error)
}

// Pipeline is the staged text-acquisition state machine: text layer first,
// OCR only when the text layer result is empty, thin, or binary. All state is
// request-local; one Pipeline serves concurrent requests.
type Pipeline struct {
	classifier *quality.Classifier
	textLayer  TextLayerExtractor
	ocr        OCRFallback
	ocrTimeout time.Duration
	logger     *slog.Logger
}

// NewPipeline wires the acquisition stages together. ocr may be nil when the
// deployment has no OCR capability at all.
func NewPipeline(textLayer TextLayerExtractor, ocr OCRFallback, ocrTimeout time.Duration, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if ocrTimeout <= 0 {
		ocrTimeout = 2 * time.Minute
	}
	return &Pipeline{
		classifier: quality.NewClassifier(),
		textLayer:  textLayer,
		ocr:        ocr,
		ocrTimeout: ocrTimeout,
		logger:     logger,
	}
}

// FromDocument produces the best-available text for uploaded document bytes.
// Stage failures are absorbed into the AcquiredText diagnostics; only the
// final unusable-text outcome is returned as an error.
func (p *Pipeline) FromDocument(ctx context.Context, doc RawDocument) (AcquiredText, error) {
	acquired := AcquiredText{Method: MethodNone}

	if pages, err := InspectPDF(doc.Data); err != nil {
		p.logger.Warn("pdf structural validation failed", "filename", doc.Filename, "error", err)
	} else {
		acquired.Pages = pages
	}

	// Stage 1: embedded text layer. On extractor failure the text is forced
	// to empty; raw PDF container bytes are never reinterpreted as prose.
	text, err := p.textLayer.Extract(doc.Data)
	if err != nil {
		p.logger.Warn("text layer extraction failed", "filename", doc.Filename, "error", err)
		text = ""
	}
	if strings.TrimSpace(text) != "" {
		acquired.Method = MethodTextLayer
	}

	// Stage 2: OCR, only when the text layer came up short and the
	// capability exists.
	if p.classifier.NeedsOCR(text) && p.ocr != nil && p.ocr.Available() {
		acquired.OCRAttempted = true

		octx, cancel := context.WithTimeout(ctx, p.ocrTimeout)
		ocrText, pages, err := p.ocr.Recognize(octx, doc.Data)
		cancel()

		switch {
		case err != nil:
			acquired.OCRError = err.Error()
			p.logger.Warn("ocr fallback failed", "filename", doc.Filename, "error", err)
		case len(strings.TrimSpace(ocrText)) > quality.MinAcceptLength:
			text = ocrText
			acquired.Method = MethodOCR
			if pages > 0 {
				acquired.Pages = pages
			}
		default:
			// attempt recorded, output too thin to replace the text layer
			p.logger.Info("ocr output too short, keeping text layer result",
				"filename", doc.Filename, "ocr_len", len(ocrText))
		}
	}

	// Final gate: never hand garbage to the extractors.
	if !p.classifier.Usable(text) {
		return acquired, &UnusableTextError{
			Method:       acquired.Method,
			OCRAttempted: acquired.OCRAttempted,
			OCRError:     acquired.OCRError,
		}
	}

	acquired.Content = text
	return acquired, nil
}

// FromText accepts text the caller already extracted (e.g. a client-side PDF
// text layer reader). The 20-character minimum is the boundary's concern; the
// pipeline still refuses binary garbage.
func (p *Pipeline) FromText(pre string) (AcquiredText, error) {
	acquired := AcquiredText{Method: MethodPreExtracted}

	if p.classifier.IsLikelyBinary(pre) {
		return acquired, &UnusableTextError{Method: MethodPreExtracted}
	}

	acquired.Content = pre
	return acquired, nil
}
