package acquire

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// OCRConfig holds the external-tool settings for the rasterize-and-recognize
// fallback.
type OCRConfig struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Lang      string // default "eng"
	DPI       int    // rasterization DPI, default 300
	MaxPages  int    // 0 = no limit
}

// OCREngine rasterizes a PDF page by page and recognizes each image with
// tesseract. All state is scoped to a single Recognize call; there is no
// process-wide worker.
type OCREngine struct {
	cfg    OCRConfig
	runner Runner
	logger *slog.Logger
}

// NewOCREngine creates an engine with defaults filled in.
func NewOCREngine(cfg OCRConfig, logger *slog.Logger) *OCREngine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &OCREngine{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Available probes for both external tools. A missing tool is a capability
// gap, not an error: the pipeline skips OCR entirely.
func (e *OCREngine) Available() bool {
	if _, err := e.runner.LookPath(e.cfg.Pdftoppm); err != nil {
		return false
	}
	if _, err := e.runner.LookPath(e.cfg.Tesseract); err != nil {
		return false
	}
	return true
}

// Recognize writes the document to a scoped temp dir, rasterizes every page
// to PNG and runs tesseract over each image in page order. Page texts are
// concatenated with a separating newline; order matters because downstream
// heuristics assume natural reading order. The temp dir is removed on every
// exit path.
func (e *OCREngine) Recognize(ctx context.Context, data []byte) (string, int, error) {
	tmpDir, err := os.MkdirTemp("", "ocr-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("failed to remove ocr temp dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return "", 0, fmt.Errorf("write pdf copy: %w", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", pdfPath, prefix)
	if err != nil {
		return "", 0, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 512))
	}

	// pdftoppm names pages prefix-1.png, prefix-2.png, ...
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, fmt.Errorf("pdftoppm produced no images")
	}

	var b strings.Builder
	for _, img := range matches {
		out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, img, "stdout", "-l", e.cfg.Lang)
		if err != nil {
			return "", len(matches), fmt.Errorf("tesseract %s: %w: %s", filepath.Base(img), err, truncate(string(errb), 512))
		}
		b.WriteString("\n")
		b.WriteString(string(out))
	}

	return b.String(), len(matches), nil
}
