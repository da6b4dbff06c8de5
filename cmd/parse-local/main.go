// parse-local runs the acquisition and extraction pipeline over a local file
// and prints the structured result as JSON. It shares the exact heuristics
// with the HTTP service; there is no second copy of the pattern logic.
//
//	parse-local resume.pdf
//	parse-local --text extracted.txt
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/scholarform/applicant-parser/internal/acquire"
	"github.com/scholarform/applicant-parser/internal/fields"
	"github.com/scholarform/applicant-parser/internal/quality"
)

func main() {
	asText := pflag.Bool("text", false, "treat the input file as already-extracted plain text")
	pretty := pflag.Bool("pretty", true, "indent the JSON output")
	pdftoppm := pflag.String("pdftoppm", "pdftoppm", "path to the pdftoppm binary")
	tesseract := pflag.String("tesseract", "tesseract", "path to the tesseract binary")
	dpi := pflag.Int("ocrdpi", 300, "rasterization DPI for the OCR fallback")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(2)
	}
	path := pflag.Arg(0)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}

	ocr := acquire.NewOCREngine(acquire.OCRConfig{
		Pdftoppm:  *pdftoppm,
		Tesseract: *tesseract,
		DPI:       *dpi,
	}, nil)
	pipeline := acquire.NewPipeline(acquire.NewTextLayerExtractor(), ocr, 0, nil)

	var acquired acquire.AcquiredText
	if *asText || strings.EqualFold(filepath.Ext(path), ".txt") {
		text := string(data)
		if len(strings.TrimSpace(text)) < quality.MinPreExtractedLength {
			fmt.Fprintln(os.Stderr, "input text is too short to parse")
			os.Exit(1)
		}
		acquired, err = pipeline.FromText(text)
	} else {
		acquired, err = pipeline.FromDocument(context.Background(), acquire.RawDocument{
			Data:      data,
			Filename:  filepath.Base(path),
			MediaType: "application/pdf",
		})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "no usable text: %v\n", err)
		os.Exit(1)
	}

	result := fields.NewEngine().Extract(acquired.Content, string(acquired.Method))

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
}
