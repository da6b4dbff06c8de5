package acquire

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// InspectPDF runs a relaxed structural validation over the document bytes and
// returns the page count. It is diagnostic only: a structurally damaged PDF
// still goes through the text-layer stage, which handles its own failures.
func InspectPDF(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("read pdf context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("ensure page count: %w", err)
	}
	return ctx.PageCount, nil
}
