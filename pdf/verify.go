package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	ltpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Info summarizes a verified document
type Info struct {
	Pages int
	Size  int64
}

// Verify checks that the file at path is a structurally sound PDF with at
// least one page and returns basic document info.
func Verify(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return VerifyBytes(data)
}

// VerifyBytes checks that data is a structurally sound PDF with at least
// one page.
func VerifyBytes(data []byte) (*Info, error) {
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		return nil, fmt.Errorf("not a PDF: missing %%PDF header")
	}

	ctx, err := api.ReadContext(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if ctx.PageCount < 1 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	return &Info{Pages: ctx.PageCount, Size: int64(len(data))}, nil
}

// ContainsText reports whether the document's extractable plain text
// contains probe. Some backends emit text the extractor cannot decode;
// that surfaces as an error, not a failed probe.
func ContainsText(path, probe string) (bool, error) {
	f, r, err := ltpdf.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return false, fmt.Errorf("failed to extract text: %w", err)
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, reader); err != nil {
		return false, fmt.Errorf("failed to extract text: %w", err)
	}

	return strings.Contains(sb.String(), probe), nil
}
