// Package ipynbd exports annotated Jupyter notebooks to static HTML and
// optionally PDF. Annotations are freehand ink strokes the companion
// JupyterLab extension stores under the overlay_v1 metadata key of each
// cell; the export redraws them as a vector overlay positioned over the
// rendered cell input.
package ipynbd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/flanksource/commons/logger"
	lop "github.com/samber/lo/parallel"

	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/notebook"
	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/pdf"
	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/render"
	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/report"
)

// Result reports what an export produced
type Result struct {
	HTMLPath string
	PDFPath  string

	Title     string
	Cells     int
	Annotated int
	Strokes   int

	PDFInfo   *pdf.Info
	CacheHit  bool
	Converter string
}

// Export renders the notebook at notebookPath to HTML and, when pdfOpts
// names a PDF path, on to PDF through the backend chain.
func Export(ctx context.Context, notebookPath string, opts ExportOptions, pdfOpts PDFOptions) (*Result, error) {
	if err := pdfOpts.Validate(); err != nil {
		return nil, err
	}

	nb, err := notebook.ReadFile(notebookPath)
	if err != nil {
		return nil, err
	}

	policy := render.DefaultPolicy()
	if opts.PolicyPath != "" {
		if policy, err = render.LoadPolicy(opts.PolicyPath); err != nil {
			return nil, err
		}
	}
	if len(opts.WidgetPrefixes) > 0 {
		policy = policy.WithPrefixes(opts.WidgetPrefixes...)
	}

	renderer := render.NewRenderer(policy, nb.Language())

	// Cells render independently and in parallel; lop.Map hands the
	// results back in document order.
	cells := lop.Map(nb.Cells, func(cell notebook.Cell, i int) render.CellResult {
		return renderer.Cell(i, cell)
	})

	title := opts.ResolveTitle(notebookPath)
	page := renderer.Page(title, cells)

	htmlPath := opts.ResolveHTMLPath(notebookPath)
	if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", htmlPath, err)
	}

	result := &Result{
		HTMLPath: htmlPath,
		Title:    title,
		Cells:    len(cells),
	}
	for _, cell := range cells {
		result.Strokes += cell.Strokes
		if cell.Annotated() {
			result.Annotated++
		}
	}

	logger.Infof("exported %d cell(s) (%d annotated, %d strokes) to %s",
		result.Cells, result.Annotated, result.Strokes, htmlPath)

	if pdfOpts.PDFPath == "" {
		return result, nil
	}

	if err := exportPDF(ctx, htmlPath, []byte(page), pdfOpts, result); err != nil {
		return nil, err
	}

	return result, nil
}

// ExportReport writes the annotation summary PDF for the notebook at
// notebookPath: per-tool stroke stats and an ink thumbnail for every
// annotated cell.
func ExportReport(notebookPath, reportPath string, debug bool) (*Result, error) {
	nb, err := notebook.ReadFile(notebookPath)
	if err != nil {
		return nil, err
	}

	cells := report.Summarize(nb)
	builder := report.NewBuilder(report.WithDebug(debug))

	title := filepath.Base(notebookPath)
	data, err := builder.Build(title, cells)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(reportPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", reportPath, err)
	}

	result := &Result{
		PDFPath:   reportPath,
		Title:     title,
		Cells:     len(nb.Cells),
		Annotated: len(cells),
	}
	for _, cell := range cells {
		result.Strokes += cell.Strokes.Len()
	}

	logger.Infof("wrote annotation report for %d annotated cell(s) to %s", len(cells), reportPath)

	return result, nil
}

// exportPDF drives the render chain for one page, going through the cache
// when it holds a fresh render of identical content.
func exportPDF(ctx context.Context, htmlPath string, page []byte, opts PDFOptions, result *Result) error {
	pdfPath, err := filepath.Abs(opts.PDFPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", opts.PDFPath, err)
	}
	if dir := filepath.Dir(pdfPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	options := opts.ConvertOptions()

	cache, err := pdf.NewCache(pdf.CacheConfig{TTL: opts.GetEffectiveTTL(), NoCache: opts.NoCache})
	if err != nil {
		logger.Warnf("PDF cache unavailable: %v", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	if cache != nil {
		if entry, err := cache.Get(page, options); err == nil {
			if err := os.WriteFile(pdfPath, entry.PDF, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", pdfPath, err)
			}
			result.PDFPath = pdfPath
			result.CacheHit = true
			result.Converter = entry.Converter
			logger.Infof("reused cached render for %s", pdfPath)
			return verifyPDF(pdfPath, opts, result)
		}
	}

	manager := pdf.NewManager()
	defer manager.Close()

	if opts.Converter != "" {
		if err := manager.SetPreferred(opts.Converter); err != nil {
			logger.Warnf("%v", err)
		}
	}

	status := NewStatus()
	status.Start("rendering PDF...")

	start := time.Now()
	converter, err := manager.Convert(ctx, htmlPath, pdfPath, options)
	status.Done()
	if err != nil {
		return err
	}

	result.PDFPath = pdfPath
	result.Converter = converter
	logger.Infof("rendered %s with %s", pdfPath, converter)

	if cache != nil {
		if data, err := os.ReadFile(pdfPath); err == nil {
			entry := &pdf.CacheEntry{
				Converter:  converter,
				PDF:        data,
				DurationMS: time.Since(start).Milliseconds(),
			}
			if err := cache.Set(page, options, entry); err != nil {
				logger.Warnf("failed to cache render: %v", err)
			}
		}
	}

	return verifyPDF(pdfPath, opts, result)
}

// verifyPDF optionally runs structural checks plus a best-effort probe for
// the document title in the extracted text.
func verifyPDF(pdfPath string, opts PDFOptions, result *Result) error {
	if !opts.Verify {
		return nil
	}

	info, err := pdf.Verify(pdfPath)
	if err != nil {
		return fmt.Errorf("PDF verification failed: %w", err)
	}
	result.PDFInfo = info
	logger.Debugf("verified %s: %d page(s), %d bytes", pdfPath, info.Pages, info.Size)

	// Text extraction fails on some backends' output; that only warns.
	found, err := pdf.ContainsText(pdfPath, result.Title)
	if err != nil {
		logger.Warnf("could not probe PDF text: %v", err)
	} else if !found {
		logger.Warnf("title %q not found in PDF text", result.Title)
	}

	return nil
}
