// Package report builds a standalone annotation summary PDF: one section
// per annotated cell with its stroke stats and a raster thumbnail of the
// recorded ink.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	marotoimages "github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/samber/lo"

	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/notebook"
	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/overlay"
)

// CellSummary describes one annotated cell.
type CellSummary struct {
	Ordinal int
	Type    string
	Strokes overlay.Collection
}

// Summarize collects the annotated cells of a notebook in document order.
// Cells without ink are left out entirely.
func Summarize(nb *notebook.Notebook) []CellSummary {
	var cells []CellSummary
	for i, cell := range nb.Cells {
		strokes := overlay.ExtractStrokes(cell.Metadata)
		if strokes.Empty() {
			continue
		}
		cells = append(cells, CellSummary{Ordinal: i + 1, Type: cell.Type, Strokes: strokes})
	}
	return cells
}

// Builder wraps Maroto for report generation
type Builder struct {
	maroto    core.Maroto
	debugMode bool
}

// Option is a function that configures a Builder
type Option func(*Builder)

// WithDebug enables debug mode which shows grid lines
func WithDebug(enabled bool) Option {
	return func(b *Builder) {
		b.debugMode = enabled
	}
}

// NewBuilder creates a new report builder using Maroto
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}

	for _, opt := range opts {
		opt(b)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithRightMargin(10).
		WithTopMargin(10).
		WithBottomMargin(10).
		WithDebug(b.debugMode).
		Build()

	b.maroto = maroto.New(cfg)

	return b
}

// Build renders the report for the named notebook and returns the PDF bytes
func (b *Builder) Build(title string, cells []CellSummary) ([]byte, error) {
	b.addTitle(title, len(cells))

	for _, cell := range cells {
		if err := b.addCell(cell); err != nil {
			return nil, err
		}
	}

	document, err := b.maroto.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return document.GetBytes(), nil
}

func (b *Builder) addTitle(title string, annotated int) {
	titleProps := props.Text{
		Size:  14,
		Style: fontstyle.Bold,
		Align: align.Left,
	}
	subtitleProps := props.Text{
		Size:  9,
		Style: fontstyle.Normal,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	b.maroto.AddRow(10, col.New(12).Add(text.New("Annotation report — "+title, titleProps)))
	b.maroto.AddRow(6, col.New(12).Add(text.New(fmt.Sprintf("%d annotated cell(s)", annotated), subtitleProps)))
}

func (b *Builder) addCell(cell CellSummary) error {
	headerProps := props.Text{
		Size:  11,
		Style: fontstyle.Bold,
		Align: align.Left,
	}
	detailProps := props.Text{
		Size:  9,
		Style: fontstyle.Normal,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	b.maroto.AddRow(8, col.New(12).Add(text.New(fmt.Sprintf("Cell %d — %s", cell.Ordinal, cell.Type), headerProps)))
	b.maroto.AddRow(5, col.New(12).Add(text.New(describeStrokes(cell.Strokes), detailProps)))

	layout := overlay.Resolve(cell.Strokes)
	markup := overlay.RenderSVG(layout)
	if markup == "" {
		// Every stroke was pointless; the stats rows above still report it.
		return nil
	}

	pngBytes, err := Rasterize(markup, layout.Width, layout.Height)
	if err != nil {
		return fmt.Errorf("failed to rasterize overlay for cell %d: %w", cell.Ordinal, err)
	}

	imageComponent := marotoimages.NewFromBytes(pngBytes, extension.Png)
	b.maroto.AddRow(thumbnailHeight(layout.Width, layout.Height), col.New(12).Add(imageComponent))

	return nil
}

// describeStrokes summarizes a collection by tool, e.g.
// "3 stroke(s): 1 highlighter, 2 pen".
func describeStrokes(c overlay.Collection) string {
	counts := lo.CountValuesBy(c.Strokes, func(s overlay.Stroke) string { return s.Tool })

	tools := lo.Keys(counts)
	sort.Strings(tools)

	parts := make([]string, 0, len(tools))
	for _, tool := range tools {
		parts = append(parts, fmt.Sprintf("%d %s", counts[tool], tool))
	}

	return fmt.Sprintf("%d stroke(s): %s", c.Len(), strings.Join(parts, ", "))
}

// thumbnailHeight sizes the image row in mm from the surface aspect ratio,
// clamped so one tall sketch cannot swallow the page.
func thumbnailHeight(width, height float64) float64 {
	if width <= 0 || height <= 0 {
		return 40
	}
	h := 120 * height / width
	if h < 15 {
		h = 15
	}
	if h > 120 {
		h = 120
	}
	return h
}
