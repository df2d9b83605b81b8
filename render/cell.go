package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/notebook"
	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/overlay"
)

// Renderer renders cells and whole documents under one output policy.
type Renderer struct {
	Policy Policy
	// Language highlights code cells; it comes from the notebook's
	// kernelspec.
	Language string
}

// NewRenderer returns a renderer for the given policy and code language.
func NewRenderer(policy Policy, language string) *Renderer {
	return &Renderer{Policy: policy, Language: language}
}

// CellResult is one rendered cell plus the stats the export summary needs.
type CellResult struct {
	HTML    string
	Type    string
	Strokes int
}

// Annotated reports whether the cell carried any ink.
func (c CellResult) Annotated() bool { return c.Strokes > 0 }

// Cell renders one notebook cell: a header carrying its ordinal, type, and
// stroke count; the rendered input with the ink overlay positioned over it;
// and, for code cells only, the outputs region. index is zero-based.
func (r *Renderer) Cell(index int, cell notebook.Cell) CellResult {
	strokes := overlay.ExtractStrokes(cell.Metadata)

	var input string
	switch cell.Type {
	case "markdown":
		input = Markdown(cell.Source)
	case "code":
		input = Code(cell.Source, r.Language)
	default:
		input = preBlock(cell.Source)
	}

	var outputs string
	if cell.Type == "code" {
		if fragment := r.Outputs(cell.Outputs); fragment != "" {
			outputs = fmt.Sprintf("<div class='outputs'>%s</div>", fragment)
		}
	}

	var sb strings.Builder
	sb.WriteString("<div class='cell'>")
	sb.WriteString("<div class='cell-header'>")
	fmt.Fprintf(&sb, "<div>Cell %d — %s</div>", index+1, html.EscapeString(cell.Type))
	fmt.Fprintf(&sb, "<div>%d stroke(s)</div>", strokes.Len())
	sb.WriteString("</div>")
	sb.WriteString("<div class='cell-body'>")
	sb.WriteString("<div class='input-wrapper'>")
	fmt.Fprintf(&sb, "<div class='input-body'>%s</div>", input)
	sb.WriteString(overlayBlock(strokes))
	sb.WriteString("</div>")
	sb.WriteString(outputs)
	sb.WriteString("</div>")
	sb.WriteString("</div>")

	return CellResult{HTML: sb.String(), Type: cell.Type, Strokes: strokes.Len()}
}

// overlayBlock builds the absolutely positioned ink layer. The surface is
// offset by the input body's 16px padding so stroke coordinates line up
// with the content box they were recorded against. Any recorded stroke
// allocates the sized surface, even when none of them end up drawable.
func overlayBlock(c overlay.Collection) string {
	if c.Empty() {
		return ""
	}
	layout := overlay.Resolve(c)
	return fmt.Sprintf(
		"<div class='overlay-abs'><div class='overlay-surface' style='top:16px; left:16px; width:%.2fpx; height:%.2fpx'>%s</div></div>",
		layout.Width, layout.Height, overlay.RenderSVG(layout),
	)
}
